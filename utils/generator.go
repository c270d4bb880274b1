package utils

import (
	"math/rand"
	"time"

	"github.com/bandkasse/bandkasse/models"
	"gorm.io/gorm"
)

const payoutReferenceLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePayoutReference returns a short reference code that is unique
// among payout requests, for use on statements and in emails.
func GeneratePayoutReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, payoutReferenceLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var request models.PayoutRequest
		err := tx.Where("reference = ?", code).First(&request).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
