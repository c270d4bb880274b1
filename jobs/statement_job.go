package jobs

import (
	"log"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/services"
)

// DispatchMonthlyStatements emails every active musician their statement
// for the previous calendar month. Musicians without transactions in that
// month are skipped.
func DispatchMonthlyStatements() {
	log.Println("Running job: DispatchMonthlyStatements...")

	now := time.Now()
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := firstOfThisMonth.AddDate(0, -1, 0)
	to := firstOfThisMonth.AddDate(0, 0, -1)

	var musicians []models.Musician
	if err := database.DB.Where("archived = ?", false).Find(&musicians).Error; err != nil {
		log.Printf("Error loading musicians for statement dispatch: %v", err)
		return
	}

	for _, musician := range musicians {
		var count int64
		database.DB.Model(&models.Transaction{}).
			Where("musician_id = ? AND date >= ? AND date <= ?", musician.ID, from, services.EndOfDay(to)).
			Count(&count)
		if count == 0 {
			continue
		}

		if err := services.DispatchStatement(musician.ID, from, to); err != nil {
			log.Printf("🔥 Failed to dispatch statement for %s: %v", musician.Email, err)
		}
	}
}
