package services

import (
	"github.com/bandkasse/bandkasse/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// payoutFallbackDescription is used when a payout booking carries no
// description of its own.
const payoutFallbackDescription = "Auszahlung"

// DeriveBookingTransactions computes the ledger lines for a booking.
//
//   - payout: one expense line per selected payout musician, each over the
//     full booking amount, negated.
//   - expense/income with a group: one line per group member, split by the
//     member's percent share, negative for expenses.
//   - anything else: no lines.
func DeriveBookingTransactions(booking *models.Booking) []models.Transaction {
	switch booking.Type {
	case models.BookingTypePayout:
		return derivePayoutTransactions(booking)
	case models.BookingTypeExpense, models.BookingTypeIncome:
		if booking.Group == nil || len(booking.Group.Members) == 0 {
			return nil
		}
		return deriveGroupBookingTransactions(booking)
	default:
		return nil
	}
}

func derivePayoutTransactions(booking *models.Booking) []models.Transaction {
	description := booking.Description
	if description == "" {
		description = payoutFallbackDescription
	}

	txns := make([]models.Transaction, 0, len(booking.PayoutMusicians))
	for _, m := range booking.PayoutMusicians {
		txns = append(txns, models.Transaction{
			MusicianID:  m.ID,
			BookingID:   &booking.ID,
			Amount:      booking.Amount.Neg(),
			Date:        booking.Date,
			Kind:        models.TransactionKindExpense,
			Description: description,
		})
	}
	return txns
}

func deriveGroupBookingTransactions(booking *models.Booking) []models.Transaction {
	amount := booking.Amount
	kind := models.TransactionKindEarn
	if booking.Type == models.BookingTypeExpense {
		amount = amount.Neg()
		kind = models.TransactionKindExpense
	}

	shares := Distribute(amount, booking.Group.Members)
	txns := make([]models.Transaction, 0, len(shares))
	for _, s := range shares {
		txns = append(txns, models.Transaction{
			MusicianID:  s.MusicianID,
			BookingID:   &booking.ID,
			Amount:      s.Amount,
			Date:        booking.Date,
			Kind:        kind,
			Description: booking.Description,
		})
	}
	return txns
}

// DeriveConcertTransactions computes the fee distribution for a concert:
// one earn line per group member over the remainder (fee minus expenses).
// Concerts without a group or without a positive remainder produce no
// lines, which on replace clears any previously derived set.
func DeriveConcertTransactions(concert *models.Concert) []models.Transaction {
	if concert.Group == nil || len(concert.Group.Members) == 0 {
		return nil
	}

	remainder := concert.Remainder()
	if !remainder.GreaterThan(decimal.Zero) {
		return nil
	}

	shares := Distribute(remainder, concert.Group.Members)
	txns := make([]models.Transaction, 0, len(shares))
	for _, s := range shares {
		txns = append(txns, models.Transaction{
			MusicianID:  s.MusicianID,
			ConcertID:   &concert.ID,
			Amount:      s.Amount,
			Date:        concert.Date,
			Kind:        models.TransactionKindEarn,
			Description: "Gagen Verteilung: " + concert.Name,
		})
	}
	return txns
}

// ReplaceBookingTransactions deletes every transaction derived from the
// booking and inserts the fresh set. Callers run this inside the same DB
// transaction that saves the booking, so source and ledger always change
// together.
func ReplaceBookingTransactions(tx *gorm.DB, booking *models.Booking, derived []models.Transaction) error {
	if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	if len(derived) == 0 {
		return nil
	}
	return tx.Create(&derived).Error
}

// ReplaceConcertTransactions is the concert counterpart of
// ReplaceBookingTransactions.
func ReplaceConcertTransactions(tx *gorm.DB, concert *models.Concert, derived []models.Transaction) error {
	if err := tx.Where("concert_id = ?", concert.ID).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	if len(derived) == 0 {
		return nil
	}
	return tx.Create(&derived).Error
}
