package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionKindEarn    = "earn"
	TransactionKindExpense = "expense"
)

// Transaction is one signed ledger line attributed to a single musician.
// Transactions are derived from a booking or a concert (exactly one of the
// two source references is set) and are fully replaced whenever their
// source is edited, never patched in place.
type Transaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MusicianID uuid.UUID `gorm:"not null;index" json:"musician_id"`

	BookingID *uuid.UUID `gorm:"index" json:"booking_id"`
	ConcertID *uuid.UUID `gorm:"index" json:"concert_id"`

	// Amount carries its sign: earn lines are positive, expense lines
	// negative. The displayed balance is base balance plus the plain sum
	// of these amounts, with no sign handling at render time.
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Kind        string          `gorm:"size:20;not null" json:"kind"`
	Description string          `gorm:"size:255" json:"description"`

	Archived bool `gorm:"default:false;index" json:"archived"`

	Musician Musician `gorm:"foreignkey:MusicianID" json:"musician,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
