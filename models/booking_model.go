package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BookingTypeExpense = "expense"
	BookingTypeIncome  = "income"
	BookingTypePayout  = "payout"
)

type Booking struct {
	ID     uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Type   string          `gorm:"size:20;not null" json:"type"`
	Amount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Date   time.Time       `gorm:"not null" json:"date"`

	GroupID *uuid.UUID `json:"group_id"`
	Group   *Group     `gorm:"foreignkey:GroupID" json:"group,omitempty"`

	// PayoutMusicians are the recipients of a payout booking. Empty for
	// expense and income bookings.
	PayoutMusicians []*Musician `gorm:"many2many:booking_payout_musicians;" json:"payout_musicians,omitempty"`

	Description string `gorm:"size:255" json:"description"`
	Notes       string `gorm:"type:text" json:"notes"`

	Tags []*Tag `gorm:"many2many:booking_tags;" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
