package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Concert struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string          `gorm:"size:255;not null" json:"name"`
	Location string          `gorm:"size:255" json:"location"`
	Date     time.Time       `gorm:"not null" json:"date"`
	Fee      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"fee"`

	GroupID *uuid.UUID `json:"group_id"`
	Group   *Group     `gorm:"foreignkey:GroupID" json:"group,omitempty"`

	Expenses []ConcertExpense `gorm:"foreignkey:ConcertID" json:"expenses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConcertExpense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ConcertID   uuid.UUID       `gorm:"not null;index" json:"concert_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`

	TagID *uuid.UUID `json:"tag_id"`
	Tag   *Tag       `gorm:"foreignkey:TagID" json:"tag,omitempty"`
}

// ExpenseTotal sums all expense line items on the concert.
func (c *Concert) ExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Remainder is the distributable amount of the concert: fee minus the sum
// of all expense line items.
func (c *Concert) Remainder() decimal.Decimal {
	return c.Fee.Sub(c.ExpenseTotal())
}
