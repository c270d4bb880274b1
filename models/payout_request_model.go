package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PayoutStatusPending  = "pending"
	PayoutStatusApproved = "approved"
	PayoutStatusRejected = "rejected"
)

type PayoutRequest struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MusicianID uuid.UUID       `gorm:"not null;index" json:"musician_id"`
	Reference  string          `gorm:"size:12;unique" json:"reference"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Note       string          `gorm:"type:text" json:"note"`
	Status     string          `gorm:"size:20;not null;default:'pending'" json:"status"`

	AdminNote    *string    `gorm:"type:text" json:"admin_note"`
	ReviewerID   *uuid.UUID `json:"reviewer_id"`
	ReviewerName *string    `gorm:"size:255" json:"reviewer_name"`
	ProcessedAt  *time.Time `json:"processed_at"`

	StatementURL *string `gorm:"size:255" json:"statement_url"`

	Musician Musician `gorm:"foreignkey:MusicianID" json:"musician,omitempty"`

	RequestedAt time.Time `gorm:"not null" json:"requested_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Pending reports whether the request is still open. Only pending requests
// may be edited or withdrawn by the requesting musician.
func (p *PayoutRequest) Pending() bool {
	return p.Status == PayoutStatusPending
}
