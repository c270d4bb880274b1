package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Group struct {
	ID      uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name    string        `gorm:"size:255;not null" json:"name"`
	Members []GroupMember `gorm:"foreignkey:GroupID" json:"members"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupMember assigns a percentage share of distributed amounts to one
// musician. The shares of all members of a group sum to 100.00.
type GroupMember struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GroupID    uuid.UUID       `gorm:"not null;index" json:"group_id"`
	MusicianID uuid.UUID       `gorm:"not null" json:"musician_id"`
	Percent    decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"percent"`
	Position   int             `gorm:"not null;default:0" json:"position"`

	Musician Musician `gorm:"foreignkey:MusicianID" json:"musician,omitempty"`
}
