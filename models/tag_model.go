package models

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:100;not null;unique" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}
