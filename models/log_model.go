package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry records a mutating action for the audit trail. Entries are
// pruned by the retention job after 180 days.
type LogEntry struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ActorID  *uuid.UUID `gorm:"index" json:"actor_id"`
	Action   string     `gorm:"size:50;not null" json:"action"`
	Entity   string     `gorm:"size:50;not null" json:"entity"`
	EntityID *uuid.UUID `json:"entity_id"`
	Detail   string     `gorm:"type:text" json:"detail"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (LogEntry) TableName() string {
	return "logs"
}
