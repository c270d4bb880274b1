package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known setting keys.
const (
	SettingBandName = "band_name"
	SettingLogoURL  = "logo_url"
	SettingIconURL  = "icon_url"
)

// Setting is one process-wide configuration entry. Settings are shared by
// all users; changes are pushed to connected clients over the websocket hub.
type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Key   string    `gorm:"size:100;not null;unique" json:"key"`
	Value string    `gorm:"type:text" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
