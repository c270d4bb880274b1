package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleAdministrator = "administrator"
	RoleSuperuser     = "superuser"
	RoleUser          = "user"
)

type Musician struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'user'" json:"role"`

	// BaseBalance is the fixed starting point of the ledger. It is only
	// changed by an administrative edit, never by derived transactions.
	BaseBalance decimal.Decimal `gorm:"type:numeric(10,2);default:0.00" json:"base_balance"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`

	Archived   bool       `gorm:"default:false" json:"archived"`
	ArchivedAt *time.Time `json:"archived_at"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
