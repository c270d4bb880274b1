package middleware

import (
	"testing"

	"github.com/bandkasse/bandkasse/models"
)

func TestHasCapability(t *testing.T) {
	tests := []struct {
		name string
		role string
		cap  Capability
		want bool
	}{
		{name: "administrator manages musicians", role: models.RoleAdministrator, cap: CapManageMusicians, want: true},
		{name: "administrator reviews payouts", role: models.RoleAdministrator, cap: CapReviewPayouts, want: true},
		{name: "superuser manages bookings", role: models.RoleSuperuser, cap: CapManageBookings, want: true},
		{name: "superuser cannot manage musicians", role: models.RoleSuperuser, cap: CapManageMusicians, want: false},
		{name: "superuser cannot review payouts", role: models.RoleSuperuser, cap: CapReviewPayouts, want: false},
		{name: "user has no management capabilities", role: models.RoleUser, cap: CapManageBookings, want: false},
		{name: "user cannot view foreign ledgers", role: models.RoleUser, cap: CapViewAllLedgers, want: false},
		{name: "unknown role grants nothing", role: "guest", cap: CapManageBookings, want: false},
		{name: "empty role grants nothing", role: "", cap: CapViewAllLedgers, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCapability(tt.role, tt.cap); got != tt.want {
				t.Errorf("HasCapability(%q, %q) = %v, want %v", tt.role, tt.cap, got, tt.want)
			}
		})
	}
}

func TestAdministratorHasEveryCapability(t *testing.T) {
	for cap := range roleCapabilities[models.RoleAdministrator] {
		if !HasCapability(models.RoleAdministrator, cap) {
			t.Errorf("administrator missing capability %q", cap)
		}
	}
}
