package middleware

import (
	"github.com/bandkasse/bandkasse/models"
	"github.com/gofiber/fiber/v2"
)

// Capability names a guarded operation. Roles map to a fixed capability set
// instead of handlers testing role strings ad hoc.
type Capability string

const (
	CapManageMusicians Capability = "manage_musicians"
	CapManageGroups    Capability = "manage_groups"
	CapManageBookings  Capability = "manage_bookings"
	CapManageConcerts  Capability = "manage_concerts"
	CapManageTags      Capability = "manage_tags"
	CapManageSettings  Capability = "manage_settings"
	CapReviewPayouts   Capability = "review_payouts"
	CapViewAllLedgers  Capability = "view_all_ledgers"
	CapArchiveLedger   Capability = "archive_ledger"
	CapViewLogs        Capability = "view_logs"
)

var roleCapabilities = map[string]map[Capability]bool{
	models.RoleAdministrator: {
		CapManageMusicians: true,
		CapManageGroups:    true,
		CapManageBookings:  true,
		CapManageConcerts:  true,
		CapManageTags:      true,
		CapManageSettings:  true,
		CapReviewPayouts:   true,
		CapViewAllLedgers:  true,
		CapArchiveLedger:   true,
		CapViewLogs:        true,
	},
	models.RoleSuperuser: {
		CapManageGroups:   true,
		CapManageBookings: true,
		CapManageConcerts: true,
		CapManageTags:     true,
		CapViewAllLedgers: true,
	},
	models.RoleUser: {},
}

// HasCapability reports whether the role grants the capability. Unknown
// roles grant nothing.
func HasCapability(role string, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// RequireCapability rejects requests whose JWT role does not grant the
// capability.
func RequireCapability(cap Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !HasCapability(Role(c), cap) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: missing capability " + string(cap),
			})
		}
		return c.Next()
	}
}

// AdminRequired is a shorthand for routes that only administrators may use.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) != models.RoleAdministrator {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Admin access required",
			})
		}
		return c.Next()
	}
}
