package handlers

import (
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListTransactions returns a musician's ledger, newest first. Musicians can
// only read their own ledger unless their role grants the view-all
// capability.
func ListTransactions(c *fiber.Ctx) error {
	requesterID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	targetID := c.Query("musician_id", requesterID.String())
	if targetID != requesterID.String() && !middleware.HasCapability(middleware.Role(c), middleware.CapViewAllLedgers) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	musicianID, err := uuid.Parse(targetID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid musician id"})
	}

	query := database.DB.
		Where("musician_id = ? AND archived = ?", musicianID, false).
		Order("date desc, created_at desc")

	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("date >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("date <= ?", services.EndOfDay(toDate))
		}
	}

	var txns []models.Transaction
	if err := query.Find(&txns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(txns)
}

type ArchiveTransactionsRequest struct {
	Before string `json:"before" validate:"required"`
}

// ArchiveTransactions flags all transactions dated before the cutoff as
// archived. Archived transactions leave the regular ledger views but stay
// part of balance computation and remain exportable as CSV.
func ArchiveTransactions(c *fiber.Ctx) error {
	var req ArchiveTransactionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cutoff, err := time.Parse("2006-01-02", req.Before)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}

	result := database.DB.Model(&models.Transaction{}).
		Where("date < ? AND archived = ?", cutoff, false).
		Update("archived", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to archive transactions"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "archive", "transaction", uuid.Nil, "before "+req.Before)
	}

	return c.JSON(fiber.Map{
		"message":  "Transactions archived successfully.",
		"archived": result.RowsAffected,
	})
}
