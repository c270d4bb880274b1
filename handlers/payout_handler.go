package handlers

import (
	"fmt"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/notifications"
	"github.com/bandkasse/bandkasse/services"
	"github.com/bandkasse/bandkasse/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayoutRequestBody struct {
	Amount string `json:"amount" validate:"required"`
	Note   string `json:"note"`
}

func CreatePayoutRequest(c *fiber.Ctx) error {
	musicianID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req PayoutRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be a positive decimal"})
	}

	var payoutRequest models.PayoutRequest
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		reference, err := utils.GeneratePayoutReference(tx)
		if err != nil {
			return err
		}
		payoutRequest = models.PayoutRequest{
			MusicianID:  musicianID,
			Reference:   reference,
			Amount:      amount.Round(2),
			Note:        req.Note,
			Status:      models.PayoutStatusPending,
			RequestedAt: time.Now(),
		}
		return tx.Create(&payoutRequest).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payout request"})
	}

	return c.Status(fiber.StatusCreated).JSON(payoutRequest)
}

func ListOwnPayoutRequests(c *fiber.Ctx) error {
	musicianID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var requests []models.PayoutRequest
	if err := database.DB.
		Where("musician_id = ?", musicianID).
		Order("requested_at desc").
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(requests)
}

// UpdatePayoutRequest lets the owning musician change amount and note while
// the request is still pending. Processed requests are terminal.
func UpdatePayoutRequest(c *fiber.Ctx) error {
	musicianID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var payoutRequest models.PayoutRequest
	if err := database.DB.First(&payoutRequest, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payout request not found"})
	}

	if payoutRequest.MusicianID != musicianID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if !payoutRequest.Pending() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Only pending payout requests can be edited"})
	}

	var req PayoutRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be a positive decimal"})
	}

	payoutRequest.Amount = amount.Round(2)
	payoutRequest.Note = req.Note
	if err := database.DB.Save(&payoutRequest).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payout request"})
	}
	return c.JSON(payoutRequest)
}

// DeletePayoutRequest withdraws a pending request. Like editing, this is
// owner-only and blocked once the request was processed.
func DeletePayoutRequest(c *fiber.Ctx) error {
	musicianID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var payoutRequest models.PayoutRequest
	if err := database.DB.First(&payoutRequest, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payout request not found"})
	}

	if payoutRequest.MusicianID != musicianID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if !payoutRequest.Pending() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Only pending payout requests can be withdrawn"})
	}

	if err := database.DB.Delete(&payoutRequest).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payout request"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func ListPendingPayoutRequests(c *fiber.Ctx) error {
	var requests []models.PayoutRequest
	if err := database.DB.
		Preload("Musician").
		Where("status = ?", models.PayoutStatusPending).
		Order("requested_at asc").
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(requests)
}

type ProcessPayoutBody struct {
	Decision  string `json:"decision" validate:"required,oneof=approve reject"`
	AdminNote string `json:"admin_note"`
}

// ProcessPayoutRequest approves or rejects a pending request, stamping
// reviewer, timestamp, and note. The transition is terminal: processed
// requests cannot be re-processed.
func ProcessPayoutRequest(c *fiber.Ctx) error {
	reviewerID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req ProcessPayoutBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var reviewer models.Musician
	if err := database.DB.First(&reviewer, "id = ?", reviewerID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Reviewer not found"})
	}

	var payoutRequest models.PayoutRequest
	if err := database.DB.Preload("Musician").First(&payoutRequest, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payout request not found"})
	}
	if !payoutRequest.Pending() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Payout request has already been processed"})
	}

	now := time.Now()
	if req.Decision == "approve" {
		payoutRequest.Status = models.PayoutStatusApproved
	} else {
		payoutRequest.Status = models.PayoutStatusRejected
	}
	payoutRequest.AdminNote = &req.AdminNote
	payoutRequest.ReviewerID = &reviewerID
	payoutRequest.ReviewerName = &reviewer.FullName
	payoutRequest.ProcessedAt = &now

	// Guard against a concurrent reviewer: only the transition away from
	// pending may win.
	result := database.DB.Model(&models.PayoutRequest{}).
		Where("id = ? AND status = ?", payoutRequest.ID, models.PayoutStatusPending).
		Select("status", "admin_note", "reviewer_id", "reviewer_name", "processed_at").
		Updates(&payoutRequest)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payout request"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Payout request has already been processed"})
	}

	go services.RecordLog(reviewerID, req.Decision, "payout_request", payoutRequest.ID, payoutRequest.Reference)

	musician := payoutRequest.Musician
	if payoutRequest.Status == models.PayoutStatusApproved {
		go notifications.SendEmail(
			musician.FullName,
			musician.Email,
			"Deine Auszahlung wurde genehmigt",
			fmt.Sprintf("<h1>Auszahlung genehmigt</h1><p>Hallo %s,</p><p>deine Auszahlungsanfrage über %s € (Referenz %s) wurde genehmigt.</p>", musician.FullName, payoutRequest.Amount.StringFixed(2), payoutRequest.Reference),
		)
	} else {
		go notifications.SendEmail(
			musician.FullName,
			musician.Email,
			"Deine Auszahlungsanfrage wurde abgelehnt",
			fmt.Sprintf("<h1>Auszahlung abgelehnt</h1><p>Hallo %s,</p><p>deine Auszahlungsanfrage über %s € (Referenz %s) wurde abgelehnt.</p><p><b>Anmerkung:</b> %s</p>", musician.FullName, payoutRequest.Amount.StringFixed(2), payoutRequest.Reference, req.AdminNote),
		)
	}

	return c.JSON(fiber.Map{"message": "Payout request processed.", "request": payoutRequest})
}

// AttachStatement stores the URL of a generated statement PDF on the payout
// request.
func AttachStatement(c *fiber.Ctx) error {
	type AttachRequest struct {
		StatementURL string `json:"statement_url" validate:"required,url"`
	}
	var req AttachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payoutRequest models.PayoutRequest
	if err := database.DB.First(&payoutRequest, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payout request not found"})
	}

	payoutRequest.StatementURL = &req.StatementURL
	if err := database.DB.Save(&payoutRequest).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to attach statement"})
	}
	return c.JSON(payoutRequest)
}
