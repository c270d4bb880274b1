package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseStatementRange(c *fiber.Ctx) (uuid.UUID, time.Time, time.Time, error) {
	requesterID, err := middleware.MusicianID(c)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid token")
	}

	targetID := c.Query("musician_id", requesterID.String())
	if targetID != requesterID.String() && !middleware.HasCapability(middleware.Role(c), middleware.CapViewAllLedgers) {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("forbidden")
	}
	musicianID, err := uuid.Parse(targetID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid musician id")
	}

	fromStr := c.Query("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	toStr := c.Query("to", time.Now().Format("2006-01-02"))

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid from date, use YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("invalid to date, use YYYY-MM-DD")
	}

	return musicianID, from, to, nil
}

// ExportStatementPDF renders a balance statement for the range and returns
// the PDF as a download.
func ExportStatementPDF(c *fiber.Ctx) error {
	musicianID, from, to, err := parseStatementRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	htmlContent, _, err := services.BuildStatement(musicianID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build statement"})
	}

	pdfBytes, err := services.RenderStatementPDF(htmlContent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render statement PDF"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"statement_%s_to_%s.pdf\"", from.Format("2006-01-02"), to.Format("2006-01-02")))
	return c.Send(pdfBytes)
}

// DispatchStatementEmail renders, uploads, and emails the statement to the
// musician.
func DispatchStatementEmail(c *fiber.Ctx) error {
	musicianID, from, to, err := parseStatementRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.DispatchStatement(musicianID, from, to); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to dispatch statement"})
	}
	return c.JSON(fiber.Map{"message": "Statement dispatched successfully."})
}

// ExportArchivedTransactionsCSV streams all archived transactions as CSV.
func ExportArchivedTransactionsCSV(c *fiber.Ctx) error {
	var txns []models.Transaction
	if err := database.DB.
		Preload("Musician").
		Where("archived = ?", true).
		Order("date asc").
		Find(&txns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Transaction ID", "Date", "Musician", "Amount", "Kind", "Description", "Source"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, t := range txns {
		source := ""
		if t.BookingID != nil {
			source = "booking:" + t.BookingID.String()
		} else if t.ConcertID != nil {
			source = "concert:" + t.ConcertID.String()
		}

		row := []string{
			t.ID.String(),
			t.Date.Format("2006-01-02"),
			t.Musician.FullName,
			t.Amount.StringFixed(2),
			t.Kind,
			t.Description,
			source,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=\"archived_transactions.csv\"")
	return c.Send(b.Bytes())
}
