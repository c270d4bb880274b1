package handlers

import (
	"errors"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingRequest struct {
	Type              string   `json:"type" validate:"required,oneof=expense income payout"`
	Amount            string   `json:"amount" validate:"required"`
	Date              string   `json:"date" validate:"required"`
	GroupID           *string  `json:"group_id,omitempty" validate:"omitempty,uuid"`
	PayoutMusicianIDs []string `json:"payout_musician_ids,omitempty" validate:"omitempty,dive,uuid"`
	Description       string   `json:"description"`
	Notes             string   `json:"notes"`
	TagIDs            []string `json:"tag_ids,omitempty" validate:"omitempty,dive,uuid"`
}

type bookingInput struct {
	amount          decimal.Decimal
	date            time.Time
	group           *models.Group
	payoutMusicians []*models.Musician
	tags            []*models.Tag
}

func parseBookingRequest(req *BookingRequest) (*bookingInput, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.GreaterThan(decimal.Zero) {
		return nil, errors.New("amount must be a positive decimal")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date format, use YYYY-MM-DD")
	}

	in := &bookingInput{amount: amount.Round(2), date: date}

	if req.Type == models.BookingTypePayout {
		if len(req.PayoutMusicianIDs) == 0 {
			return nil, errors.New("payout bookings need at least one payout musician")
		}
		if req.GroupID != nil {
			return nil, errors.New("payout bookings cannot reference a group")
		}
		var ids []uuid.UUID
		for _, raw := range req.PayoutMusicianIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, errors.New("invalid payout musician id")
			}
			ids = append(ids, id)
		}
		if err := database.DB.Find(&in.payoutMusicians, "id IN ?", ids).Error; err != nil {
			return nil, err
		}
		if len(in.payoutMusicians) != len(ids) {
			return nil, errors.New("unknown payout musician")
		}
	} else if req.GroupID != nil {
		groupID, err := uuid.Parse(*req.GroupID)
		if err != nil {
			return nil, errors.New("invalid group id")
		}
		var group models.Group
		if err := database.DB.Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_members.position asc")
		}).First(&group, "id = ?", groupID).Error; err != nil {
			return nil, errors.New("group not found")
		}
		in.group = &group
	}

	if len(req.TagIDs) > 0 {
		if err := database.DB.Find(&in.tags, "id IN ?", req.TagIDs).Error; err != nil {
			return nil, err
		}
	}

	return in, nil
}

// CreateBooking saves the booking and its derived transactions in one DB
// transaction, so the ledger can never hold a half-applied booking.
func CreateBooking(c *fiber.Ctx) error {
	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in, err := parseBookingRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking := models.Booking{
		Type:            req.Type,
		Amount:          in.amount,
		Date:            in.date,
		Description:     req.Description,
		Notes:           req.Notes,
		PayoutMusicians: in.payoutMusicians,
		Tags:            in.tags,
	}
	if in.group != nil {
		booking.GroupID = &in.group.ID
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		booking.Group = in.group
		derived := services.DeriveBookingTransactions(&booking)
		return services.ReplaceBookingTransactions(tx, &booking, derived)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save booking"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "create", "booking", booking.ID, booking.Description)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func ListBookings(c *fiber.Ctx) error {
	query := database.DB.
		Preload("Group.Members").
		Preload("PayoutMusicians").
		Preload("Tags").
		Order("date desc")

	if bookingType := c.Query("type"); bookingType != "" {
		query = query.Where("type = ?", bookingType)
	}
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
	if tagID := c.Query("tag"); tagID != "" {
		query = query.
			Joins("JOIN booking_tags ON booking_tags.booking_id = bookings.id").
			Where("booking_tags.tag_id = ?", tagID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(bookings)
}

func GetBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := database.DB.
		Preload("Group.Members.Musician").
		Preload("PayoutMusicians").
		Preload("Tags").
		First(&booking, "id = ?", c.Params("bookingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	return c.JSON(booking)
}

// UpdateBooking re-derives the ledger lines from scratch: the old set is
// deleted and the new one inserted inside the same DB transaction as the
// booking save. Saving an unchanged booking therefore yields an identical
// transaction set.
func UpdateBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", c.Params("bookingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in, err := parseBookingRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking.Type = req.Type
	booking.Amount = in.amount
	booking.Date = in.date
	booking.Description = req.Description
	booking.Notes = req.Notes
	booking.GroupID = nil
	if in.group != nil {
		booking.GroupID = &in.group.ID
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		if err := tx.Model(&booking).Association("PayoutMusicians").Replace(in.payoutMusicians); err != nil {
			return err
		}
		if err := tx.Model(&booking).Association("Tags").Replace(in.tags); err != nil {
			return err
		}
		booking.Group = in.group
		booking.PayoutMusicians = in.payoutMusicians
		derived := services.DeriveBookingTransactions(&booking)
		return services.ReplaceBookingTransactions(tx, &booking, derived)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "update", "booking", booking.ID, booking.Description)
	}

	booking.Tags = in.tags
	return c.JSON(booking)
}

// DeleteBooking removes the booking together with every transaction derived
// from it.
func DeleteBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", c.Params("bookingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&booking).Association("PayoutMusicians").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&booking).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete booking"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "delete", "booking", booking.ID, booking.Description)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
