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

type ConcertExpenseRequest struct {
	Description string  `json:"description" validate:"required,min=1"`
	Amount      string  `json:"amount" validate:"required"`
	TagID       *string `json:"tag_id,omitempty" validate:"omitempty,uuid"`
}

type ConcertRequest struct {
	Name     string                  `json:"name" validate:"required,min=2"`
	Location string                  `json:"location"`
	Date     string                  `json:"date" validate:"required"`
	Fee      string                  `json:"fee" validate:"required"`
	GroupID  *string                 `json:"group_id,omitempty" validate:"omitempty,uuid"`
	Expenses []ConcertExpenseRequest `json:"expenses" validate:"dive"`
}

type concertInput struct {
	fee      decimal.Decimal
	date     time.Time
	group    *models.Group
	expenses []models.ConcertExpense
}

func parseConcertRequest(req *ConcertRequest) (*concertInput, error) {
	fee, err := decimal.NewFromString(req.Fee)
	if err != nil || fee.IsNegative() {
		return nil, errors.New("fee must be a non-negative decimal")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.New("invalid date format, use YYYY-MM-DD")
	}

	in := &concertInput{fee: fee.Round(2), date: date}

	if req.GroupID != nil {
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

	for _, e := range req.Expenses {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil || !amount.GreaterThan(decimal.Zero) {
			return nil, errors.New("expense amounts must be positive decimals")
		}
		expense := models.ConcertExpense{
			Description: e.Description,
			Amount:      amount.Round(2),
		}
		if e.TagID != nil {
			tagID, err := uuid.Parse(*e.TagID)
			if err != nil {
				return nil, errors.New("invalid tag id")
			}
			expense.TagID = &tagID
		}
		in.expenses = append(in.expenses, expense)
	}

	return in, nil
}

// CreateConcert saves the concert, its expense line items, and the derived
// fee distribution in one DB transaction.
func CreateConcert(c *fiber.Ctx) error {
	var req ConcertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in, err := parseConcertRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	concert := models.Concert{
		Name:     req.Name,
		Location: req.Location,
		Date:     in.date,
		Fee:      in.fee,
		Expenses: in.expenses,
	}
	if in.group != nil {
		concert.GroupID = &in.group.ID
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&concert).Error; err != nil {
			return err
		}
		concert.Group = in.group
		derived := services.DeriveConcertTransactions(&concert)
		return services.ReplaceConcertTransactions(tx, &concert, derived)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save concert"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "create", "concert", concert.ID, concert.Name)
	}

	return c.Status(fiber.StatusCreated).JSON(concert)
}

func ListConcerts(c *fiber.Ctx) error {
	query := database.DB.
		Preload("Group.Members").
		Preload("Expenses").
		Preload("Expenses.Tag").
		Order("date desc")

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

	var concerts []models.Concert
	if err := query.Find(&concerts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(concerts)
}

func GetConcert(c *fiber.Ctx) error {
	var concert models.Concert
	if err := database.DB.
		Preload("Group.Members.Musician").
		Preload("Expenses").
		Preload("Expenses.Tag").
		First(&concert, "id = ?", c.Params("concertId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Concert not found"})
	}
	return c.JSON(fiber.Map{
		"concert":   concert,
		"remainder": concert.Remainder(),
	})
}

// UpdateConcert replaces expense line items and re-derives the fee
// distribution. A concert whose remainder drops to zero or below loses all
// previously derived transactions.
func UpdateConcert(c *fiber.Ctx) error {
	var concert models.Concert
	if err := database.DB.First(&concert, "id = ?", c.Params("concertId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Concert not found"})
	}

	var req ConcertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in, err := parseConcertRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	concert.Name = req.Name
	concert.Location = req.Location
	concert.Date = in.date
	concert.Fee = in.fee
	concert.GroupID = nil
	if in.group != nil {
		concert.GroupID = &in.group.ID
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("concert_id = ?", concert.ID).Delete(&models.ConcertExpense{}).Error; err != nil {
			return err
		}
		for i := range in.expenses {
			in.expenses[i].ConcertID = concert.ID
		}
		if len(in.expenses) > 0 {
			if err := tx.Create(&in.expenses).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(&concert).Error; err != nil {
			return err
		}
		concert.Group = in.group
		concert.Expenses = in.expenses
		derived := services.DeriveConcertTransactions(&concert)
		return services.ReplaceConcertTransactions(tx, &concert, derived)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update concert"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "update", "concert", concert.ID, concert.Name)
	}

	return c.JSON(concert)
}

// DeleteConcert removes the concert, its expense line items, and every
// transaction derived from it.
func DeleteConcert(c *fiber.Ctx) error {
	var concert models.Concert
	if err := database.DB.First(&concert, "id = ?", c.Params("concertId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Concert not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("concert_id = ?", concert.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("concert_id = ?", concert.ID).Delete(&models.ConcertExpense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&concert).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete concert"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "delete", "concert", concert.ID, concert.Name)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
