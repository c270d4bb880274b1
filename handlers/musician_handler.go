package handlers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/notifications"
	"github.com/bandkasse/bandkasse/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateMusicianRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	Role        string  `json:"role" validate:"required,oneof=administrator superuser user"`
	BaseBalance *string `json:"base_balance,omitempty"`
}

func CreateMusician(c *fiber.Ctx) error {
	var req CreateMusicianRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	baseBalance := decimal.Zero
	if req.BaseBalance != nil {
		parsed, err := decimal.NewFromString(*req.BaseBalance)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid base balance"})
		}
		baseBalance = parsed.Round(2)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	musician := models.Musician{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Role:        req.Role,
		BaseBalance: baseBalance,
	}
	if err := database.DB.Create(&musician).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create musician"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "create", "musician", musician.ID, musician.FullName)
	}

	go notifications.SendEmail(musician.FullName, musician.Email, "Willkommen!", "<h1>Willkommen!</h1><p>Für dich wurde ein Konto in der Bandkasse angelegt.</p>")

	return c.Status(fiber.StatusCreated).JSON(musician)
}

func GetAllMusicians(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "25"))
	search := strings.TrimSpace(c.Query("search"))
	includeArchived := c.Query("archived") == "true"
	offset := (page - 1) * limit

	var musicians []models.Musician
	var total int64

	query := database.DB.Model(&models.Musician{})
	countQuery := database.DB.Model(&models.Musician{})

	if !includeArchived {
		query = query.Where("archived = ?", false)
		countQuery = countQuery.Where("archived = ?", false)
	}
	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
		countQuery = countQuery.Where("full_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}

	countQuery.Count(&total)
	query.Order("full_name asc").Offset(offset).Limit(limit).Find(&musicians)

	return c.JSON(fiber.Map{
		"data": musicians,
		"meta": fiber.Map{
			"total":        total,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
			"current_page": page,
		},
	})
}

func GetMusician(c *fiber.Ctx) error {
	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", c.Params("musicianId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}
	return c.JSON(musician)
}

type UpdateMusicianRequest struct {
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=administrator superuser user"`
	BaseBalance *string `json:"base_balance,omitempty"`
}

func UpdateMusician(c *fiber.Ctx) error {
	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", c.Params("musicianId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}

	var req UpdateMusicianRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FullName != nil {
		musician.FullName = *req.FullName
	}
	if req.Email != nil {
		musician.Email = *req.Email
	}
	if req.Role != nil {
		musician.Role = *req.Role
	}
	if req.BaseBalance != nil {
		parsed, err := decimal.NewFromString(*req.BaseBalance)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid base balance"})
		}
		musician.BaseBalance = parsed.Round(2)
	}

	if err := database.DB.Save(&musician).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update musician"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "update", "musician", musician.ID, musician.FullName)
	}

	return c.JSON(musician)
}

// ArchiveMusician soft-deletes a musician. Musicians with ledger history
// are never hard-deleted; archiving keeps their transactions intact while
// blocking login.
func ArchiveMusician(c *fiber.Ctx) error {
	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", c.Params("musicianId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}

	now := time.Now()
	musician.Archived = true
	musician.ArchivedAt = &now
	if err := database.DB.Save(&musician).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to archive musician"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "archive", "musician", musician.ID, musician.FullName)
	}

	return c.JSON(fiber.Map{"message": "Musician archived successfully."})
}

func RestoreMusician(c *fiber.Ctx) error {
	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", c.Params("musicianId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}

	musician.Archived = false
	musician.ArchivedAt = nil
	if err := database.DB.Save(&musician).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to restore musician"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "restore", "musician", musician.ID, musician.FullName)
	}

	return c.JSON(fiber.Map{"message": "Musician restored successfully."})
}

// DeleteMusician hard-deletes a musician, but only when no transactions
// reference them. Otherwise callers must archive instead.
func DeleteMusician(c *fiber.Ctx) error {
	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", c.Params("musicianId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}

	var txnCount int64
	database.DB.Model(&models.Transaction{}).Where("musician_id = ?", musician.ID).Count(&txnCount)
	if txnCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Musician has transactions and can only be archived"})
	}

	if err := database.DB.Delete(&musician).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete musician"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "delete", "musician", musician.ID, musician.FullName)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func GetOwnProfile(c *fiber.Ctx) error {
	musicianID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", musicianID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}
	return c.JSON(musician)
}

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Password          *string `json:"password,omitempty" validate:"omitempty,min=6"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

func UpdateOwnProfile(c *fiber.Ctx) error {
	musicianID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", musicianID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FullName != nil {
		musician.FullName = *req.FullName
	}
	if req.ProfilePictureURL != nil {
		musician.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		musician.Password = string(hashedPassword)
	}

	if err := database.DB.Save(&musician).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(musician)
}

// GetMusicianBalance returns the current balance: base balance plus the
// signed sum of all transactions. Musicians may read their own balance;
// reading someone else's requires the view-all capability.
func GetMusicianBalance(c *fiber.Ctx) error {
	requesterID, err := middleware.MusicianID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	targetID := c.Params("musicianId")
	if targetID != requesterID.String() && !middleware.HasCapability(middleware.Role(c), middleware.CapViewAllLedgers) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Musician not found"})
	}

	var txns []models.Transaction
	if err := database.DB.Where("musician_id = ?", musician.ID).Find(&txns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}

	balance := services.CurrentBalance(musician.BaseBalance, txns)
	return c.JSON(fiber.Map{
		"musician_id":  musician.ID,
		"base_balance": musician.BaseBalance,
		"balance":      balance,
	})
}
