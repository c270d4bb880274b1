package handlers

import (
	"errors"
	"strings"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateTag creates a tag. Creating a name that already exists is not an
// error: the existing tag is returned instead.
func CreateTag(c *fiber.Ctx) error {
	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	name := strings.TrimSpace(req.Name)
	tag := models.Tag{Name: name}
	if err := database.DB.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Tag
			if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
				return c.JSON(existing)
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tag"})
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

func ListTags(c *fiber.Ctx) error {
	var tags []models.Tag
	if err := database.DB.Order("name asc").Find(&tags).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(tags)
}

func UpdateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := database.DB.First(&tag, "id = ?", c.Params("tagId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tag not found"})
	}

	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tag.Name = strings.TrimSpace(req.Name)
	if err := database.DB.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Tag name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update tag"})
	}
	return c.JSON(tag)
}

func DeleteTag(c *fiber.Ctx) error {
	tagID := c.Params("tagId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM booking_tags WHERE tag_id = ?", tagID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ConcertExpense{}).Where("tag_id = ?", tagID).Update("tag_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, "id = ?", tagID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tag not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete tag"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
