package handlers

import (
	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetSettings(c *fiber.Ctx) error {
	var settings []models.Setting
	if err := database.DB.Order("key asc").Find(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(settings)
}

type UpdateSettingRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=100"`
	Value string `json:"value"`
}

// UpdateSetting upserts one shared setting and pushes the change to every
// connected client through the websocket hub.
func UpdateSetting(c *fiber.Ctx) error {
	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.UpdateSetting(req.Key, req.Value); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update setting"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "update", "setting", uuid.Nil, req.Key)
	}

	return c.JSON(fiber.Map{"message": "Setting updated successfully.", "key": req.Key, "value": req.Value})
}
