package handlers

import (
	"errors"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/middleware"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GroupMemberRequest struct {
	MusicianID string `json:"musician_id" validate:"required,uuid"`
	Percent    string `json:"percent" validate:"required"`
}

type GroupRequest struct {
	Name    string               `json:"name" validate:"required,min=2"`
	Members []GroupMemberRequest `json:"members" validate:"required,min=1,dive"`
}

func parseGroupMembers(reqs []GroupMemberRequest) ([]models.GroupMember, error) {
	members := make([]models.GroupMember, 0, len(reqs))
	for i, m := range reqs {
		musicianID, err := uuid.Parse(m.MusicianID)
		if err != nil {
			return nil, errors.New("invalid musician id")
		}
		percent, err := decimal.NewFromString(m.Percent)
		if err != nil || percent.IsNegative() {
			return nil, errors.New("invalid percent share")
		}
		members = append(members, models.GroupMember{
			MusicianID: musicianID,
			Percent:    percent.Round(2),
			Position:   i,
		})
	}
	return members, nil
}

func CreateGroup(c *fiber.Ctx) error {
	var req GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	members, err := parseGroupMembers(req.Members)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := services.ValidateShares(members); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	group := models.Group{Name: req.Name, Members: members}
	if err := database.DB.Create(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create group"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "create", "group", group.ID, group.Name)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

func ListGroups(c *fiber.Ctx) error {
	var groups []models.Group
	if err := database.DB.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("group_members.position asc")
	}).Preload("Members.Musician").Find(&groups).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(groups)
}

func GetGroup(c *fiber.Ctx) error {
	var group models.Group
	if err := database.DB.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("group_members.position asc")
	}).Preload("Members.Musician").First(&group, "id = ?", c.Params("groupId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}
	return c.JSON(group)
}

// UpdateGroup replaces the group's name and full member list. Existing
// bookings and concerts keep the transactions derived from the shares that
// were current at their last save.
func UpdateGroup(c *fiber.Ctx) error {
	var group models.Group
	if err := database.DB.First(&group, "id = ?", c.Params("groupId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
	}

	var req GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	members, err := parseGroupMembers(req.Members)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := services.ValidateShares(members); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].GroupID = group.ID
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}
		group.Name = req.Name
		return tx.Save(&group).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update group"})
	}

	if actorID, err := middleware.MusicianID(c); err == nil {
		go services.RecordLog(actorID, "update", "group", group.ID, group.Name)
	}

	group.Members = members
	return c.JSON(group)
}

func DeleteGroup(c *fiber.Ctx) error {
	groupID := c.Params("groupId")

	var bookingCount, concertCount int64
	database.DB.Model(&models.Booking{}).Where("group_id = ?", groupID).Count(&bookingCount)
	database.DB.Model(&models.Concert{}).Where("group_id = ?", groupID).Count(&concertCount)
	if bookingCount > 0 || concertCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Group is still referenced by bookings or concerts"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Group{}, "id = ?", groupID)
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
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Group not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete group"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// EvenSplitShares returns an even percentage split for n members, with the
// rounding remainder on the first share so the sum is exactly 100.00.
func EvenSplitShares(c *fiber.Ctx) error {
	n := c.QueryInt("members")
	shares, err := services.EvenSplit(n)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]string, len(shares))
	for i, s := range shares {
		out[i] = s.StringFixed(2)
	}
	return c.JSON(fiber.Map{"shares": out})
}
