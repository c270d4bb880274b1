package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	config "github.com/bandkasse/bandkasse/configs"
	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/notifications"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MusicianResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func LoginMusician(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var musician models.Musician
	result := database.DB.Where("email = ?", req.Email).First(&musician)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if musician.Archived {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "This account has been archived"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(musician.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"user_id": musician.ID.String(),
		"role":    musician.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"token": t,
		"musician": MusicianResponse{
			ID:        musician.ID.String(),
			FullName:  musician.FullName,
			Email:     musician.Email,
			Role:      musician.Role,
			CreatedAt: musician.CreatedAt,
		},
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var musician models.Musician
	if err := database.DB.Where("email = ?", req.Email).First(&musician).Error; err != nil {
		// Do not reveal whether the address exists.
		return c.JSON(fiber.Map{"message": "If the email exists, a reset link has been sent."})
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate reset token"})
	}
	resetToken := hex.EncodeToString(tokenBytes)
	expiresAt := time.Now().Add(1 * time.Hour)

	musician.ResetPasswordToken = &resetToken
	musician.ResetPasswordTokenExpiresAt = &expiresAt
	if err := database.DB.Save(&musician).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store reset token"})
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.Config("FRONTEND_URL"), resetToken)
	go notifications.SendEmail(
		musician.FullName,
		musician.Email,
		"Passwort zurücksetzen",
		fmt.Sprintf("<h1>Passwort zurücksetzen</h1><p>Hallo %s,</p><p>über diesen Link kannst du ein neues Passwort setzen: <a href='%s'>Passwort zurücksetzen</a>. Der Link ist eine Stunde gültig.</p>", musician.FullName, resetLink),
	)

	return c.JSON(fiber.Map{"message": "If the email exists, a reset link has been sent."})
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var musician models.Musician
	if err := database.DB.Where("reset_password_token = ?", req.Token).First(&musician).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired reset token"})
	}
	if musician.ResetPasswordTokenExpiresAt == nil || musician.ResetPasswordTokenExpiresAt.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired reset token"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	musician.Password = string(hashedPassword)
	musician.ResetPasswordToken = nil
	musician.ResetPasswordTokenExpiresAt = nil
	if err := database.DB.Save(&musician).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password has been reset successfully."})
}
