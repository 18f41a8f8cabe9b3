package handlers

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/filevault/backend/internal/auth"
	"github.com/filevault/backend/internal/middleware"
	"github.com/filevault/backend/internal/models"
	"github.com/filevault/backend/pkg/logger"
	"github.com/filevault/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB     *gorm.DB
	Tokens auth.TokenStore
}

func NewAuthHandler(db *gorm.DB, tokens auth.TokenStore) *AuthHandler {
	return &AuthHandler{DB: db, Tokens: tokens}
}

// Connect exchanges Basic credentials for a session token.
func (h *AuthHandler) Connect(c *fiber.Ctx) error {
	email, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user models.User
	if err := h.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to authenticate")
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		logger.Warn("login_failed", map[string]interface{}{
			"email": email,
			"ip":    c.IP(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	token, err := h.Tokens.Create(c.Context(), user.ID)
	if err != nil {
		logger.Error("token_create_failed", err, map[string]interface{}{
			"user_id": user.ID.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{"token": token})
}

// Disconnect revokes the caller's session token.
func (h *AuthHandler) Disconnect(c *fiber.Ctx) error {
	token := c.Get(middleware.TokenHeader)
	if token == "" {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := h.Tokens.Revoke(c.Context(), token); err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to end session")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return utils.JSON(c, fiber.StatusOK, currentUser)
}

func parseBasicAuth(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
