package middleware

import (
	"github.com/filevault/backend/internal/auth"
	"github.com/filevault/backend/internal/models"
	"github.com/filevault/backend/pkg/logger"
	"github.com/filevault/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// TokenHeader carries the opaque session token issued by /connect.
const TokenHeader = "X-Token"

type AuthMiddleware struct {
	DB     *gorm.DB
	Tokens auth.TokenStore
}

func NewAuthMiddleware(db *gorm.DB, tokens auth.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{DB: db, Tokens: tokens}
}

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, X-Token, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	})
}

func (a *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	user := a.resolveUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	c.Locals(currentUserKey, user)
	return c.Next()
}

// OptionalAuth resolves the caller when a valid token is present and
// continues anonymously otherwise. Used by the content-fetch path,
// where public files are readable without a session.
func (a *AuthMiddleware) OptionalAuth(c *fiber.Ctx) error {
	if user := a.resolveUser(c); user != nil {
		c.Locals(currentUserKey, user)
	}
	return c.Next()
}

func (a *AuthMiddleware) resolveUser(c *fiber.Ctx) *models.User {
	token := c.Get(TokenHeader)
	if token == "" {
		return nil
	}

	userID, err := a.Tokens.Resolve(c.Context(), token)
	if err != nil {
		if err != auth.ErrTokenNotFound {
			logger.Error("token_resolve_failed", err, map[string]interface{}{
				"path": c.Path(),
				"ip":   c.IP(),
			})
		}
		return nil
	}

	var user models.User
	if err := a.DB.First(&user, "id = ?", userID).Error; err != nil {
		logger.Warn("token_user_not_found", map[string]interface{}{
			"user_id": userID.String(),
			"path":    c.Path(),
		})
		return nil
	}
	return &user
}

func GetCurrentUser(c *fiber.Ctx) *models.User {
	value := c.Locals(currentUserKey)
	if value == nil {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
