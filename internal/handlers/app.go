package handlers

import (
	"context"

	"github.com/filevault/backend/internal/files"
	"github.com/filevault/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// HealthFunc reports whether a backing service is reachable.
type HealthFunc func(ctx context.Context) error

type AppHandler struct {
	Repo       *files.Repository
	DBCheck    HealthFunc
	RedisCheck HealthFunc
}

func NewAppHandler(repo *files.Repository, dbCheck, redisCheck HealthFunc) *AppHandler {
	return &AppHandler{Repo: repo, DBCheck: dbCheck, RedisCheck: redisCheck}
}

func (h *AppHandler) Status(c *fiber.Ctx) error {
	return utils.JSON(c, fiber.StatusOK, fiber.Map{
		"db":    h.DBCheck(c.Context()) == nil,
		"redis": h.RedisCheck(c.Context()) == nil,
	})
}

func (h *AppHandler) Stats(c *fiber.Ctx) error {
	users, err := h.Repo.CountUsers(c.Context())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	filesCount, err := h.Repo.CountFiles(c.Context())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}

	return utils.JSON(c, fiber.StatusOK, fiber.Map{
		"users": users,
		"files": filesCount,
	})
}
