package handlers

import (
	"github.com/filevault/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Register wires the HTTP surface. The same registration is used by
// the server binary and the handler tests.
func Register(app *fiber.App, appHandler *AppHandler, authHandler *AuthHandler, filesHandler *FilesHandler, authMiddleware *middleware.AuthMiddleware) {
	app.Get("/status", appHandler.Status)
	app.Get("/stats", appHandler.Stats)

	app.Get("/connect", authHandler.Connect)
	app.Get("/disconnect", authHandler.Disconnect)
	app.Get("/users/me", authMiddleware.RequireAuth, authHandler.Me)

	filesRoutes := app.Group("/files")
	filesRoutes.Get("/:id/data", authMiddleware.OptionalAuth, filesHandler.Data)
	filesRoutes.Post("/", authMiddleware.RequireAuth, filesHandler.Upload)
	filesRoutes.Get("/", authMiddleware.RequireAuth, filesHandler.Index)
	filesRoutes.Get("/:id", authMiddleware.RequireAuth, filesHandler.Show)
	filesRoutes.Put("/:id/publish", authMiddleware.RequireAuth, filesHandler.Publish)
	filesRoutes.Put("/:id/unpublish", authMiddleware.RequireAuth, filesHandler.Unpublish)
}
