package handlers

import (
	"errors"
	"mime"
	"path/filepath"

	"github.com/filevault/backend/internal/files"
	"github.com/filevault/backend/internal/middleware"
	"github.com/filevault/backend/internal/models"
	"github.com/filevault/backend/internal/storage"
	"github.com/filevault/backend/pkg/logger"
	"github.com/filevault/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FilesHandler struct {
	Repo     *files.Repository
	Pipeline *files.Pipeline
}

func NewFilesHandler(repo *files.Repository, pipeline *files.Pipeline) *FilesHandler {
	return &FilesHandler{Repo: repo, Pipeline: pipeline}
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID any    `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	parentID, ok := parseParentID(req.ParentID)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Parent not found")
	}

	record, err := h.Pipeline.Upload(c.Context(), files.UploadInput{
		OwnerID:  currentUser.ID,
		Name:     req.Name,
		Kind:     models.FileKind(req.Type),
		ParentID: parentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		var ve *files.ValidationError
		if errors.As(err, &ve) {
			return utils.Error(c, fiber.StatusBadRequest, ve.Error())
		}
		logger.ErrorWithUser(currentUser.ID.String(), "file_upload_failed", err, map[string]interface{}{
			"name": req.Name,
			"type": req.Type,
		})
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	logger.InfoWithUser(currentUser.ID.String(), "file_uploaded", map[string]interface{}{
		"file_id":   record.ID.String(),
		"file_name": record.Name,
		"file_type": string(record.Kind),
		"is_public": record.IsPublic,
	})

	return utils.JSON(c, fiber.StatusCreated, record)
}

func (h *FilesHandler) Show(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// Malformed ids read as not-found: they cannot name any record.
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Not found")
	}

	record, err := h.Repo.FindOwned(c.Context(), currentUser.ID, id)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load file")
	}

	return utils.JSON(c, fiber.StatusOK, record)
}

func (h *FilesHandler) Index(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page := parsePage(c.Query("page"))

	var parentID *uuid.UUID
	rawParent := c.Query("parentId")
	if rawParent != "" && rawParent != "0" {
		parsed, err := parseUUID(rawParent)
		if err != nil {
			// A parent id that cannot name a record matches nothing.
			return utils.JSON(c, fiber.StatusOK, []models.File{})
		}
		parentID = &parsed
	}

	records, err := h.Repo.ListByParent(c.Context(), currentUser.ID, parentID, page)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to list files")
	}
	if records == nil {
		records = []models.File{}
	}

	return utils.JSON(c, fiber.StatusOK, records)
}

func (h *FilesHandler) Publish(c *fiber.Ctx) error {
	return h.setPublication(c, true)
}

func (h *FilesHandler) Unpublish(c *fiber.Ctx) error {
	return h.setPublication(c, false)
}

func (h *FilesHandler) setPublication(c *fiber.Ctx, published bool) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Not found")
	}

	record, err := h.Repo.SetPublication(c.Context(), currentUser.ID, id, published)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update file")
	}

	logger.InfoWithUser(currentUser.ID.String(), "file_publication_changed", map[string]interface{}{
		"file_id":   record.ID.String(),
		"is_public": record.IsPublic,
	})

	return utils.JSON(c, fiber.StatusOK, record)
}

// Data streams a record's bytes. It sits behind OptionalAuth: public
// files are fetchable without a session.
func (h *FilesHandler) Data(c *fiber.Ctx) error {
	var requesterID *uuid.UUID
	if currentUser := middleware.GetCurrentUser(c); currentUser != nil {
		requesterID = &currentUser.ID
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Not found")
	}

	record, err := h.Repo.FindVisible(c.Context(), requesterID, id)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load file")
	}

	if record.Kind == models.KindFolder {
		return utils.Error(c, fiber.StatusBadRequest, "A folder doesn't have content")
	}

	variant := storage.ParseVariant(c.Query("size"))
	content, err := h.Repo.OpenContent(c.Context(), record, variant)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "Not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to read content")
	}

	mimeType := mime.TypeByExtension(filepath.Ext(record.Name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, mimeType)

	return c.SendStream(content)
}
