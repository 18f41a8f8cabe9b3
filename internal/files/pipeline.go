package files

import (
	"context"
	"encoding/base64"

	"github.com/filevault/backend/internal/models"
	"github.com/filevault/backend/internal/thumbnail"
	"github.com/filevault/backend/pkg/logger"
	"github.com/google/uuid"
)

// Pipeline orchestrates uploads: transport decoding, record creation
// and the post-processing handoff for images.
type Pipeline struct {
	repo  *Repository
	thumb thumbnail.Dispatcher
}

func NewPipeline(repo *Repository, thumb thumbnail.Dispatcher) *Pipeline {
	return &Pipeline{repo: repo, thumb: thumb}
}

type UploadInput struct {
	OwnerID  uuid.UUID
	Name     string
	Kind     models.FileKind
	ParentID *uuid.UUID
	IsPublic bool
	Data     string
}

// Upload decodes the base64 payload, creates the record and, for
// images, enqueues thumbnail generation. The enqueue is fire-and-
// forget: a dead queue costs thumbnails, never the upload itself.
func (p *Pipeline) Upload(ctx context.Context, in UploadInput) (*models.File, error) {
	var content []byte
	if in.Data != "" {
		decoded, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, invalid("Invalid data")
		}
		content = decoded
	}

	record, err := p.repo.Create(ctx, CreateInput{
		OwnerID:  in.OwnerID,
		Name:     in.Name,
		Kind:     in.Kind,
		ParentID: in.ParentID,
		IsPublic: in.IsPublic,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	if record.Kind == models.KindImage {
		job := thumbnail.Job{OwnerID: record.OwnerID, FileID: record.ID}
		if err := p.thumb.Enqueue(ctx, job); err != nil {
			logger.Warn("thumbnail_enqueue_failed", map[string]interface{}{
				"file_id":  record.ID.String(),
				"owner_id": record.OwnerID.String(),
				"error":    err.Error(),
			})
		}
	}

	return record, nil
}
