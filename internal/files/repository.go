// Package files owns the file/folder metadata tree and the upload
// pipeline on top of it. Every lookup is scoped to a requester; records
// that exist but are not visible surface as ErrNotFound.
package files

import (
	"context"
	"errors"
	"io"

	"github.com/filevault/backend/internal/access"
	"github.com/filevault/backend/internal/models"
	"github.com/filevault/backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize caps every listing page.
const PageSize = 20

type Repository struct {
	db    *gorm.DB
	store storage.Store
}

func NewRepository(db *gorm.DB, store storage.Store) *Repository {
	return &Repository{db: db, store: store}
}

type CreateInput struct {
	OwnerID  uuid.UUID
	Name     string
	Kind     models.FileKind
	ParentID *uuid.UUID
	IsPublic bool
	Content  []byte
}

// Create validates the input, persists content for file/image kinds and
// inserts the metadata record. The parent, when given, must be an
// existing folder; its owner is not checked, so nesting under another
// user's folder is allowed (listings stay owner-scoped regardless).
func (r *Repository) Create(ctx context.Context, in CreateInput) (*models.File, error) {
	if in.Name == "" {
		return nil, invalid("Missing name")
	}
	if !in.Kind.Valid() {
		return nil, invalid("Missing type")
	}
	if in.Kind.HasContent() && len(in.Content) == 0 {
		return nil, invalid("Missing data")
	}
	if !in.Kind.HasContent() && len(in.Content) > 0 {
		return nil, invalid("A folder cannot have content")
	}

	if in.ParentID != nil {
		var parent models.File
		err := r.db.WithContext(ctx).First(&parent, "id = ?", *in.ParentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalid("Parent not found")
			}
			return nil, err
		}
		if parent.Kind != models.KindFolder {
			return nil, invalid("Parent is not a folder")
		}
	}

	record := models.File{
		Name:     in.Name,
		Kind:     in.Kind,
		ParentID: in.ParentID,
		OwnerID:  in.OwnerID,
		IsPublic: in.IsPublic,
	}

	if in.Kind.HasContent() {
		locator, err := r.store.Save(ctx, in.OwnerID, in.Content)
		if err != nil {
			return nil, err
		}
		record.StoragePath = locator
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindOwned is the strict-owner lookup backing the show path. A record
// owned by someone else reads the same as one that does not exist.
func (r *Repository) FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*models.File, error) {
	var record models.File
	err := r.db.WithContext(ctx).First(&record, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindVisible backs the content-fetch path: public records are visible
// to anyone including anonymous requesters, private ones only to their
// owner.
func (r *Repository) FindVisible(ctx context.Context, requesterID *uuid.UUID, id uuid.UUID) (*models.File, error) {
	var record models.File
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanRead(requesterID, &record) {
		return nil, ErrNotFound
	}
	return &record, nil
}

// ListByParent returns one page of the owner's records under a parent,
// in creation order. A nil parent lists the top level. Negative pages
// are clamped to the first page.
func (r *Repository) ListByParent(ctx context.Context, ownerID uuid.UUID, parentID *uuid.UUID, page int) ([]models.File, error) {
	if page < 0 {
		page = 0
	}

	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var records []models.File
	err := query.
		Order("created_at ASC, id ASC").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SetPublication flips the publish flag with a single conditional
// update keyed by id and owner, so concurrent publishers cannot race
// and ownership mismatches read as not-found.
func (r *Repository) SetPublication(ctx context.Context, ownerID, id uuid.UUID, published bool) (*models.File, error) {
	result := r.db.WithContext(ctx).
		Model(&models.File{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("is_public", published)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindOwned(ctx, ownerID, id)
}

// OpenContent streams a record's bytes, or a derived variant of them.
func (r *Repository) OpenContent(ctx context.Context, record *models.File, variant storage.Variant) (io.ReadCloser, error) {
	if !record.Kind.HasContent() {
		return nil, invalid("A folder doesn't have content")
	}
	return r.store.Open(ctx, record.StoragePath, variant)
}

func (r *Repository) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.File{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
