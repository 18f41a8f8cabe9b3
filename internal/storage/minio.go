package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/filevault/backend/internal/config"
	"github.com/filevault/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStore struct {
	client *minio.Client
	bucket string
}

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (m *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	return nil
}

func (m *MinIOStore) Save(ctx context.Context, ownerID uuid.UUID, data []byte) (string, error) {
	locator := NewLocator(ownerID)
	_, err := m.client.PutObject(ctx, m.bucket, locator, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		logger.Error("minio_save_failed", err, map[string]interface{}{
			"locator": locator,
			"size":    len(data),
			"bucket":  m.bucket,
		})
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	logger.Info("minio_save_success", map[string]interface{}{
		"locator": locator,
		"size":    len(data),
		"bucket":  m.bucket,
	})
	return locator, nil
}

func (m *MinIOStore) Open(ctx context.Context, locator string, variant Variant) (io.ReadCloser, error) {
	key := ObjectKey(locator, variant)
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, m.asStoreError(key, err)
	}
	// GetObject is lazy; Stat forces the existence check.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, m.asStoreError(key, err)
	}
	return obj, nil
}

func (m *MinIOStore) Exists(ctx context.Context, locator string, variant Variant) (bool, error) {
	key := ObjectKey(locator, variant)
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinIOStore) asStoreError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	logger.Error("minio_open_failed", err, map[string]interface{}{
		"object_key": key,
		"bucket":     m.bucket,
	})
	return err
}

var _ Store = (*MinIOStore)(nil)
