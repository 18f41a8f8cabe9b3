// Package storage persists raw file content. Metadata records hold an
// opaque locator; derived thumbnail renditions live beside the original
// under size-suffixed keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("content not found")
	ErrWrite    = errors.New("content write failed")
)

// Variant identifies a derived rendition of an image. VariantOriginal
// resolves to the bytes as uploaded.
type Variant int

const (
	VariantOriginal Variant = 0
	Variant100      Variant = 100
	Variant250      Variant = 250
	Variant500      Variant = 500
)

// ParseVariant maps a raw size parameter to a known variant. Anything
// outside the fixed set resolves to the original.
func ParseVariant(raw string) Variant {
	switch raw {
	case "100":
		return Variant100
	case "250":
		return Variant250
	case "500":
		return Variant500
	default:
		return VariantOriginal
	}
}

// ObjectKey returns the backing key for a locator's variant.
func ObjectKey(locator string, variant Variant) string {
	if variant == VariantOriginal {
		return locator
	}
	return fmt.Sprintf("%s_%d", locator, variant)
}

// Store writes and reads content blobs. Content is immutable once
// written: Save always mints a fresh locator and no overwrite API
// exists, so a locator maps to the same bytes for the record's
// lifetime.
type Store interface {
	// Save persists data and returns the locator it can be read back
	// under. Fails with ErrWrite if the backing medium rejects it.
	Save(ctx context.Context, ownerID uuid.UUID, data []byte) (string, error)

	// Open returns a reader over the locator's variant. Fails with
	// ErrNotFound if the variant's backing bytes are missing.
	Open(ctx context.Context, locator string, variant Variant) (io.ReadCloser, error)

	// Exists reports whether the locator's variant has backing bytes.
	Exists(ctx context.Context, locator string, variant Variant) (bool, error)
}

// NewLocator derives an owner-scoped content key. The uuid segment
// keeps repeated uploads of identical names distinct.
func NewLocator(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", ownerID.String(), uuid.New().String())
}
