package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed creating store: %v", err)
	}

	ctx := context.Background()
	owner := uuid.New()
	content := []byte("stored bytes")

	locator, err := store.Save(ctx, owner, content)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rc, err := store.Open(ctx, locator, VariantOriginal)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading content failed: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("round-trip mismatch: got %q", got)
	}
}

func TestFSStoreLocatorsAreUnique(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed creating store: %v", err)
	}

	ctx := context.Background()
	owner := uuid.New()

	first, err := store.Save(ctx, owner, []byte("same bytes"))
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	second, err := store.Save(ctx, owner, []byte("same bytes"))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct locators for separate writes")
	}
}

func TestFSStoreVariants(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("failed creating store: %v", err)
	}

	ctx := context.Background()
	locator, err := store.Save(ctx, uuid.New(), []byte("original"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := store.Open(ctx, locator, Variant100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an ungenerated variant, got %v", err)
	}

	exists, err := store.Exists(ctx, locator, Variant100)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Fatalf("variant should not exist before the worker writes it")
	}

	if err := os.WriteFile(filepath.Join(dir, locator+"_100"), []byte("small"), 0o644); err != nil {
		t.Fatalf("failed writing variant: %v", err)
	}

	rc, err := store.Open(ctx, locator, Variant100)
	if err != nil {
		t.Fatalf("Open variant failed: %v", err)
	}
	defer rc.Close()

	got, _ := io.ReadAll(rc)
	if string(got) != "small" {
		t.Fatalf("expected variant bytes, got %q", got)
	}
}

func TestFSStoreMissingLocator(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed creating store: %v", err)
	}

	ctx := context.Background()
	if _, err := store.Open(ctx, "nobody/nothing", VariantOriginal); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		raw  string
		want Variant
	}{
		{"100", Variant100},
		{"250", Variant250},
		{"500", Variant500},
		{"", VariantOriginal},
		{"999", VariantOriginal},
		{"abc", VariantOriginal},
	}

	for _, tt := range tests {
		if got := ParseVariant(tt.raw); got != tt.want {
			t.Fatalf("ParseVariant(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestObjectKey(t *testing.T) {
	if got := ObjectKey("a/b", VariantOriginal); got != "a/b" {
		t.Fatalf("original key changed: %q", got)
	}
	if got := ObjectKey("a/b", Variant250); got != "a/b_250" {
		t.Fatalf("unexpected variant key: %q", got)
	}
}
