package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemoryTokenStore is an in-process TokenStore for tests and local
// development. Expired entries are dropped lazily on access.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *MemoryTokenStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[keyPrefix+token] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryTokenStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[keyPrefix+token]
	if !ok {
		return uuid.Nil, ErrTokenNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, keyPrefix+token)
		return uuid.Nil, ErrTokenNotFound
	}
	return entry.userID, nil
}

func (s *MemoryTokenStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[keyPrefix+token]; !ok {
		return ErrTokenNotFound
	}
	delete(s.entries, keyPrefix+token)
	return nil
}

var _ TokenStore = (*MemoryTokenStore)(nil)
