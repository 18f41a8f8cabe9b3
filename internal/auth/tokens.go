// Package auth issues and resolves opaque session tokens. Tokens live
// in a key-value store under "auth_<token>" with a TTL, so expiry is
// enforced by the store rather than by request-time checks.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

const keyPrefix = "auth_"

var ErrTokenNotFound = errors.New("token not found")

type TokenStore interface {
	// Create issues a fresh token for the user and stores it with the
	// configured TTL.
	Create(ctx context.Context, userID uuid.UUID) (string, error)

	// Resolve returns the user id a token was issued for, or
	// ErrTokenNotFound if the token is unknown or expired.
	Resolve(ctx context.Context, token string) (uuid.UUID, error)

	// Revoke deletes a token. Revoking an unknown token returns
	// ErrTokenNotFound.
	Revoke(ctx context.Context, token string) error
}
