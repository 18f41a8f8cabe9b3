package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisTokenStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisTokenStore(client redis.UniversalClient, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{client: client, ttl: ttl}
}

func (s *RedisTokenStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()
	if err := s.client.Set(ctx, keyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisTokenStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrTokenNotFound
	}
	return userID, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTokenNotFound
	}
	return nil
}

var _ TokenStore = (*RedisTokenStore)(nil)
