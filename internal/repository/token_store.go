package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a refresh token is unknown, expired
// or already revoked.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStore keeps opaque refresh tokens with a TTL. Expiry is handled
// by the store itself; a token that outlived its TTL simply stops
// resolving.
type TokenStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(token string) string {
	return "refresh:" + token
}

func (s *redisTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(token), userID, ttl).Err()
}

func (s *redisTokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (s *redisTokenStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, tokenKey(token)).Err()
}
