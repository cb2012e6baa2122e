// Package revocation records logged-out token ids until they would expire anyway.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store remembers revoked token ids.
type Store interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client, now: time.Now}
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func key(jti string) string {
	return "revoked:" + jti
}

func (s *redisStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(s.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *redisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

type noopStore struct{}

// NewNoopStore returns a Store that never revokes. Used when redis is not configured.
func NewNoopStore() Store {
	return noopStore{}
}

func (noopStore) Revoke(context.Context, string, time.Time) error { return nil }

func (noopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
