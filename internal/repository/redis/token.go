package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/outreach-api/internal/repository"
)

const revokedKeyPrefix = "revoked_token:"

type tokenRepository struct {
	client *redis.Client
}

// NewClient connects to Redis from a URL of the form redis://host:port/db.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func NewTokenRepository(client *redis.Client) repository.TokenRepository {
	return &tokenRepository{client: client}
}

// Revoke blacklists a token for its remaining lifetime; the key expires with
// the token, so the list never needs cleanup.
func (r *tokenRepository) Revoke(ctx context.Context, token string, ttlSeconds int) error {
	if ttlSeconds <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+token, 1, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
