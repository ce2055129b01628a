package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/outreach-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenRepository tracks revoked access tokens until they expire on their own.
type TokenRepository interface {
	Revoke(ctx context.Context, token string, ttlSeconds int) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
