package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/glicosaude/internal/onboarding"
)

// TokenDenylist remembers revoked token ids until they would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// DraftStore keeps the in-progress onboarding wizard per identity.
type DraftStore interface {
	Get(ctx context.Context, userID string) (*onboarding.State, error)
	Save(ctx context.Context, userID string, state onboarding.State) error
	Delete(ctx context.Context, userID string) error
}
