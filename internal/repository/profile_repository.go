package repository

import (
	"context"

	"github.com/gdugdh24/glicosaude/internal/domain"
)

// ProfileRepository stores at most one profile row per identity.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ProfileRow, error)
	// Upsert inserts or replaces the row keyed by row.ID.
	Upsert(ctx context.Context, row *domain.ProfileRow) error
	Delete(ctx context.Context, id string) error
}
