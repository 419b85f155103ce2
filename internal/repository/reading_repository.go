package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
)

type ReadingRepository interface {
	Create(ctx context.Context, reading *domain.GlucoseReading) error
	// ListByUser returns the user's readings, newest measured_at first.
	ListByUser(ctx context.Context, userID string) ([]*domain.GlucoseReading, error)
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.GlucoseReading, error)
	Delete(ctx context.Context, id, userID string) error
}

// ReadingCache caches a user's reading list until a mutation invalidates it.
// Invalidate moves the user's version forward; a Set carrying an older
// version is dropped, so a list read before a mutation is never cached after
// it.
type ReadingCache interface {
	Get(ctx context.Context, userID string) ([]*domain.GlucoseReading, bool, error)
	Version(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, version int64, readings []*domain.GlucoseReading) error
	Invalidate(ctx context.Context, userID string) error
}
