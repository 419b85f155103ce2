package readings

import (
	"context"
	"strings"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository"
	"go.uber.org/zap"
)

type ReadingsUseCase struct {
	readingRepo repository.ReadingRepository
	cache       repository.ReadingCache
	log         *zap.Logger
	now         func() time.Time
}

func NewReadingsUseCase(readingRepo repository.ReadingRepository, cache repository.ReadingCache, log *zap.Logger) *ReadingsUseCase {
	return &ReadingsUseCase{
		readingRepo: readingRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// List returns the user's readings, newest first. The list is served from
// cache until a create or delete invalidates it.
func (uc *ReadingsUseCase) List(ctx context.Context, userID string) ([]*domain.GlucoseReading, error) {
	if cached, ok, err := uc.cache.Get(ctx, userID); err != nil {
		uc.log.Warn("Reading cache read failed", zap.String("user_id", userID), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	// The version is taken before the read so a mutation in between leaves
	// the result uncached.
	version, versionErr := uc.cache.Version(ctx, userID)
	readings, err := uc.readingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if versionErr != nil {
		uc.log.Warn("Reading cache version read failed", zap.String("user_id", userID), zap.Error(versionErr))
		return readings, nil
	}
	if err := uc.cache.Set(ctx, userID, version, readings); err != nil {
		uc.log.Warn("Reading cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return readings, nil
}

// ListSince reads straight from storage; used for aggregates.
func (uc *ReadingsUseCase) ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.GlucoseReading, error) {
	return uc.readingRepo.ListByUserSince(ctx, userID, since)
}

// Create validates and stores a reading. measured_at defaults to now.
func (uc *ReadingsUseCase) Create(ctx context.Context, userID string, in domain.ReadingInput) (*domain.GlucoseReading, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	reading := &domain.GlucoseReading{
		UserID:          userID,
		GlucoseValue:    *in.GlucoseValue,
		MeasurementType: in.MeasurementType,
		MeasuredAt:      uc.now().UTC(),
	}
	if in.MeasuredAt != nil && !in.MeasuredAt.IsZero() {
		reading.MeasuredAt = in.MeasuredAt.UTC()
	}
	if in.Notes != nil {
		if notes := strings.TrimSpace(*in.Notes); notes != "" {
			reading.Notes = &notes
		}
	}

	if err := uc.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, userID)
	return reading, nil
}

// Delete removes one of the user's readings.
func (uc *ReadingsUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.readingRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	uc.invalidate(ctx, userID)
	return nil
}

func (uc *ReadingsUseCase) invalidate(ctx context.Context, userID string) {
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn("Reading cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
