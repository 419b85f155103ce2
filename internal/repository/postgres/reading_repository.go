package postgres

import (
	"context"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type readingRepository struct {
	db *sqlx.DB
}

func NewReadingRepository(db *sqlx.DB) repository.ReadingRepository {
	return &readingRepository{db: db}
}

const readingColumns = `id, user_id, glucose_value, measurement_type, measured_at, notes, created_at, updated_at`

func (r *readingRepository) Create(ctx context.Context, reading *domain.GlucoseReading) error {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	query := `
		INSERT INTO glucose_readings (id, user_id, glucose_value, measurement_type, measured_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		reading.ID, reading.UserID, reading.GlucoseValue, reading.MeasurementType,
		reading.MeasuredAt, reading.Notes,
	).Scan(&reading.CreatedAt, &reading.UpdatedAt)
}

func (r *readingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.GlucoseReading, error) {
	readings := []*domain.GlucoseReading{}
	query := `SELECT ` + readingColumns + ` FROM glucose_readings WHERE user_id = $1 ORDER BY measured_at DESC`
	if err := r.db.SelectContext(ctx, &readings, query, userID); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.GlucoseReading, error) {
	readings := []*domain.GlucoseReading{}
	query := `
		SELECT ` + readingColumns + `
		FROM glucose_readings
		WHERE user_id = $1 AND measured_at >= $2
		ORDER BY measured_at DESC
	`
	if err := r.db.SelectContext(ctx, &readings, query, userID, since); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM glucose_readings WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReadingNotFound
	}
	return nil
}
