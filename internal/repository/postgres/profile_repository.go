package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository"
	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, name, age, sex, weight, height,
	diabetes_type, diagnosis_years, uses_insulin, insulin_type, uses_medication,
	activity_level, eating_habits, consumes_alcohol, smokes,
	onboarding_completed, created_at, updated_at`

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.ProfileRow, error) {
	var row domain.ProfileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *profileRepository) Upsert(ctx context.Context, row *domain.ProfileRow) error {
	query := `
		INSERT INTO profiles (
			id, name, age, sex, weight, height,
			diabetes_type, diagnosis_years, uses_insulin, insulin_type, uses_medication,
			activity_level, eating_habits, consumes_alcohol, smokes, onboarding_completed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, age = EXCLUDED.age, sex = EXCLUDED.sex,
			weight = EXCLUDED.weight, height = EXCLUDED.height,
			diabetes_type = EXCLUDED.diabetes_type, diagnosis_years = EXCLUDED.diagnosis_years,
			uses_insulin = EXCLUDED.uses_insulin, insulin_type = EXCLUDED.insulin_type,
			uses_medication = EXCLUDED.uses_medication,
			activity_level = EXCLUDED.activity_level, eating_habits = EXCLUDED.eating_habits,
			consumes_alcohol = EXCLUDED.consumes_alcohol, smokes = EXCLUDED.smokes,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		row.ID, row.Name, row.Age, row.Sex, row.Weight, row.Height,
		row.DiabetesType, row.DiagnosisYears, row.UsesInsulin, row.InsulinType, row.UsesMedication,
		row.ActivityLevel, row.EatingHabits, row.ConsumesAlcohol, row.Smokes, row.OnboardingCompleted,
	).Scan(&row.CreatedAt, &row.UpdatedAt)
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
