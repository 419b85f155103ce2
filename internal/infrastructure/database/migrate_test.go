package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadMigrationsOrdered(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_init", migrations[0].ID)
	assert.Equal(t, "002_glucose_readings", migrations[1].ID)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS profiles")
}

func TestApplySkipsExecutedMigrations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db := sqlx.NewDb(sqlDB, "sqlmock")

	migrations := []Migration{
		{ID: "001_init", SQL: "CREATE TABLE a (id INT)"},
		{ID: "002_next", SQL: "CREATE TABLE b (id INT)"},
	}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("001_init"))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE b`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("002_next").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, apply(context.Background(), db, migrations, zap.NewNop()))
	require.NoError(t, mock.ExpectationsWereMet())
}
