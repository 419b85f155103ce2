package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// NewPostgresDB connects to the profiles/readings database and, when
// configured, brings the schema up to date.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(25)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Connected to postgres", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))

	if cfg.MigrateOnStart {
		if err := Migrate(ctx, db, log); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
