package repository

import (
	"context"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file source
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// NewPostgresDB establishes a new connection to the PostgreSQL database.
// The initial ping is bounded so a dead store fails startup quickly instead
// of hanging.
func NewPostgresDB(dataSourceName string, logger *zap.Logger) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("Successfully connected to the database")
	return db, nil
}

// MigrateDB runs database migrations.
func MigrateDB(db *sqlx.DB, logger *zap.Logger) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		logger.Fatal("Couldn't get database instance for running migrations", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "panel", driver)
	if err != nil {
		logger.Fatal("Couldn't create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Couldn't run database migration", zap.Error(err))
	}

	logger.Info("Database migration was run successfully")
}
