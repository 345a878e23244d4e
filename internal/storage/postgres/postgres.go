// Package postgres implements asset storage on a Postgres database. It
// wraps the GORM backend via composition.
package postgres

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gearforge/drivetrain/internal/database"
	gormstorage "github.com/gearforge/drivetrain/internal/storage/gorm"
)

// Backend stores assets in Postgres.
type Backend struct {
	*gormstorage.Backend

	log zerolog.Logger
}

// New connects to Postgres using the db.* configuration keys.
func New(log zerolog.Logger) (*Backend, error) {
	db, err := database.GetPostgresDBStandalone()
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	log.Info().Msg("Connected to Postgres storage")
	return &Backend{
		Backend: gormstorage.New(db),
		log:     log,
	}, nil
}
