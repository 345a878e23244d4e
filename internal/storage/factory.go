// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gearforge/drivetrain/internal/config"
	gormstorage "github.com/gearforge/drivetrain/internal/storage/gorm"
	"github.com/gearforge/drivetrain/internal/storage/memory"
	pgstorage "github.com/gearforge/drivetrain/internal/storage/postgres"
	sqlitestorage "github.com/gearforge/drivetrain/internal/storage/sqlite"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return pgstorage.New(log)
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: cfg.SQLite.DumpInterval,
			DumpPath:     cfg.SQLite.DumpPath,
		}, log)
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

var _ Backend = (*memory.Backend)(nil)
var _ Backend = (*gormstorage.Backend)(nil)
var _ Backend = (*sqlitestorage.Backend)(nil)
var _ Backend = (*pgstorage.Backend)(nil)
