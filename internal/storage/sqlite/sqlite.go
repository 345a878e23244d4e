// Package sqlite implements asset storage on an in-memory SQLite database
// that is periodically vacuumed to a disk file. It wraps the GORM backend
// via composition.
package sqlite

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gearforge/drivetrain/internal/database"
	gormstorage "github.com/gearforge/drivetrain/internal/storage/gorm"
)

// Config holds the SQLite backend settings.
type Config struct {
	DumpInterval time.Duration
	DumpPath     string
}

// Backend stores assets in an in-memory SQLite database and snapshots it to
// cfg.DumpPath every cfg.DumpInterval.
type Backend struct {
	*gormstorage.Backend

	cfg  Config
	log  zerolog.Logger
	stop chan struct{}
	done chan struct{}
}

// New opens the in-memory database and wraps it in a GORM backend.
func New(cfg Config, log zerolog.Logger) (*Backend, error) {
	db, err := database.GetSqliteDBStandalone("")
	if err != nil {
		return nil, fmt.Errorf("open in-memory sqlite: %w", err)
	}
	return &Backend{
		Backend: gormstorage.New(db),
		cfg:     cfg,
		log:     log,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Init migrates the schema and starts the periodic disk dump.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}
	go b.dumpLoop()
	return nil
}

// Close stops the dump loop, takes a final snapshot and closes the database.
func (b *Backend) Close() error {
	close(b.stop)
	<-b.done

	if err := b.DumpToDisk(); err != nil {
		b.log.Error().Err(err).Msg("Final disk dump failed")
	}
	return b.Backend.Close()
}

// DumpToDisk snapshots the in-memory database to the configured file.
func (b *Backend) DumpToDisk() error {
	start := time.Now()
	if err := database.DumpMemoryDBToDisk(b.DB(), b.cfg.DumpPath); err != nil {
		return err
	}
	b.log.Debug().
		Dur("duration", time.Since(start)).
		Str("path", b.cfg.DumpPath).
		Msg("Dumped memory DB to disk")
	return nil
}

func (b *Backend) dumpLoop() {
	defer close(b.done)

	interval := b.cfg.DumpInterval
	if interval <= 0 {
		interval = 3 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := b.DumpToDisk(); err != nil {
				b.log.Error().Err(err).Msg("Periodic disk dump failed")
			}
		case <-b.stop:
			return
		}
	}
}
