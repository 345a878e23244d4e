// internal/storage/storage.go
package storage

import (
	"github.com/gearforge/drivetrain/internal/model"
	"github.com/gearforge/drivetrain/internal/model/core"
)

// Backend is the interface all asset storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Asset management
	SaveAsset(name string, d *core.DrivetrainData) (uint, error)
	GetAsset(name string) (core.DrivetrainData, error)
	ListAssets() ([]string, error)
	DeleteAsset(name string) error

	// Export audit trail
	RecordExport(rec *model.ExportRecord) error
	ListExports(assetName string) ([]model.ExportRecord, error)
}

// Dumpable is an optional interface for storage backends that can snapshot
// their state to a file on demand.
type Dumpable interface {
	DumpToDisk() error
}
