// Package gorm implements asset storage on top of any GORM-supported
// database. The SQLite and Postgres backends wrap it via composition.
package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gearforge/drivetrain/internal/model"
	"github.com/gearforge/drivetrain/internal/model/convert"
	"github.com/gearforge/drivetrain/internal/model/core"
)

// Backend stores drivetrain assets and export records through a *gorm.DB.
type Backend struct {
	db *gorm.DB
}

// New creates a GORM storage backend over an open database handle.
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// DB exposes the underlying handle for wrapping backends.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying sql connection.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveAsset upserts a drivetrain under the given name and returns its row ID.
func (b *Backend) SaveAsset(name string, d *core.DrivetrainData) (uint, error) {
	row, err := convert.ToGormAsset(name, d)
	if err != nil {
		return 0, err
	}

	var existing model.DrivetrainAsset
	err = b.db.Where("name = ?", name).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		if err := b.db.Save(&row).Error; err != nil {
			return 0, fmt.Errorf("update asset %q: %w", name, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := b.db.Create(&row).Error; err != nil {
			return 0, fmt.Errorf("insert asset %q: %w", name, err)
		}
	default:
		return 0, fmt.Errorf("look up asset %q: %w", name, err)
	}
	return row.ID, nil
}

// GetAsset loads a drivetrain by name.
func (b *Backend) GetAsset(name string) (core.DrivetrainData, error) {
	var row model.DrivetrainAsset
	err := b.db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.DrivetrainData{}, &model.ErrAssetNotFound{Name: name}
	}
	if err != nil {
		return core.DrivetrainData{}, fmt.Errorf("look up asset %q: %w", name, err)
	}
	return convert.FromGormAsset(&row)
}

// ListAssets returns all stored asset names, ordered by name.
func (b *Backend) ListAssets() ([]string, error) {
	var names []string
	err := b.db.Model(&model.DrivetrainAsset{}).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return names, nil
}

// DeleteAsset removes an asset by name. The delete is permanent so the
// name can be reused, the unique index covers soft-deleted rows too.
func (b *Backend) DeleteAsset(name string) error {
	res := b.db.Unscoped().Where("name = ?", name).Delete(&model.DrivetrainAsset{})
	if res.Error != nil {
		return fmt.Errorf("delete asset %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return &model.ErrAssetNotFound{Name: name}
	}
	return nil
}

// RecordExport appends one export audit record.
func (b *Backend) RecordExport(rec *model.ExportRecord) error {
	if err := b.db.Create(rec).Error; err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// ListExports returns the export history of an asset, newest first.
func (b *Backend) ListExports(assetName string) ([]model.ExportRecord, error) {
	var asset model.DrivetrainAsset
	err := b.db.Where("name = ?", assetName).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &model.ErrAssetNotFound{Name: assetName}
	}
	if err != nil {
		return nil, fmt.Errorf("look up asset %q: %w", assetName, err)
	}

	var recs []model.ExportRecord
	err = b.db.Where("drivetrain_asset_id = ?", asset.ID).
		Order("time DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list exports for %q: %w", assetName, err)
	}
	return recs, nil
}
