// Package memory implements asset storage in process memory, with each
// saved asset mirrored to a JSON file so authored work survives restarts.
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gearforge/drivetrain/internal/config"
	"github.com/gearforge/drivetrain/internal/model"
	"github.com/gearforge/drivetrain/internal/model/core"
)

// Backend keeps assets in maps guarded by a mutex. Export records are kept
// in memory only.
type Backend struct {
	cfg config.MemoryConfig

	mu      sync.RWMutex
	assets  map[string]core.DrivetrainData
	ids     map[string]uint
	exports map[string][]model.ExportRecord
	nextID  uint
}

// New creates a memory storage backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:     cfg,
		assets:  make(map[string]core.DrivetrainData),
		ids:     make(map[string]uint),
		exports: make(map[string][]model.ExportRecord),
		nextID:  1,
	}
}

// Init creates the output directory and loads any previously written assets.
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return b.loadExisting()
}

// Close is a no-op, assets are already mirrored to disk on save.
func (b *Backend) Close() error {
	return nil
}

// SaveAsset stores a copy of the drivetrain and writes its JSON mirror file.
func (b *Backend) SaveAsset(name string, d *core.DrivetrainData) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.ids[name]
	if !ok {
		id = b.nextID
		b.nextID++
		b.ids[name] = id
	}
	b.assets[name] = *d

	if err := b.writeAssetFile(name, d); err != nil {
		return 0, err
	}
	return id, nil
}

// GetAsset returns a copy of the stored drivetrain.
func (b *Backend) GetAsset(name string) (core.DrivetrainData, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	d, ok := b.assets[name]
	if !ok {
		return core.DrivetrainData{}, &model.ErrAssetNotFound{Name: name}
	}
	return d, nil
}

// ListAssets returns all stored asset names, sorted.
func (b *Backend) ListAssets() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.assets))
	for name := range b.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteAsset removes an asset and its mirror file.
func (b *Backend) DeleteAsset(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.assets[name]; !ok {
		return &model.ErrAssetNotFound{Name: name}
	}
	delete(b.assets, name)
	delete(b.ids, name)
	delete(b.exports, name)

	path := b.assetFilePath(name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset file: %w", err)
	}
	return nil
}

// RecordExport keeps the record in memory, keyed by the asset the record's
// foreign key points at.
func (b *Backend) RecordExport(rec *model.ExportRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := ""
	for n, id := range b.ids {
		if id == rec.DrivetrainAssetID {
			name = n
			break
		}
	}
	if name == "" {
		return fmt.Errorf("no asset with id %d", rec.DrivetrainAssetID)
	}
	rec.ID = uint(len(b.exports[name]) + 1)
	b.exports[name] = append(b.exports[name], *rec)
	return nil
}

// ListExports returns the export history of an asset, newest first.
func (b *Backend) ListExports(assetName string) ([]model.ExportRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.assets[assetName]; !ok {
		return nil, &model.ErrAssetNotFound{Name: assetName}
	}
	recs := b.exports[assetName]
	out := make([]model.ExportRecord, len(recs))
	for i := range recs {
		out[len(recs)-1-i] = recs[i]
	}
	return out, nil
}

func (b *Backend) assetFilePath(name string) string {
	filename := name + ".json"
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	return filepath.Join(b.cfg.OutputDir, filename)
}

func (b *Backend) writeAssetFile(name string, d *core.DrivetrainData) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal asset %q: %w", name, err)
	}

	path := b.assetFilePath(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create asset file: %w", err)
	}
	defer f.Close()

	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			return fmt.Errorf("write asset file: %w", err)
		}
		return gz.Close()
	}

	_, err = f.Write(data)
	return err
}

func (b *Backend) loadExisting() error {
	entries, err := os.ReadDir(b.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, compressed := assetNameFromFile(entry.Name())
		if name == "" {
			continue
		}

		d, err := readAssetFile(filepath.Join(b.cfg.OutputDir, entry.Name()), compressed)
		if err != nil {
			return fmt.Errorf("load asset %q: %w", name, err)
		}

		b.assets[name] = d
		b.ids[name] = b.nextID
		b.nextID++
	}
	return nil
}

func assetNameFromFile(filename string) (name string, compressed bool) {
	switch {
	case strings.HasSuffix(filename, ".json.gz"):
		return strings.TrimSuffix(filename, ".json.gz"), true
	case strings.HasSuffix(filename, ".json"):
		return strings.TrimSuffix(filename, ".json"), false
	default:
		return "", false
	}
}

func readAssetFile(path string, compressed bool) (core.DrivetrainData, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.DrivetrainData{}, err
	}
	defer f.Close()

	var data []byte
	if compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return core.DrivetrainData{}, err
		}
		defer gz.Close()
		data, err = io.ReadAll(gz)
		if err != nil {
			return core.DrivetrainData{}, err
		}
	} else {
		data, err = io.ReadAll(f)
		if err != nil {
			return core.DrivetrainData{}, err
		}
	}

	var d core.DrivetrainData
	if err := json.Unmarshal(data, &d); err != nil {
		return core.DrivetrainData{}, err
	}
	return d, nil
}
