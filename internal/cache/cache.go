package cache

import (
	"sync"

	"github.com/gearforge/drivetrain/internal/model/core"
)

// AssetCache holds the working copies of drivetrains being edited, keyed by
// asset name, to avoid db reads on every property edit. The editor loop is
// latency sensitive.
type AssetCache struct {
	m      sync.Mutex
	assets map[string]core.DrivetrainData
	ids    map[string]uint
}

func NewAssetCache() *AssetCache {
	return &AssetCache{
		assets: make(map[string]core.DrivetrainData),
		ids:    make(map[string]uint),
	}
}

func (c *AssetCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.assets = make(map[string]core.DrivetrainData)
	c.ids = make(map[string]uint)
}

// Get returns a copy of the cached drivetrain.
func (c *AssetCache) Get(name string) (core.DrivetrainData, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	if d, ok := c.assets[name]; ok {
		return d, true
	}
	return core.DrivetrainData{}, false
}

// Set stores a working copy under the asset name.
func (c *AssetCache) Set(name string, d core.DrivetrainData) {
	c.m.Lock()
	defer c.m.Unlock()
	c.assets[name] = d
}

// Delete drops the working copy and its database ID.
func (c *AssetCache) Delete(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.assets, name)
	delete(c.ids, name)
}

// GetID retrieves an asset's database ID by name.
func (c *AssetCache) GetID(name string) (uint, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	id, ok := c.ids[name]
	return id, ok
}

// SetID stores an asset's database ID by name.
func (c *AssetCache) SetID(name string, id uint) {
	c.m.Lock()
	defer c.m.Unlock()
	c.ids[name] = id
}

// Names returns the cached asset names in no particular order.
func (c *AssetCache) Names() []string {
	c.m.Lock()
	defer c.m.Unlock()
	names := make([]string, 0, len(c.assets))
	for name := range c.assets {
		names = append(names, name)
	}
	return names
}
