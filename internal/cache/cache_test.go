package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearforge/drivetrain/internal/model/core"
)

func TestAssetCache_New(t *testing.T) {
	c := NewAssetCache()

	require.NotNil(t, c)
	assert.Empty(t, c.Names())
}

func TestAssetCache_SetAndGet(t *testing.T) {
	c := NewAssetCache()

	d := core.DrivetrainData{WheelCount: 6, IdleBrakeInput: 10}
	c.Set("truck", d)

	got, ok := c.Get("truck")
	require.True(t, ok, "expected to find asset truck")
	assert.Equal(t, 6, got.WheelCount)
	assert.Equal(t, 10.0, got.IdleBrakeInput)
}

func TestAssetCache_GetNotFound(t *testing.T) {
	c := NewAssetCache()

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestAssetCache_GetReturnsCopy(t *testing.T) {
	c := NewAssetCache()
	c.Set("car", core.DrivetrainData{WheelCount: 4})

	got, _ := c.Get("car")
	got.WheelCount = 8

	again, _ := c.Get("car")
	assert.Equal(t, 4, again.WheelCount, "mutating the returned value must not touch the cache")
}

func TestAssetCache_IDs(t *testing.T) {
	c := NewAssetCache()

	_, ok := c.GetID("car")
	assert.False(t, ok)

	c.SetID("car", 7)
	id, ok := c.GetID("car")
	require.True(t, ok)
	assert.Equal(t, uint(7), id)
}

func TestAssetCache_DeleteAndReset(t *testing.T) {
	c := NewAssetCache()
	c.Set("car", core.DrivetrainData{WheelCount: 4})
	c.SetID("car", 1)
	c.Set("truck", core.DrivetrainData{WheelCount: 6})

	c.Delete("car")
	_, ok := c.Get("car")
	assert.False(t, ok)
	_, ok = c.GetID("car")
	assert.False(t, ok)

	c.Reset()
	assert.Empty(t, c.Names())
}

func TestAssetCache_ConcurrentAccess(t *testing.T) {
	c := NewAssetCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("shared", core.DrivetrainData{WheelCount: n})
			c.Get("shared")
		}(i)
	}
	wg.Wait()

	_, ok := c.Get("shared")
	assert.True(t, ok)
}
