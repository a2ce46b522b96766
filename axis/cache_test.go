package axis_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/axis"
)

// TestPriceLabelCache_HitsAndMisses: identical requests hit, distinct
// values miss.
func TestPriceLabelCache_HitsAndMisses(t *testing.T) {
	cache := axis.NewPriceLabelCache()
	cfg := axis.PriceLabelConfig{
		Policy: axis.PriceLabelPolicy{Kind: axis.PriceLabelFixedDecimals, Precision: 2},
	}

	first := cache.Format(101.5, cfg, 0)
	second := cache.Format(101.5, cfg, 0)
	assert.Equal(t, first, second)

	cache.Format(102.5, cfg, 0)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 2, stats.Size)
}

// TestPriceLabelCache_ProfileSeparatesEntries: changing the policy must not
// serve a label formatted under the old one.
func TestPriceLabelCache_ProfileSeparatesEntries(t *testing.T) {
	cache := axis.NewPriceLabelCache()
	two := axis.PriceLabelConfig{
		Policy: axis.PriceLabelPolicy{Kind: axis.PriceLabelFixedDecimals, Precision: 2},
	}
	four := axis.PriceLabelConfig{
		Policy: axis.PriceLabelPolicy{Kind: axis.PriceLabelFixedDecimals, Precision: 4},
	}

	assert.Equal(t, "1.50", cache.Format(1.5, two, 0))
	assert.Equal(t, "1.5000", cache.Format(1.5, four, 0))
	assert.Equal(t, uint64(0), cache.Stats().Hits)
}

// TestTimeLabelCache_OverflowClearsAll: crossing the cap wipes the cache
// instead of evicting one entry.
func TestTimeLabelCache_OverflowClearsAll(t *testing.T) {
	cache := axis.NewTimeLabelCache()
	cfg := axis.TimeLabelConfig{
		Policy: axis.TimeLabelPolicy{Kind: axis.TimeLabelLogicalDecimal, Precision: 1},
	}

	for i := 0; i < axis.MaxCacheEntries; i++ {
		cache.Format(float64(i), cfg, 0)
	}
	require.Equal(t, axis.MaxCacheEntries, cache.Stats().Size)

	cache.Format(float64(axis.MaxCacheEntries), cfg, 0)
	assert.Equal(t, 1, cache.Stats().Size)
}

// TestTimeLabelCache_CustomGenerationInvalidates: bumping the formatter
// generation makes old entries unreachable.
func TestTimeLabelCache_CustomGenerationInvalidates(t *testing.T) {
	cache := axis.NewTimeLabelCache()
	cfg := axis.TimeLabelConfig{Policy: axis.TimeLabelPolicy{Kind: axis.TimeLabelUTCAdaptive}}

	calls := 0
	formatter := func(v float64) string {
		calls++
		return fmt.Sprintf("t=%.0f#%d", v, calls)
	}

	gen1 := axis.CustomProfile{SourceModeTag: 1, Generation: 1}
	first := cache.FormatCustomTime(42, cfg, 300, gen1, formatter)
	again := cache.FormatCustomTime(42, cfg, 300, gen1, formatter)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, calls)

	gen2 := axis.CustomProfile{SourceModeTag: 1, Generation: 2}
	fresh := cache.FormatCustomTime(42, cfg, 300, gen2, formatter)
	assert.NotEqual(t, first, fresh)
	assert.Equal(t, 2, calls)
}

// TestPriceLabelCache_Clear resets entries and counters.
func TestPriceLabelCache_Clear(t *testing.T) {
	cache := axis.NewPriceLabelCache()
	cfg := axis.PriceLabelConfig{
		Policy: axis.PriceLabelPolicy{Kind: axis.PriceLabelFixedDecimals, Precision: 0},
	}
	cache.Format(7, cfg, 0)
	cache.Clear()

	stats := cache.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, stats.Size)
}
