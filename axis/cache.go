package axis

// MaxCacheEntries bounds each label cache. On overflow the whole cache is
// cleared rather than evicting single entries, so a steady-state axis never
// pays eviction bookkeeping and a pathological churn resets cheaply.
const MaxCacheEntries = 8192

// CacheStats reports cache effectiveness for one label cache.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// timeLabelKey identifies one formatted time label. The profile captures
// every formatter input that changes output, so stale entries can never be
// served across policy, locale, timezone, or session changes.
type timeLabelKey struct {
	timeMillis int64
	profile    timeProfileKey
}

type timeProfileKey struct {
	locale        Locale
	policyKind    TimeLabelPolicyKind
	precision     uint8
	showSeconds   bool
	timezoneMin   int
	hasSession    bool
	sessionStart  uint16
	sessionEnd    uint16
	pattern       TimeLabelPattern
	patternIsUTC  bool
	customTag     uint8
	customGen     uint64
	spanMillisKey int64
}

func timeProfileFor(config TimeLabelConfig, visibleSpanAbs float64) timeProfileKey {
	key := timeProfileKey{
		locale:      config.Locale,
		policyKind:  config.Policy.Kind,
		precision:   config.Policy.Precision,
		showSeconds: config.Policy.ShowSeconds,
		timezoneMin: config.TimezoneOffsetMinutes,
	}
	if config.Session != nil {
		key.hasSession = true
		key.sessionStart = config.Session.StartMinuteOfDay
		key.sessionEnd = config.Session.EndMinuteOfDay
	}
	key.pattern, key.patternIsUTC = ResolveTimeLabelPattern(config.Policy, visibleSpanAbs)
	return key
}

// TimeLabelCache memoizes formatted time-axis labels.
type TimeLabelCache struct {
	entries map[timeLabelKey]string
	stats   CacheStats
}

// NewTimeLabelCache returns an empty cache.
func NewTimeLabelCache() *TimeLabelCache {
	return &TimeLabelCache{entries: make(map[timeLabelKey]string)}
}

// Format returns the cached label for the tick, formatting on miss.
func (c *TimeLabelCache) Format(logicalTime float64, config TimeLabelConfig, visibleSpanAbs float64) string {
	key := timeLabelKey{
		timeMillis: QuantizeLogicalTimeMillis(logicalTime),
		profile:    timeProfileFor(config, visibleSpanAbs),
	}
	if label, ok := c.entries[key]; ok {
		c.stats.Hits++
		return label
	}
	c.stats.Misses++
	label := FormatTimeLabel(logicalTime, config, visibleSpanAbs)
	c.insert(key, label)
	return label
}

func (c *TimeLabelCache) insert(key timeLabelKey, label string) {
	if len(c.entries) >= MaxCacheEntries {
		c.entries = make(map[timeLabelKey]string)
	}
	c.entries[key] = label
}

// Stats returns hit/miss counters and the current entry count.
func (c *TimeLabelCache) Stats() CacheStats {
	stats := c.stats
	stats.Size = len(c.entries)
	return stats
}

// Clear drops every entry and resets the counters.
func (c *TimeLabelCache) Clear() {
	c.entries = make(map[timeLabelKey]string)
	c.stats = CacheStats{}
}

type priceLabelKey struct {
	valueNanos int64
	profile    priceProfileKey
}

type priceProfileKey struct {
	locale       Locale
	policyKind   PriceLabelPolicyKind
	precision    uint8
	minMoveNanos int64
	trimZeros    bool
	modeKind     PriceDisplayModeKind
	baseNanos    int64
	hasBase      bool
	stepNanos    int64
	customTag    uint8
	customGen    uint64
}

func priceProfileFor(config PriceLabelConfig, tickStepAbs float64) priceProfileKey {
	key := priceProfileKey{
		locale:       config.Locale,
		policyKind:   config.Policy.Kind,
		precision:    config.Policy.Precision,
		minMoveNanos: QuantizePriceLabelValue(config.Policy.MinMove),
		trimZeros:    config.Policy.TrimTrailingZeros,
		modeKind:     config.Mode.Kind,
		stepNanos:    QuantizePriceLabelValue(tickStepAbs),
	}
	if config.Mode.BasePrice != nil {
		key.hasBase = true
		key.baseNanos = QuantizePriceLabelValue(*config.Mode.BasePrice)
	}
	return key
}

// PriceLabelCache memoizes formatted price-axis labels. Values are expected
// to already be display-mapped.
type PriceLabelCache struct {
	entries map[priceLabelKey]string
	stats   CacheStats
}

// NewPriceLabelCache returns an empty cache.
func NewPriceLabelCache() *PriceLabelCache {
	return &PriceLabelCache{entries: make(map[priceLabelKey]string)}
}

// Format returns the cached label for the display value, formatting on miss.
func (c *PriceLabelCache) Format(value float64, config PriceLabelConfig, tickStepAbs float64) string {
	key := priceLabelKey{
		valueNanos: QuantizePriceLabelValue(value),
		profile:    priceProfileFor(config, tickStepAbs),
	}
	if label, ok := c.entries[key]; ok {
		c.stats.Hits++
		return label
	}
	c.stats.Misses++
	label := FormatPriceLabel(value, config, tickStepAbs)
	if len(c.entries) >= MaxCacheEntries {
		c.entries = make(map[priceLabelKey]string)
	}
	c.entries[key] = label
	return label
}

// Stats returns hit/miss counters and the current entry count.
func (c *PriceLabelCache) Stats() CacheStats {
	stats := c.stats
	stats.Size = len(c.entries)
	return stats
}

// Clear drops every entry and resets the counters.
func (c *PriceLabelCache) Clear() {
	c.entries = make(map[priceLabelKey]string)
	c.stats = CacheStats{}
}

// CustomProfile tags cache keys produced by an application-supplied
// formatter. Generation bumps invalidate every cached label from an older
// formatter without touching built-in entries.
type CustomProfile struct {
	SourceModeTag uint8
	Generation    uint64
}

// FormatCustomTime memoizes a caller-supplied time formatter under the
// custom profile. The visible span participates in the key because custom
// formatters may adapt to it.
func (c *TimeLabelCache) FormatCustomTime(logicalTime float64, config TimeLabelConfig, visibleSpanAbs float64, profile CustomProfile, format func(float64) string) string {
	keyProfile := timeProfileFor(config, visibleSpanAbs)
	keyProfile.customTag = profile.SourceModeTag
	keyProfile.customGen = profile.Generation
	keyProfile.spanMillisKey = QuantizeLogicalTimeMillis(visibleSpanAbs)
	key := timeLabelKey{
		timeMillis: QuantizeLogicalTimeMillis(logicalTime),
		profile:    keyProfile,
	}
	if label, ok := c.entries[key]; ok {
		c.stats.Hits++
		return label
	}
	c.stats.Misses++
	label := format(logicalTime)
	c.insert(key, label)
	return label
}

// FormatCustomPrice memoizes a caller-supplied price formatter under the
// custom profile.
func (c *PriceLabelCache) FormatCustomPrice(value float64, config PriceLabelConfig, tickStepAbs float64, profile CustomProfile, format func(float64) string) string {
	keyProfile := priceProfileFor(config, tickStepAbs)
	keyProfile.customTag = profile.SourceModeTag
	keyProfile.customGen = profile.Generation
	key := priceLabelKey{
		valueNanos: QuantizePriceLabelValue(value),
		profile:    keyProfile,
	}
	if label, ok := c.entries[key]; ok {
		c.stats.Hits++
		return label
	}
	c.stats.Misses++
	label := format(value)
	if len(c.entries) >= MaxCacheEntries {
		c.entries = make(map[priceLabelKey]string)
	}
	c.entries[key] = label
	return label
}
