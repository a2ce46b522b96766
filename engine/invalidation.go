package engine

import "strings"

// InvalidationTopic is one dirty-state bit accumulated between host reads.
type InvalidationTopic uint8

const (
	InvalidateTimeScale InvalidationTopic = 1 << iota
	InvalidatePriceScale
	InvalidatePanes
	InvalidateCrosshair
	InvalidateSeries
	InvalidateStyle
)

// InvalidationMask is a bitset over invalidation topics. Mutations OR into
// it; hosts inspect and clear it to drive selective re-layout.
type InvalidationMask uint8

// Mark sets the given topics.
func (m *InvalidationMask) Mark(topics InvalidationTopic) {
	*m |= InvalidationMask(topics)
}

// Has reports whether every given topic is set.
func (m InvalidationMask) Has(topics InvalidationTopic) bool {
	return m&InvalidationMask(topics) == InvalidationMask(topics)
}

// Any reports whether at least one topic is set.
func (m InvalidationMask) Any() bool { return m != 0 }

// Merge ORs another mask in.
func (m *InvalidationMask) Merge(other InvalidationMask) { *m |= other }

// Clear resets every topic.
func (m *InvalidationMask) Clear() { *m = 0 }

// String lists the set topics for logging.
func (m InvalidationMask) String() string {
	if m == 0 {
		return "none"
	}
	names := []struct {
		topic InvalidationTopic
		name  string
	}{
		{InvalidateTimeScale, "time-scale"},
		{InvalidatePriceScale, "price-scale"},
		{InvalidatePanes, "panes"},
		{InvalidateCrosshair, "crosshair"},
		{InvalidateSeries, "series"},
		{InvalidateStyle, "style"},
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if m.Has(n.topic) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
