package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/quantatlas/chartengine/core"
)

// Locale selects decimal separators and date layouts for axis labels.
type Locale int

const (
	// LocaleEnUS uses '.' decimals and ISO-style dates.
	LocaleEnUS Locale = iota
	// LocaleEsES uses ',' decimals and day-first dates.
	LocaleEsES
)

// TimeLabelPattern is the resolved UTC label shape for one tick.
type TimeLabelPattern int

const (
	PatternDate TimeLabelPattern = iota
	PatternDateMinute
	PatternDateSecond
	PatternTimeMinute
	PatternTimeSecond
)

// TimeLabelPolicyKind discriminates TimeLabelPolicy.
type TimeLabelPolicyKind int

const (
	// TimeLabelLogicalDecimal formats the raw logical time as a decimal.
	TimeLabelLogicalDecimal TimeLabelPolicyKind = iota
	// TimeLabelUTCDateTime formats a fixed date-time pattern.
	TimeLabelUTCDateTime
	// TimeLabelUTCAdaptive picks the pattern from the visible span.
	TimeLabelUTCAdaptive
)

// TimeLabelPolicy configures time-axis label formatting.
type TimeLabelPolicy struct {
	Kind TimeLabelPolicyKind
	// Precision applies to TimeLabelLogicalDecimal.
	Precision uint8
	// ShowSeconds applies to TimeLabelUTCDateTime.
	ShowSeconds bool
}

// SessionConfig is a trading-session envelope in local minutes of day.
// Sessions may wrap midnight (start > end).
type SessionConfig struct {
	StartMinuteOfDay uint16
	EndMinuteOfDay   uint16
}

// ContainsLocalMinute reports whether the local minute falls inside the
// session, honoring midnight wrap-around.
func (s SessionConfig) ContainsLocalMinute(minuteOfDay uint16) bool {
	if s.StartMinuteOfDay < s.EndMinuteOfDay {
		return minuteOfDay >= s.StartMinuteOfDay && minuteOfDay < s.EndMinuteOfDay
	}
	return minuteOfDay >= s.StartMinuteOfDay || minuteOfDay < s.EndMinuteOfDay
}

// IsBoundary reports whether the local instant is exactly a session edge.
func (s SessionConfig) IsBoundary(minuteOfDay uint16, second int) bool {
	return second == 0 && (minuteOfDay == s.StartMinuteOfDay || minuteOfDay == s.EndMinuteOfDay)
}

// TimeLabelConfig bundles everything the time-axis formatter needs.
type TimeLabelConfig struct {
	Locale                Locale
	Policy                TimeLabelPolicy
	TimezoneOffsetMinutes int
	Session               *SessionConfig
}

// ResolveTimeLabelPattern picks the UTC pattern for the visible span:
// spans of ten minutes or less show seconds, up to two days show minutes,
// anything wider shows dates only. LogicalDecimal policies do not resolve
// to a UTC pattern.
func ResolveTimeLabelPattern(policy TimeLabelPolicy, visibleSpanAbs float64) (TimeLabelPattern, bool) {
	switch policy.Kind {
	case TimeLabelLogicalDecimal:
		return 0, false
	case TimeLabelUTCDateTime:
		if policy.ShowSeconds {
			return PatternDateSecond, true
		}
		return PatternDateMinute, true
	default:
		switch {
		case visibleSpanAbs <= 600:
			return PatternDateSecond, true
		case visibleSpanAbs <= 172_800:
			return PatternDateMinute, true
		default:
			return PatternDate, true
		}
	}
}

func patternLayout(locale Locale, pattern TimeLabelPattern) string {
	switch locale {
	case LocaleEsES:
		switch pattern {
		case PatternDate:
			return "02/01/2006"
		case PatternDateMinute:
			return "02/01/2006 15:04"
		case PatternDateSecond:
			return "02/01/2006 15:04:05"
		case PatternTimeMinute:
			return "15:04"
		default:
			return "15:04:05"
		}
	default:
		switch pattern {
		case PatternDate:
			return "2006-01-02"
		case PatternDateMinute:
			return "2006-01-02 15:04"
		case PatternDateSecond:
			return "2006-01-02 15:04:05"
		case PatternTimeMinute:
			return "15:04"
		default:
			return "15:04:05"
		}
	}
}

// FormatTimeLabel renders one time-axis label. Logical times are seconds;
// UTC policies treat them as Unix timestamps.
func FormatTimeLabel(logicalTime float64, config TimeLabelConfig, visibleSpanAbs float64) string {
	if math.IsNaN(logicalTime) || math.IsInf(logicalTime, 0) {
		return "nan"
	}
	pattern, utc := ResolveTimeLabelPattern(config.Policy, visibleSpanAbs)
	if !utc {
		return FormatAxisDecimal(logicalTime, int(config.Policy.Precision), config.Locale)
	}
	zone := time.FixedZone("", config.TimezoneOffsetMinutes*60)
	local := time.Unix(int64(math.Round(logicalTime)), 0).In(zone)
	pattern = sessionAdjustedPattern(pattern, config.Session, local)
	return local.Format(patternLayout(config.Locale, pattern))
}

// FormatTimeLabelWithPrecision is FormatTimeLabel with an explicit decimal
// precision override; the override only applies to LogicalDecimal policies.
func FormatTimeLabelWithPrecision(logicalTime float64, config TimeLabelConfig, visibleSpanAbs float64, precision uint8) string {
	if config.Policy.Kind == TimeLabelLogicalDecimal {
		if math.IsNaN(logicalTime) || math.IsInf(logicalTime, 0) {
			return "nan"
		}
		return FormatAxisDecimal(logicalTime, int(precision), config.Locale)
	}
	return FormatTimeLabel(logicalTime, config, visibleSpanAbs)
}

// sessionAdjustedPattern drops the date part of in-session, non-boundary
// labels so intraday axes stay readable; boundary instants keep the full
// timestamp.
func sessionAdjustedPattern(pattern TimeLabelPattern, session *SessionConfig, local time.Time) TimeLabelPattern {
	if session == nil {
		return pattern
	}
	minuteOfDay := uint16(local.Hour()*60 + local.Minute())
	if !session.ContainsLocalMinute(minuteOfDay) {
		return pattern
	}
	if session.IsBoundary(minuteOfDay, local.Second()) {
		return pattern
	}
	switch pattern {
	case PatternDateMinute:
		return PatternTimeMinute
	case PatternDateSecond:
		return PatternTimeSecond
	default:
		return pattern
	}
}

// IsMajorTimeTick reports whether the instant deserves major-tick styling:
// session boundaries and local midnight. Logical-decimal policies have no
// major ticks.
func IsMajorTimeTick(logicalTime float64, config TimeLabelConfig) bool {
	if math.IsNaN(logicalTime) || math.IsInf(logicalTime, 0) {
		return false
	}
	if config.Policy.Kind == TimeLabelLogicalDecimal {
		return false
	}
	zone := time.FixedZone("", config.TimezoneOffsetMinutes*60)
	local := time.Unix(int64(math.Round(logicalTime)), 0).In(zone)
	minuteOfDay := uint16(local.Hour()*60 + local.Minute())
	if config.Session != nil && config.Session.IsBoundary(minuteOfDay, local.Second()) {
		return true
	}
	return local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0
}

// PriceLabelPolicyKind discriminates PriceLabelPolicy.
type PriceLabelPolicyKind int

const (
	// PriceLabelFixedDecimals formats with an explicit precision.
	PriceLabelFixedDecimals PriceLabelPolicyKind = iota
	// PriceLabelMinMove snaps values to a minimum price movement.
	PriceLabelMinMove
	// PriceLabelAdaptive derives precision from the current tick step.
	PriceLabelAdaptive
)

// PriceLabelPolicy configures price-axis label formatting.
type PriceLabelPolicy struct {
	Kind PriceLabelPolicyKind
	// Precision applies to PriceLabelFixedDecimals.
	Precision uint8
	// MinMove and TrimTrailingZeros apply to PriceLabelMinMove.
	MinMove           float64
	TrimTrailingZeros bool
}

// PriceDisplayModeKind selects the base-relative display transform.
type PriceDisplayModeKind int

const (
	PriceDisplayNormal PriceDisplayModeKind = iota
	PriceDisplayPercentage
	PriceDisplayIndexedTo100
)

// PriceDisplayMode is the display transform plus its optional explicit base.
type PriceDisplayMode struct {
	Kind      PriceDisplayModeKind
	BasePrice *float64
}

// Suffix returns "%" for percentage display, "" otherwise.
func (m PriceDisplayMode) Suffix() string {
	if m.Kind == PriceDisplayPercentage {
		return "%"
	}
	return ""
}

// PriceLabelConfig bundles the price-axis formatter inputs.
type PriceLabelConfig struct {
	Locale Locale
	Policy PriceLabelPolicy
	Mode   PriceDisplayMode
}

func resolvedDisplayBase(mode PriceDisplayMode, fallbackBase float64) float64 {
	base := fallbackBase
	if mode.BasePrice != nil {
		base = *mode.BasePrice
	}
	if math.IsNaN(base) || math.IsInf(base, 0) || base == 0 {
		return 1
	}
	return base
}

// MapPriceToDisplayValue re-expresses a raw price under the display mode.
func MapPriceToDisplayValue(rawPrice float64, mode PriceDisplayMode, fallbackBase float64) float64 {
	if math.IsNaN(rawPrice) || math.IsInf(rawPrice, 0) {
		return rawPrice
	}
	switch mode.Kind {
	case PriceDisplayPercentage:
		return (rawPrice/resolvedDisplayBase(mode, fallbackBase) - 1) * 100
	case PriceDisplayIndexedTo100:
		return rawPrice / resolvedDisplayBase(mode, fallbackBase) * 100
	default:
		return rawPrice
	}
}

// MapPriceStepToDisplayValue re-expresses an absolute tick step under the
// display mode so adaptive precision tracks the displayed magnitudes.
func MapPriceStepToDisplayValue(rawStepAbs float64, mode PriceDisplayMode, fallbackBase float64) float64 {
	if math.IsNaN(rawStepAbs) || math.IsInf(rawStepAbs, 0) || rawStepAbs <= 0 {
		return rawStepAbs
	}
	switch mode.Kind {
	case PriceDisplayPercentage, PriceDisplayIndexedTo100:
		return math.Abs(rawStepAbs/resolvedDisplayBase(mode, fallbackBase)) * 100
	default:
		return rawStepAbs
	}
}

// FormatPriceLabel renders one price-axis label for an already
// display-mapped value. tickStepAbs feeds the Adaptive policy.
func FormatPriceLabel(value float64, config PriceLabelConfig, tickStepAbs float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "nan"
	}
	switch config.Policy.Kind {
	case PriceLabelFixedDecimals:
		return FormatAxisDecimal(value, int(config.Policy.Precision), config.Locale)
	case PriceLabelMinMove:
		minMove := config.Policy.MinMove
		precision := precisionFromStep(minMove)
		snapped := value
		if !math.IsNaN(minMove) && !math.IsInf(minMove, 0) && minMove > 0 {
			snapped = math.Round(value/minMove) * minMove
		}
		text := FormatAxisDecimal(snapped, precision, config.Locale)
		if config.Policy.TrimTrailingZeros {
			return trimAxisDecimal(text, config.Locale)
		}
		return text
	default:
		nice := normalizeStepForPrecision(tickStepAbs)
		return FormatAxisDecimal(value, precisionFromStep(nice), config.Locale)
	}
}

// FormatPriceLabelWithPrecision overrides the precision when it is within
// the supported decimal range, falling back to the policy otherwise.
func FormatPriceLabelWithPrecision(value float64, config PriceLabelConfig, tickStepAbs float64, precision uint8) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "nan"
	}
	if precision <= 12 {
		return FormatAxisDecimal(value, int(precision), config.Locale)
	}
	return FormatPriceLabel(value, config, tickStepAbs)
}

// normalizeStepForPrecision rounds a step to the nearest "nice" 1/2/5
// magnitude so derived precision stays stable while zooming.
func normalizeStepForPrecision(stepAbs float64) float64 {
	if math.IsNaN(stepAbs) || math.IsInf(stepAbs, 0) || stepAbs <= 0 {
		return 0.01
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(stepAbs)))
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) || magnitude <= 0 {
		return stepAbs
	}
	normalized := stepAbs / magnitude
	var nice float64
	switch {
	case normalized < 1.5:
		nice = 1
	case normalized < 3:
		nice = 2
	case normalized < 7:
		nice = 5
	default:
		nice = 10
	}
	return nice * magnitude
}

// precisionFromStep counts the significant fraction digits of a step,
// capped at 12.
func precisionFromStep(step float64) int {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return 2
	}
	text := strconv.FormatFloat(math.Abs(step), 'f', 12, 64)
	dot := strings.IndexByte(text, '.')
	if dot < 0 {
		return 0
	}
	fraction := strings.TrimRight(text[dot+1:], "0")
	if len(fraction) > 12 {
		return 12
	}
	return len(fraction)
}

// FormatAxisDecimal renders value with the given precision under the
// locale's decimal separator.
func FormatAxisDecimal(value float64, precision int, locale Locale) string {
	if precision < 0 {
		precision = 0
	}
	text := strconv.FormatFloat(value, 'f', precision, 64)
	if locale == LocaleEsES {
		return strings.ReplaceAll(text, ".", ",")
	}
	return text
}

// trimAxisDecimal strips trailing zeros (and a dangling separator) from a
// formatted decimal, normalizing "-0" to "0".
func trimAxisDecimal(text string, locale Locale) string {
	sep := byte('.')
	if locale == LocaleEsES {
		sep = ','
	}
	if idx := strings.IndexByte(text, sep); idx >= 0 {
		text = strings.TrimRight(text, "0")
		if len(text) > 0 && text[len(text)-1] == sep {
			text = text[:len(text)-1]
		}
	}
	if text == "-0" {
		return "0"
	}
	return text
}

// QuantizeLogicalTimeMillis converts a logical time (seconds) into clamped
// integer milliseconds for cache keys.
func QuantizeLogicalTimeMillis(logicalTime float64) int64 {
	return quantizeScaled(logicalTime, 1e3)
}

// QuantizePriceLabelValue converts a display price into clamped integer
// nanounits for cache keys.
func QuantizePriceLabelValue(value float64) int64 {
	return quantizeScaled(value, 1e9)
}

func quantizeScaled(v, scale float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	scaled := math.Round(v * scale)
	if scaled > math.MaxInt64 {
		return math.MaxInt64
	}
	if scaled < math.MinInt64 {
		return math.MinInt64
	}
	return int64(scaled)
}

// ValidateTimezoneOffset bounds the fixed offset to ±14 hours.
func ValidateTimezoneOffset(minutes int) error {
	if minutes < -840 || minutes > 840 {
		return fmt.Errorf("axis: timezone offset %d minutes outside [-840, 840]: %w", minutes, core.ErrInvalidData)
	}
	return nil
}
