package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantatlas/chartengine/axis"
	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/render"
)

// ViewportConfig is the initial viewport block.
type ViewportConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// MarginsConfig holds the price-scale margin ratios.
type MarginsConfig struct {
	TopMarginRatio    float64 `yaml:"top_margin_ratio" json:"top_margin_ratio"`
	BottomMarginRatio float64 `yaml:"bottom_margin_ratio" json:"bottom_margin_ratio"`
}

// TransformedBaseConfig configures the Percentage / IndexedTo100 base.
type TransformedBaseConfig struct {
	ExplicitBasePrice *float64 `yaml:"explicit_base_price,omitempty" json:"explicit_base_price,omitempty"`
	DynamicSource     string   `yaml:"dynamic_source" json:"dynamic_source"`
}

// SessionConfigRecord is the serialized session envelope.
type SessionConfigRecord struct {
	StartMinuteOfDay uint16 `yaml:"start_minute_of_day" json:"start_minute_of_day"`
	EndMinuteOfDay   uint16 `yaml:"end_minute_of_day" json:"end_minute_of_day"`
}

// TimeAxisLabelConfigRecord is the serialized time-axis label block.
type TimeAxisLabelConfigRecord struct {
	Locale                string               `yaml:"locale" json:"locale"`
	Policy                string               `yaml:"policy" json:"policy"`
	Precision             uint8                `yaml:"precision" json:"precision"`
	ShowSeconds           bool                 `yaml:"show_seconds" json:"show_seconds"`
	TimezoneOffsetMinutes int                  `yaml:"timezone_offset_minutes" json:"timezone_offset_minutes"`
	Session               *SessionConfigRecord `yaml:"session,omitempty" json:"session,omitempty"`
}

// PriceAxisLabelConfigRecord is the serialized price-axis label block.
type PriceAxisLabelConfigRecord struct {
	Locale            string  `yaml:"locale" json:"locale"`
	Policy            string  `yaml:"policy" json:"policy"`
	Precision         uint8   `yaml:"precision" json:"precision"`
	MinMove           float64 `yaml:"min_move" json:"min_move"`
	TrimTrailingZeros bool    `yaml:"trim_trailing_zeros" json:"trim_trailing_zeros"`
}

// NavigationConfig is the serialized time-scale navigation block.
type NavigationConfig struct {
	RightOffsetBars float64  `yaml:"right_offset_bars" json:"right_offset_bars"`
	BarSpacingPx    *float64 `yaml:"bar_spacing_px,omitempty" json:"bar_spacing_px,omitempty"`
}

// EdgeConfig is the serialized edge-fix block.
type EdgeConfig struct {
	FixLeftEdge  bool `yaml:"fix_left_edge" json:"fix_left_edge"`
	FixRightEdge bool `yaml:"fix_right_edge" json:"fix_right_edge"`
}

// ScrollZoomConfig is the serialized scroll-zoom block.
type ScrollZoomConfig struct {
	RightBarStaysOnScroll bool `yaml:"right_bar_stays_on_scroll" json:"right_bar_stays_on_scroll"`
}

// ResizeConfig is the serialized resize block.
type ResizeConfig struct {
	LockVisibleRangeOnResize bool   `yaml:"lock_visible_range_on_resize" json:"lock_visible_range_on_resize"`
	Anchor                   string `yaml:"anchor" json:"anchor"`
}

// RealtimeAppendConfig is the serialized append-follow block.
type RealtimeAppendConfig struct {
	PreserveRightEdgeOnAppend bool    `yaml:"preserve_right_edge_on_append" json:"preserve_right_edge_on_append"`
	RightEdgeToleranceBars    float64 `yaml:"right_edge_tolerance_bars" json:"right_edge_tolerance_bars"`
}

// ZoomLimitConfig is the serialized zoom-limit block.
type ZoomLimitConfig struct {
	MinBarSpacingPx float64  `yaml:"min_bar_spacing_px" json:"min_bar_spacing_px"`
	MaxBarSpacingPx *float64 `yaml:"max_bar_spacing_px,omitempty" json:"max_bar_spacing_px,omitempty"`
}

// PriceRealtimeConfig is the serialized autoscale-trigger block.
type PriceRealtimeConfig struct {
	AutoscaleOnDataSet         bool `yaml:"autoscale_on_data_set" json:"autoscale_on_data_set"`
	AutoscaleOnDataUpdate      bool `yaml:"autoscale_on_data_update" json:"autoscale_on_data_update"`
	AutoscaleOnTimeRangeChange bool `yaml:"autoscale_on_time_range_change" json:"autoscale_on_time_range_change"`
}

// LastPriceConfig is the serialized last-price block.
type LastPriceConfig struct {
	ShowLine      bool   `yaml:"show_line" json:"show_line"`
	ShowLabel     bool   `yaml:"show_label" json:"show_label"`
	UseTrendColor bool   `yaml:"use_trend_color" json:"use_trend_color"`
	SourceMode    string `yaml:"source_mode" json:"source_mode"`
}

// InteractionInputConfig is the serialized gate block; every flag defaults
// true when the block is absent.
type InteractionInputConfig struct {
	HandleScroll             bool `yaml:"handle_scroll" json:"handle_scroll"`
	HandleScale              bool `yaml:"handle_scale" json:"handle_scale"`
	ScrollMouseWheel         bool `yaml:"scroll_mouse_wheel" json:"scroll_mouse_wheel"`
	ScrollPressedMouseMove   bool `yaml:"scroll_pressed_mouse_move" json:"scroll_pressed_mouse_move"`
	ScrollHorzTouchDrag      bool `yaml:"scroll_horz_touch_drag" json:"scroll_horz_touch_drag"`
	ScrollVertTouchDrag      bool `yaml:"scroll_vert_touch_drag" json:"scroll_vert_touch_drag"`
	ScaleMouseWheel          bool `yaml:"scale_mouse_wheel" json:"scale_mouse_wheel"`
	ScalePinch               bool `yaml:"scale_pinch" json:"scale_pinch"`
	ScaleAxisPressedMouse    bool `yaml:"scale_axis_pressed_mouse_move" json:"scale_axis_pressed_mouse_move"`
	ScaleAxisDoubleClickGate bool `yaml:"scale_axis_double_click_reset" json:"scale_axis_double_click_reset"`
}

// CrosshairGuideLineConfig is the serialized guide-line visibility block.
type CrosshairGuideLineConfig struct {
	ShowLines          bool `yaml:"show_lines" json:"show_lines"`
	ShowHorizontalLine bool `yaml:"show_horizontal_line" json:"show_horizontal_line"`
	ShowVerticalLine   bool `yaml:"show_vertical_line" json:"show_vertical_line"`
}

// CrosshairGuideLineStyleConfig is the serialized guide-line style block.
// Absent fields keep the default theme; the per-axis colors override the
// shared color on that guide only.
type CrosshairGuideLineStyleConfig struct {
	Color               *render.Color `yaml:"color,omitempty" json:"color,omitempty"`
	WidthPx             *float64      `yaml:"width_px,omitempty" json:"width_px,omitempty"`
	StrokeStyle         string        `yaml:"stroke_style" json:"stroke_style"`
	VerticalLineColor   *render.Color `yaml:"vertical_line_color,omitempty" json:"vertical_line_color,omitempty"`
	HorizontalLineColor *render.Color `yaml:"horizontal_line_color,omitempty" json:"horizontal_line_color,omitempty"`
}

// CrosshairAxisLabelVisibilityConfig is the serialized per-axis crosshair
// label toggle block.
type CrosshairAxisLabelVisibilityConfig struct {
	ShowTimeLabel   bool `yaml:"show_time_label" json:"show_time_label"`
	ShowPriceLabel  bool `yaml:"show_price_label" json:"show_price_label"`
	ShowTimeBox     bool `yaml:"show_time_box" json:"show_time_box"`
	ShowPriceBox    bool `yaml:"show_price_box" json:"show_price_box"`
	ShowTimeBorder  bool `yaml:"show_time_border" json:"show_time_border"`
	ShowPriceBorder bool `yaml:"show_price_border" json:"show_price_border"`
}

// CrosshairAxisLabelStyleConfig is the serialized crosshair label text
// style block.
type CrosshairAxisLabelStyleConfig struct {
	TextColor         *render.Color `yaml:"text_color,omitempty" json:"text_color,omitempty"`
	FontSizePx        *float64      `yaml:"font_size_px,omitempty" json:"font_size_px,omitempty"`
	PaddingPx         *float64      `yaml:"padding_px,omitempty" json:"padding_px,omitempty"`
	TimeLabelOffsetY  *float64      `yaml:"time_label_offset_y,omitempty" json:"time_label_offset_y,omitempty"`
	PriceLabelOffsetX *float64      `yaml:"price_label_offset_x,omitempty" json:"price_label_offset_x,omitempty"`
}

// CrosshairAxisLabelBoxStyleConfig is the serialized crosshair label box
// style block. The shared fill and border apply to both axes; the
// per-axis fields override them.
type CrosshairAxisLabelBoxStyleConfig struct {
	Fill           *render.Color `yaml:"fill,omitempty" json:"fill,omitempty"`
	TimeFill       *render.Color `yaml:"time_fill,omitempty" json:"time_fill,omitempty"`
	PriceFill      *render.Color `yaml:"price_fill,omitempty" json:"price_fill,omitempty"`
	Border         *render.Color `yaml:"border,omitempty" json:"border,omitempty"`
	TimeBorder     *render.Color `yaml:"time_border,omitempty" json:"time_border,omitempty"`
	PriceBorder    *render.Color `yaml:"price_border,omitempty" json:"price_border,omitempty"`
	BorderWidthPx  *float64      `yaml:"border_width_px,omitempty" json:"border_width_px,omitempty"`
	CornerRadiusPx *float64      `yaml:"corner_radius_px,omitempty" json:"corner_radius_px,omitempty"`
}

// CandlestickStyleConfig is the serialized candle palette block. Absent
// fields keep the default theme.
type CandlestickStyleConfig struct {
	UpBodyColor       *render.Color `yaml:"up_body_color,omitempty" json:"up_body_color,omitempty"`
	DownBodyColor     *render.Color `yaml:"down_body_color,omitempty" json:"down_body_color,omitempty"`
	UpWickColor       *render.Color `yaml:"up_wick_color,omitempty" json:"up_wick_color,omitempty"`
	DownWickColor     *render.Color `yaml:"down_wick_color,omitempty" json:"down_wick_color,omitempty"`
	WickColorOverride *render.Color `yaml:"wick_color_override,omitempty" json:"wick_color_override,omitempty"`
	UpBorderColor     *render.Color `yaml:"up_border_color,omitempty" json:"up_border_color,omitempty"`
	DownBorderColor   *render.Color `yaml:"down_border_color,omitempty" json:"down_border_color,omitempty"`
	BorderOverride    *render.Color `yaml:"border_color_override,omitempty" json:"border_color_override,omitempty"`
	BodyMode          string        `yaml:"body_mode" json:"body_mode"`
	BodyWidthPx       *float64      `yaml:"body_width_px,omitempty" json:"body_width_px,omitempty"`
	WickWidthPx       *float64      `yaml:"wick_width_px,omitempty" json:"wick_width_px,omitempty"`
	BorderWidthPx     *float64      `yaml:"border_width_px,omitempty" json:"border_width_px,omitempty"`
	ShowWicks         *bool         `yaml:"show_wicks,omitempty" json:"show_wicks,omitempty"`
	ShowBorders       *bool         `yaml:"show_borders,omitempty" json:"show_borders,omitempty"`
}

// ChartConfig is the full configuration record accepted by New. Absent
// optional blocks fall back to the defaults in behavior.go.
type ChartConfig struct {
	Viewport ViewportConfig `yaml:"viewport" json:"viewport"`

	TimeStart float64 `yaml:"time_start" json:"time_start"`
	TimeEnd   float64 `yaml:"time_end" json:"time_end"`
	PriceMin  float64 `yaml:"price_min" json:"price_min"`
	PriceMax  float64 `yaml:"price_max" json:"price_max"`

	PriceScaleMode     string                 `yaml:"price_scale_mode" json:"price_scale_mode"`
	PriceScaleInverted bool                   `yaml:"price_scale_inverted" json:"price_scale_inverted"`
	PriceScaleMargins  *MarginsConfig         `yaml:"price_scale_margins,omitempty" json:"price_scale_margins,omitempty"`
	TransformedBase    *TransformedBaseConfig `yaml:"price_scale_transformed_base_behavior,omitempty" json:"price_scale_transformed_base_behavior,omitempty"`
	PriceRealtime      *PriceRealtimeConfig   `yaml:"price_scale_realtime_behavior,omitempty" json:"price_scale_realtime_behavior,omitempty"`

	CrosshairMode          string                              `yaml:"crosshair_mode" json:"crosshair_mode"`
	CrosshairGuides        *CrosshairGuideLineConfig           `yaml:"crosshair_guide_line_behavior,omitempty" json:"crosshair_guide_line_behavior,omitempty"`
	CrosshairGuideStyle    *CrosshairGuideLineStyleConfig      `yaml:"crosshair_guide_line_style_behavior,omitempty" json:"crosshair_guide_line_style_behavior,omitempty"`
	CrosshairLabels        *CrosshairAxisLabelVisibilityConfig `yaml:"crosshair_axis_label_visibility_behavior,omitempty" json:"crosshair_axis_label_visibility_behavior,omitempty"`
	CrosshairLabelStyle    *CrosshairAxisLabelStyleConfig      `yaml:"crosshair_axis_label_style_behavior,omitempty" json:"crosshair_axis_label_style_behavior,omitempty"`
	CrosshairLabelBoxStyle *CrosshairAxisLabelBoxStyleConfig   `yaml:"crosshair_axis_label_box_style_behavior,omitempty" json:"crosshair_axis_label_box_style_behavior,omitempty"`

	Candlesticks *CandlestickStyleConfig `yaml:"candlestick_style_behavior,omitempty" json:"candlestick_style_behavior,omitempty"`
	LastPrice    *LastPriceConfig        `yaml:"last_price_behavior,omitempty" json:"last_price_behavior,omitempty"`

	Navigation        *NavigationConfig           `yaml:"time_scale_navigation_behavior,omitempty" json:"time_scale_navigation_behavior,omitempty"`
	RightOffsetPx     *float64                    `yaml:"time_scale_right_offset_px,omitempty" json:"time_scale_right_offset_px,omitempty"`
	Edge              *EdgeConfig                 `yaml:"time_scale_edge_behavior,omitempty" json:"time_scale_edge_behavior,omitempty"`
	ScrollZoom        *ScrollZoomConfig           `yaml:"time_scale_scroll_zoom_behavior,omitempty" json:"time_scale_scroll_zoom_behavior,omitempty"`
	Resize            *ResizeConfig               `yaml:"time_scale_resize_behavior,omitempty" json:"time_scale_resize_behavior,omitempty"`
	RealtimeAppend    *RealtimeAppendConfig       `yaml:"time_scale_realtime_append_behavior,omitempty" json:"time_scale_realtime_append_behavior,omitempty"`
	ZoomLimit         *ZoomLimitConfig            `yaml:"time_scale_zoom_limit_behavior,omitempty" json:"time_scale_zoom_limit_behavior,omitempty"`
	TimeAxisLabels    *TimeAxisLabelConfigRecord  `yaml:"time_axis_label_config,omitempty" json:"time_axis_label_config,omitempty"`
	PriceAxisLabels   *PriceAxisLabelConfigRecord `yaml:"price_axis_label_config,omitempty" json:"price_axis_label_config,omitempty"`
	InteractionInput  *InteractionInputConfig     `yaml:"interaction_input_behavior,omitempty" json:"interaction_input_behavior,omitempty"`
}

// ParseConfigYAML decodes and validates a YAML configuration document.
func ParseConfigYAML(data []byte) (ChartConfig, error) {
	var cfg ChartConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ChartConfig{}, fmt.Errorf("engine: decode config yaml: %w: %v", core.ErrInvalidData, err)
	}
	if err := cfg.Validate(); err != nil {
		return ChartConfig{}, err
	}
	return cfg, nil
}

// ParseConfigJSON decodes and validates a JSON configuration document.
func ParseConfigJSON(data []byte) (ChartConfig, error) {
	var cfg ChartConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ChartConfig{}, fmt.Errorf("engine: decode config json: %w: %v", core.ErrInvalidData, err)
	}
	if err := cfg.Validate(); err != nil {
		return ChartConfig{}, err
	}
	return cfg, nil
}

// Validate checks every boundary constraint on the record.
func (c ChartConfig) Validate() error {
	if c.Viewport.Width < 1 || c.Viewport.Height < 1 {
		return fmt.Errorf("engine: viewport %dx%d must be positive: %w", c.Viewport.Width, c.Viewport.Height, core.ErrInvalidData)
	}
	if !(c.TimeEnd > c.TimeStart) {
		return fmt.Errorf("engine: time range [%v, %v] must ascend: %w", c.TimeStart, c.TimeEnd, core.ErrInvalidData)
	}
	if !(c.PriceMax > c.PriceMin) {
		return fmt.Errorf("engine: price domain [%v, %v] must ascend: %w", c.PriceMin, c.PriceMax, core.ErrInvalidData)
	}
	if _, err := parsePriceScaleMode(c.PriceScaleMode); err != nil {
		return err
	}
	if c.PriceScaleMode != "" {
		mode, _ := parsePriceScaleMode(c.PriceScaleMode)
		if mode == core.PriceScaleLog && c.PriceMin <= 0 {
			return fmt.Errorf("engine: log mode needs a positive price domain, got min %v: %w", c.PriceMin, core.ErrUnsupported)
		}
	}
	if c.PriceScaleMargins != nil {
		m := c.PriceScaleMargins
		if m.TopMarginRatio < 0 || m.BottomMarginRatio < 0 || m.TopMarginRatio+m.BottomMarginRatio >= 1 {
			return fmt.Errorf("engine: margins (%v, %v) must be >= 0 with sum < 1: %w", m.TopMarginRatio, m.BottomMarginRatio, core.ErrInvalidData)
		}
	}
	if c.TransformedBase != nil {
		if _, err := parseBaseSource(c.TransformedBase.DynamicSource); err != nil {
			return err
		}
	}
	if _, err := parseCrosshairMode(c.CrosshairMode); err != nil {
		return err
	}
	if g := c.CrosshairGuideStyle; g != nil {
		if _, err := parseStrokeStyle(g.StrokeStyle); err != nil {
			return err
		}
		if err := validateConfigColors(g.Color, g.VerticalLineColor, g.HorizontalLineColor); err != nil {
			return err
		}
		if err := validateConfigWidths(g.WidthPx); err != nil {
			return err
		}
	}
	if l := c.CrosshairLabelStyle; l != nil {
		if err := validateConfigColors(l.TextColor); err != nil {
			return err
		}
		if err := validateConfigWidths(l.FontSizePx, l.PaddingPx); err != nil {
			return err
		}
	}
	if b := c.CrosshairLabelBoxStyle; b != nil {
		if err := validateConfigColors(b.Fill, b.TimeFill, b.PriceFill, b.Border, b.TimeBorder, b.PriceBorder); err != nil {
			return err
		}
		if err := validateConfigWidths(b.BorderWidthPx, b.CornerRadiusPx); err != nil {
			return err
		}
	}
	if cs := c.Candlesticks; cs != nil {
		if _, err := parseCandleBodyMode(cs.BodyMode); err != nil {
			return err
		}
		if err := validateConfigColors(cs.UpBodyColor, cs.DownBodyColor, cs.UpWickColor, cs.DownWickColor,
			cs.WickColorOverride, cs.UpBorderColor, cs.DownBorderColor, cs.BorderOverride); err != nil {
			return err
		}
		if err := validateConfigWidths(cs.BodyWidthPx, cs.WickWidthPx, cs.BorderWidthPx); err != nil {
			return err
		}
	}
	if c.LastPrice != nil {
		if _, err := parseLastPriceSource(c.LastPrice.SourceMode); err != nil {
			return err
		}
	}
	if c.RightOffsetPx != nil {
		px := *c.RightOffsetPx
		if math.IsNaN(px) || math.IsInf(px, 0) || px < 0 {
			return fmt.Errorf("engine: right offset px %v must be finite and >= 0: %w", px, core.ErrInvalidData)
		}
	}
	if c.Resize != nil {
		if _, err := parseResizeAnchor(c.Resize.Anchor); err != nil {
			return err
		}
	}
	if c.RealtimeAppend != nil {
		b := RealtimeAppendBehavior{
			PreserveRightEdgeOnAppend: c.RealtimeAppend.PreserveRightEdgeOnAppend,
			RightEdgeToleranceBars:    c.RealtimeAppend.RightEdgeToleranceBars,
		}
		if err := b.Validate(); err != nil {
			return err
		}
	}
	if c.ZoomLimit != nil {
		b := ZoomLimitBehavior{MinBarSpacingPx: c.ZoomLimit.MinBarSpacingPx, MaxBarSpacingPx: c.ZoomLimit.MaxBarSpacingPx}
		if err := b.Validate(); err != nil {
			return err
		}
	}
	if c.TimeAxisLabels != nil {
		if err := axis.ValidateTimezoneOffset(c.TimeAxisLabels.TimezoneOffsetMinutes); err != nil {
			return err
		}
		if s := c.TimeAxisLabels.Session; s != nil && s.StartMinuteOfDay == s.EndMinuteOfDay {
			return fmt.Errorf("engine: session start and end minute %d coincide: %w", s.StartMinuteOfDay, core.ErrInvalidData)
		}
		if _, err := parseLocale(c.TimeAxisLabels.Locale); err != nil {
			return err
		}
		if _, err := parseTimeLabelPolicy(c.TimeAxisLabels.Policy); err != nil {
			return err
		}
	}
	if c.PriceAxisLabels != nil {
		p := c.PriceAxisLabels
		if p.Precision > 20 {
			return fmt.Errorf("engine: price label precision %d exceeds 20: %w", p.Precision, core.ErrInvalidData)
		}
		if _, err := parseLocale(p.Locale); err != nil {
			return err
		}
		kind, err := parsePriceLabelPolicy(p.Policy)
		if err != nil {
			return err
		}
		if kind == axis.PriceLabelMinMove && (math.IsNaN(p.MinMove) || math.IsInf(p.MinMove, 0) || p.MinMove <= 0) {
			return fmt.Errorf("engine: min_move %v must be positive and finite: %w", p.MinMove, core.ErrInvalidData)
		}
	}
	return nil
}

func parsePriceScaleMode(s string) (core.PriceScaleMode, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return core.PriceScaleLinear, nil
	case "log":
		return core.PriceScaleLog, nil
	case "percentage":
		return core.PriceScalePercentage, nil
	case "indexedto100", "indexed_to_100":
		return core.PriceScaleIndexedTo100, nil
	default:
		return 0, fmt.Errorf("engine: unknown price scale mode %q: %w", s, core.ErrInvalidData)
	}
}

func parseCrosshairMode(s string) (CrosshairMode, error) {
	switch strings.ToLower(s) {
	case "", "magnet":
		return CrosshairMagnet, nil
	case "normal":
		return CrosshairNormal, nil
	case "hidden":
		return CrosshairHidden, nil
	default:
		return 0, fmt.Errorf("engine: unknown crosshair mode %q: %w", s, core.ErrInvalidData)
	}
}

func parseBaseSource(s string) (TransformedBaseSource, error) {
	switch strings.ToLower(s) {
	case "", "domainstart", "domain_start":
		return BaseSourceDomainStart, nil
	case "firstdata", "first_data":
		return BaseSourceFirstData, nil
	case "lastdata", "last_data":
		return BaseSourceLastData, nil
	case "firstvisibledata", "first_visible_data":
		return BaseSourceFirstVisibleData, nil
	case "lastvisibledata", "last_visible_data":
		return BaseSourceLastVisibleData, nil
	default:
		return 0, fmt.Errorf("engine: unknown transformed base source %q: %w", s, core.ErrInvalidData)
	}
}

func parseLastPriceSource(s string) (LastPriceSourceMode, error) {
	switch strings.ToLower(s) {
	case "", "latestdata", "latest_data":
		return LastPriceLatestData, nil
	case "latestvisible", "latest_visible":
		return LastPriceLatestVisible, nil
	default:
		return 0, fmt.Errorf("engine: unknown last price source %q: %w", s, core.ErrInvalidData)
	}
}

func parseResizeAnchor(s string) (ResizeAnchor, error) {
	switch strings.ToLower(s) {
	case "left":
		return ResizeAnchorLeft, nil
	case "center":
		return ResizeAnchorCenter, nil
	case "", "right":
		return ResizeAnchorRight, nil
	default:
		return 0, fmt.Errorf("engine: unknown resize anchor %q: %w", s, core.ErrInvalidData)
	}
}

func parseLocale(s string) (axis.Locale, error) {
	switch strings.ToLower(s) {
	case "", "en-us", "en_us", "enus":
		return axis.LocaleEnUS, nil
	case "es-es", "es_es", "eses":
		return axis.LocaleEsES, nil
	default:
		return 0, fmt.Errorf("engine: unknown locale %q: %w", s, core.ErrInvalidData)
	}
}

func parseTimeLabelPolicy(s string) (axis.TimeLabelPolicyKind, error) {
	switch strings.ToLower(s) {
	case "logicaldecimal", "logical_decimal":
		return axis.TimeLabelLogicalDecimal, nil
	case "utcdatetime", "utc_date_time":
		return axis.TimeLabelUTCDateTime, nil
	case "", "utcadaptive", "utc_adaptive":
		return axis.TimeLabelUTCAdaptive, nil
	default:
		return 0, fmt.Errorf("engine: unknown time label policy %q: %w", s, core.ErrInvalidData)
	}
}

func parsePriceLabelPolicy(s string) (axis.PriceLabelPolicyKind, error) {
	switch strings.ToLower(s) {
	case "fixeddecimals", "fixed_decimals":
		return axis.PriceLabelFixedDecimals, nil
	case "minmove", "min_move":
		return axis.PriceLabelMinMove, nil
	case "", "adaptive":
		return axis.PriceLabelAdaptive, nil
	default:
		return 0, fmt.Errorf("engine: unknown price label policy %q: %w", s, core.ErrInvalidData)
	}
}

func parseStrokeStyle(s string) (render.LineStrokeStyle, error) {
	switch strings.ToLower(s) {
	case "", "solid":
		return render.StrokeSolid, nil
	case "dashed":
		return render.StrokeDashed, nil
	case "dotted":
		return render.StrokeDotted, nil
	default:
		return 0, fmt.Errorf("engine: unknown stroke style %q: %w", s, core.ErrInvalidData)
	}
}

func parseCandleBodyMode(s string) (CandleBodyMode, error) {
	switch strings.ToLower(s) {
	case "", "solid":
		return CandleBodySolid, nil
	case "hollowup", "hollow_up":
		return CandleBodyHollowUp, nil
	default:
		return 0, fmt.Errorf("engine: unknown candle body mode %q: %w", s, core.ErrInvalidData)
	}
}

func validateConfigColors(colors ...*render.Color) error {
	for _, c := range colors {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateConfigWidths(widths ...*float64) error {
	for _, w := range widths {
		if w == nil {
			continue
		}
		if math.IsNaN(*w) || math.IsInf(*w, 0) || *w < 0 {
			return fmt.Errorf("engine: style width %v must be finite and >= 0: %w", *w, core.ErrInvalidData)
		}
	}
	return nil
}

func (c ChartConfig) behaviorState() BehaviorState {
	b := DefaultBehaviorState()
	if c.Navigation != nil {
		b.Navigation = NavigationBehavior{
			RightOffsetBars: c.Navigation.RightOffsetBars,
			BarSpacingPx:    c.Navigation.BarSpacingPx,
		}
	}
	if c.RightOffsetPx != nil {
		px := *c.RightOffsetPx
		b.Navigation.RightOffsetPx = &px
	}
	if c.Edge != nil {
		b.Edge = EdgeBehavior{FixLeftEdge: c.Edge.FixLeftEdge, FixRightEdge: c.Edge.FixRightEdge}
	}
	if c.ScrollZoom != nil {
		b.ScrollZoom = ScrollZoomBehavior{RightBarStaysOnScroll: c.ScrollZoom.RightBarStaysOnScroll}
	}
	if c.Resize != nil {
		anchor, _ := parseResizeAnchor(c.Resize.Anchor)
		b.Resize = ResizeBehavior{LockVisibleRangeOnResize: c.Resize.LockVisibleRangeOnResize, Anchor: anchor}
	}
	if c.RealtimeAppend != nil {
		b.RealtimeAppend = RealtimeAppendBehavior{
			PreserveRightEdgeOnAppend: c.RealtimeAppend.PreserveRightEdgeOnAppend,
			RightEdgeToleranceBars:    c.RealtimeAppend.RightEdgeToleranceBars,
		}
	}
	if c.ZoomLimit != nil {
		b.ZoomLimit = ZoomLimitBehavior{MinBarSpacingPx: c.ZoomLimit.MinBarSpacingPx, MaxBarSpacingPx: c.ZoomLimit.MaxBarSpacingPx}
	}
	if c.PriceRealtime != nil {
		b.PriceRealtime = PriceScaleRealtimeBehavior{
			AutoscaleOnDataSet:         c.PriceRealtime.AutoscaleOnDataSet,
			AutoscaleOnDataUpdate:      c.PriceRealtime.AutoscaleOnDataUpdate,
			AutoscaleOnTimeRangeChange: c.PriceRealtime.AutoscaleOnTimeRangeChange,
		}
	}
	if c.TransformedBase != nil {
		source, _ := parseBaseSource(c.TransformedBase.DynamicSource)
		b.TransformedBase = TransformedBaseBehavior{
			ExplicitBasePrice: c.TransformedBase.ExplicitBasePrice,
			DynamicSource:     source,
		}
	}
	if c.LastPrice != nil {
		source, _ := parseLastPriceSource(c.LastPrice.SourceMode)
		b.LastPrice = LastPriceBehavior{
			ShowLine:      c.LastPrice.ShowLine,
			ShowLabel:     c.LastPrice.ShowLabel,
			UseTrendColor: c.LastPrice.UseTrendColor,
			SourceMode:    source,
		}
	}
	if c.CrosshairGuides != nil {
		g := c.CrosshairGuides
		b.CrosshairGuides = CrosshairGuideLineBehavior{
			ShowLines:          g.ShowLines,
			ShowHorizontalLine: g.ShowHorizontalLine,
			ShowVerticalLine:   g.ShowVerticalLine,
		}
	}
	if c.CrosshairLabels != nil {
		v := c.CrosshairLabels
		b.CrosshairLabels = CrosshairAxisLabelVisibilityBehavior{
			ShowTimeLabel:   v.ShowTimeLabel,
			ShowPriceLabel:  v.ShowPriceLabel,
			ShowTimeBox:     v.ShowTimeBox,
			ShowPriceBox:    v.ShowPriceBox,
			ShowTimeBorder:  v.ShowTimeBorder,
			ShowPriceBorder: v.ShowPriceBorder,
		}
	}
	if c.InteractionInput != nil {
		v := c.InteractionInput
		b.InteractionInput = InteractionInputBehavior{
			HandleScroll:             v.HandleScroll,
			HandleScale:              v.HandleScale,
			ScrollMouseWheel:         v.ScrollMouseWheel,
			ScrollPressedMouseMove:   v.ScrollPressedMouseMove,
			ScrollHorzTouchDrag:      v.ScrollHorzTouchDrag,
			ScrollVertTouchDrag:      v.ScrollVertTouchDrag,
			ScaleMouseWheel:          v.ScaleMouseWheel,
			ScalePinch:               v.ScalePinch,
			ScaleAxisPressedMouse:    v.ScaleAxisPressedMouse,
			ScaleAxisDoubleClickGate: v.ScaleAxisDoubleClickGate,
		}
	}
	if c.TimeAxisLabels != nil {
		t := c.TimeAxisLabels
		locale, _ := parseLocale(t.Locale)
		kind, _ := parseTimeLabelPolicy(t.Policy)
		cfg := axis.TimeLabelConfig{
			Locale: locale,
			Policy: axis.TimeLabelPolicy{
				Kind:        kind,
				Precision:   t.Precision,
				ShowSeconds: t.ShowSeconds,
			},
			TimezoneOffsetMinutes: t.TimezoneOffsetMinutes,
		}
		if t.Session != nil {
			cfg.Session = &axis.SessionConfig{
				StartMinuteOfDay: t.Session.StartMinuteOfDay,
				EndMinuteOfDay:   t.Session.EndMinuteOfDay,
			}
		}
		b.TimeAxisLabels = cfg
	}
	if c.PriceAxisLabels != nil {
		p := c.PriceAxisLabels
		locale, _ := parseLocale(p.Locale)
		kind, _ := parsePriceLabelPolicy(p.Policy)
		b.PriceAxisLabels = axis.PriceLabelConfig{
			Locale: locale,
			Policy: axis.PriceLabelPolicy{
				Kind:              kind,
				Precision:         p.Precision,
				MinMove:           p.MinMove,
				TrimTrailingZeros: p.TrimTrailingZeros,
			},
		}
	}
	return b
}

// renderStyle layers the serialized style blocks over the default theme.
func (c ChartConfig) renderStyle() RenderStyle {
	s := DefaultRenderStyle()
	if g := c.CrosshairGuideStyle; g != nil {
		if g.Color != nil {
			s.CrosshairLineColor = *g.Color
		}
		if g.WidthPx != nil {
			s.CrosshairLineWidthPx = *g.WidthPx
		}
		if g.StrokeStyle != "" {
			s.CrosshairStrokeStyle, _ = parseStrokeStyle(g.StrokeStyle)
		}
		if g.VerticalLineColor != nil {
			v := *g.VerticalLineColor
			s.CrosshairVerticalLineColor = &v
		}
		if g.HorizontalLineColor != nil {
			v := *g.HorizontalLineColor
			s.CrosshairHorizontalLineColor = &v
		}
	}
	if l := c.CrosshairLabelStyle; l != nil {
		box := &s.CrosshairLabelBox
		if l.TextColor != nil {
			box.TextColor = *l.TextColor
		}
		if l.FontSizePx != nil {
			box.FontSizePx = *l.FontSizePx
		}
		if l.PaddingPx != nil {
			box.PaddingPx = *l.PaddingPx
		}
		if l.TimeLabelOffsetY != nil {
			box.TimeLabelOffsetY = *l.TimeLabelOffsetY
		}
		if l.PriceLabelOffsetX != nil {
			box.PriceLabelOffsetX = *l.PriceLabelOffsetX
		}
	}
	if bx := c.CrosshairLabelBoxStyle; bx != nil {
		box := &s.CrosshairLabelBox
		if bx.Fill != nil {
			box.TimeFill, box.PriceFill = *bx.Fill, *bx.Fill
		}
		if bx.TimeFill != nil {
			box.TimeFill = *bx.TimeFill
		}
		if bx.PriceFill != nil {
			box.PriceFill = *bx.PriceFill
		}
		if bx.Border != nil {
			box.TimeBorder, box.PriceBorder = *bx.Border, *bx.Border
		}
		if bx.TimeBorder != nil {
			box.TimeBorder = *bx.TimeBorder
		}
		if bx.PriceBorder != nil {
			box.PriceBorder = *bx.PriceBorder
		}
		if bx.BorderWidthPx != nil {
			box.BorderWidthPx = *bx.BorderWidthPx
		}
		if bx.CornerRadiusPx != nil {
			box.CornerRadiusPx = *bx.CornerRadiusPx
		}
	}
	if cs := c.Candlesticks; cs != nil {
		candles := &s.Candles
		if cs.UpBodyColor != nil {
			candles.UpBodyColor = *cs.UpBodyColor
		}
		if cs.DownBodyColor != nil {
			candles.DownBodyColor = *cs.DownBodyColor
		}
		if cs.UpWickColor != nil {
			candles.UpWickColor = *cs.UpWickColor
		}
		if cs.DownWickColor != nil {
			candles.DownWickColor = *cs.DownWickColor
		}
		if cs.WickColorOverride != nil {
			v := *cs.WickColorOverride
			candles.WickColorOverride = &v
		}
		if cs.UpBorderColor != nil {
			candles.UpBorderColor = *cs.UpBorderColor
		}
		if cs.DownBorderColor != nil {
			candles.DownBorderColor = *cs.DownBorderColor
		}
		if cs.BorderOverride != nil {
			v := *cs.BorderOverride
			candles.BorderOverride = &v
		}
		if cs.BodyMode != "" {
			candles.BodyMode, _ = parseCandleBodyMode(cs.BodyMode)
		}
		if cs.BodyWidthPx != nil {
			candles.BodyWidthPx = *cs.BodyWidthPx
		}
		if cs.WickWidthPx != nil {
			candles.WickWidthPx = *cs.WickWidthPx
		}
		if cs.BorderWidthPx != nil {
			candles.BorderWidthPx = *cs.BorderWidthPx
		}
		if cs.ShowWicks != nil {
			candles.ShowWicks = *cs.ShowWicks
		}
		if cs.ShowBorders != nil {
			candles.ShowBorders = *cs.ShowBorders
		}
	}
	return s
}
