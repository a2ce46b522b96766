package series

// PixelPoint is one vertex in pixel space.
type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineGeometry is an open polyline; consecutive points form the segments.
type LineGeometry struct {
	Points []PixelPoint
}

// AreaGeometry is a polyline plus its closed fill polygon. The polygon is
// ordered baseline-start, line points, baseline-end, baseline-start again,
// i.e. len(Fill) == len(Line) + 3 for a non-empty line.
type AreaGeometry struct {
	Line []PixelPoint
	Fill []PixelPoint
}

// BaselineGeometry splits an area at a baseline: Above holds the fill
// polygon clamped to y ≤ BaselineY, Below the polygon clamped to
// y ≥ BaselineY.
type BaselineGeometry struct {
	Line      []PixelPoint
	Above     []PixelPoint
	Below     []PixelPoint
	BaselineY float64
}

// HistogramColumn is one projected histogram bar. YTop ≤ YBottom always,
// and the baseline sits inside [YTop, YBottom].
type HistogramColumn struct {
	XLeft   float64
	XCenter float64
	XRight  float64
	YTop    float64
	YBottom float64
}

// HistogramGeometry is the projected column set plus the shared baseline y.
type HistogramGeometry struct {
	Columns   []HistogramColumn
	BaselineY float64
}

// OhlcBarGeometry is one projected OHLC bar: a vertical range line with an
// open tick to the left and a close tick to the right of the center.
type OhlcBarGeometry struct {
	CenterX float64
	HighY   float64
	LowY    float64
	OpenX   float64
	OpenY   float64
	CloseX  float64
	CloseY  float64
}

// BarGeometry is the projected OHLC bar set.
type BarGeometry struct {
	Bars []OhlcBarGeometry
}

// CandleGeometry is one projected candlestick. BodyTop ≤ BodyBottom; the
// wick is a vertical line at CenterX between WickTopY and WickBottomY.
// IsBullish reports close ≥ open.
type CandleGeometry struct {
	Time        float64 `json:"time"`
	CenterX     float64 `json:"center_x"`
	WickTopY    float64 `json:"wick_top_y"`
	WickBottomY float64 `json:"wick_bottom_y"`
	BodyLeft    float64 `json:"body_left"`
	BodyTop     float64 `json:"body_top"`
	BodyRight   float64 `json:"body_right"`
	BodyBottom  float64 `json:"body_bottom"`
	IsBullish   bool    `json:"is_bullish"`
}
