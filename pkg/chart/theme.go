package chart

// Metrics holds the fixed layout constants. They are presentation choices,
// not derived from data.
type Metrics struct {
	Height       float64 `toml:"height" json:"height"`               // surface height
	Padding      float64 `toml:"padding" json:"padding"`             // outer padding
	BarHeight    float64 `toml:"bar_height" json:"bar_height"`       // height of one bar
	BarGap       float64 `toml:"bar_gap" json:"bar_gap"`             // vertical gap between bars
	LabelWidth   float64 `toml:"label_width" json:"label_width"`     // reserved label column
	MinBarWidth  float64 `toml:"min_bar_width" json:"min_bar_width"` // floor for non-zero bars
	CornerRadius float64 `toml:"corner_radius" json:"corner_radius"`
	MaxBars      int     `toml:"max_bars" json:"max_bars"`

	DonutMargin float64 `toml:"donut_margin" json:"donut_margin"` // subtracted from the half-extent
	LabelRadius float64 `toml:"label_radius" json:"label_radius"` // wedge label distance, fraction of radius
	HoleRatio   float64 `toml:"hole_ratio" json:"hole_ratio"`     // hole radius, fraction of radius
}

// DefaultMetrics returns the dashboard layout constants.
func DefaultMetrics() Metrics {
	return Metrics{
		Height:       220,
		Padding:      20,
		BarHeight:    28,
		BarGap:       10,
		LabelWidth:   120,
		MinBarWidth:  4,
		CornerRadius: 4,
		MaxBars:      6,
		DonutMargin:  30,
		LabelRadius:  0.65,
		HoleRatio:    0.45,
	}
}

// Row is the vertical stride of one bar.
func (m Metrics) Row() float64 { return m.BarHeight + m.BarGap }

// UsableWidth is the plotting width left for bars in a surface of width w.
func (m Metrics) UsableWidth(w float64) float64 {
	return max(0, w-m.LabelWidth-2*m.Padding)
}

// Resolve returns m with zero fields set to their default.
func (m Metrics) Resolve() Metrics { return m.withDefaults() }

// withDefaults fills zero fields from DefaultMetrics so partial overrides
// (for example from a config file) stay usable.
func (m Metrics) withDefaults() Metrics {
	d := DefaultMetrics()
	if m.Height <= 0 {
		m.Height = d.Height
	}
	if m.Padding <= 0 {
		m.Padding = d.Padding
	}
	if m.BarHeight <= 0 {
		m.BarHeight = d.BarHeight
	}
	if m.BarGap <= 0 {
		m.BarGap = d.BarGap
	}
	if m.LabelWidth <= 0 {
		m.LabelWidth = d.LabelWidth
	}
	if m.MinBarWidth <= 0 {
		m.MinBarWidth = d.MinBarWidth
	}
	if m.CornerRadius <= 0 {
		m.CornerRadius = d.CornerRadius
	}
	if m.MaxBars <= 0 {
		m.MaxBars = d.MaxBars
	}
	if m.DonutMargin <= 0 {
		m.DonutMargin = d.DonutMargin
	}
	if m.LabelRadius <= 0 || m.LabelRadius > 1 {
		m.LabelRadius = d.LabelRadius
	}
	if m.HoleRatio <= 0 || m.HoleRatio >= 1 {
		m.HoleRatio = d.HoleRatio
	}
	return m
}

// Theme holds every color the renderers paint with.
type Theme struct {
	Palette    Palette            `toml:"palette" json:"palette,omitempty"`
	Severity   map[Severity]Color `toml:"severity" json:"severity,omitempty"`
	Track      Color              `toml:"track" json:"track,omitempty"`           // bar background
	Label      Color              `toml:"label" json:"label,omitempty"`           // category labels and captions
	Value      Color              `toml:"value" json:"value,omitempty"`           // counts and the donut total
	Background Color              `toml:"background" json:"background,omitempty"` // donut hole
	InkDark    Color              `toml:"ink_dark" json:"ink_dark,omitempty"`     // wedge labels on light fills
	InkLight   Color              `toml:"ink_light" json:"ink_light,omitempty"`   // wedge labels on dark fills
	Muted      Color              `toml:"muted" json:"muted,omitempty"`           // fallback for unknown severities
}

// Colors returns every color the theme sets, for validation.
func (t Theme) Colors() []Color {
	out := append([]Color(nil), t.Palette...)
	for _, sev := range Severities {
		if c, ok := t.Severity[sev]; ok {
			out = append(out, c)
		}
	}
	for _, c := range []Color{t.Track, t.Label, t.Value, t.Background, t.InkDark, t.InkLight, t.Muted} {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// DefaultTheme returns the dark dashboard theme.
func DefaultTheme() Theme {
	sev := make(map[Severity]Color, len(SeverityColors))
	for k, v := range SeverityColors {
		sev[k] = v
	}
	return Theme{
		Palette:    append(Palette(nil), DefaultPalette...),
		Severity:   sev,
		Track:      ColorTrack,
		Label:      ColorMuted,
		Value:      ColorText,
		Background: ColorBackground,
		InkDark:    ColorInk,
		InkLight:   ColorText,
		Muted:      ColorMuted,
	}
}

// SeverityColor returns the table color for level, or the muted color.
func (t Theme) SeverityColor(level string) Color {
	if sev, ok := ParseSeverity(level); ok {
		if c, ok := t.Severity[sev]; ok {
			return c
		}
	}
	return t.Muted
}

// Resolve returns t with every empty field set to its default, as the
// renderers see it.
func (t Theme) Resolve() Theme { return t.withDefaults() }

func (t Theme) withDefaults() Theme {
	d := DefaultTheme()
	if len(t.Palette) == 0 {
		t.Palette = d.Palette
	}
	sev := d.Severity
	for k, v := range t.Severity {
		if v != "" {
			sev[k] = v
		}
	}
	t.Severity = sev
	for _, c := range []struct{ dst *Color; def Color }{
		{&t.Track, d.Track},
		{&t.Label, d.Label},
		{&t.Value, d.Value},
		{&t.Background, d.Background},
		{&t.InkDark, d.InkDark},
		{&t.InkLight, d.InkLight},
		{&t.Muted, d.Muted},
	} {
		if *c.dst == "" {
			*c.dst = c.def
		}
	}
	return t
}

// Fonts used by the renderers.
var (
	fontLabel   = Font{Size: 12, Weight: 400, Family: FamilySans}
	fontValue   = Font{Size: 12, Weight: 600, Family: FamilyMono}
	fontTotal   = Font{Size: 22, Weight: 700, Family: FamilyMono}
	fontCaption = Font{Size: 10, Weight: 400, Family: FamilySans}
)

// Option configures a render call.
type Option func(*renderer)

type renderer struct {
	metrics Metrics
	theme   Theme
}

// WithMetrics overrides the layout constants. Zero fields keep their default.
func WithMetrics(m Metrics) Option { return func(r *renderer) { r.metrics = m.withDefaults() } }

// WithTheme overrides the colors. Empty fields keep their default.
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t.withDefaults() } }

func newRenderer(opts ...Option) renderer {
	r := renderer{metrics: DefaultMetrics(), theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
