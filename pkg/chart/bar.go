package chart

import (
	"math"
	"strconv"
)

// Bar is the computed geometry of one ranked entry.
type Bar struct {
	Entry
	Rank  int   `json:"rank"`
	Track Rect  `json:"track"` // full-width background
	Fill  Rect  `json:"fill"`  // proportional bar; zero width for zero values
	Color Color `json:"color"`

	LabelAt Point `json:"label_at"` // right-aligned label baseline
	ValueAt Point `json:"value_at"` // left-aligned count baseline
}

// BarChart is the layout of a bar chart for one surface width.
type BarChart struct {
	Width         float64 `json:"width"`          // surface width
	Height        float64 `json:"height"`         // surface height
	ContentHeight float64 `json:"content_height"` // padding + N rows
	Usable        float64 `json:"usable"`         // plotting width
	Total         int     `json:"total"`
	Bars          []Bar   `json:"bars"`
}

// Empty reports whether the chart has nothing to draw.
func (c BarChart) Empty() bool { return len(c.Bars) == 0 }

// LayoutBars computes bar geometry for ds on a surface of the given width.
// Only the first m.MaxBars entries are laid out; the rest are dropped without
// an aggregate bucket. Shares are computed against the total of the whole
// dataset. A zero total yields an empty chart.
func LayoutBars(ds Dataset, width float64, m Metrics, t Theme) BarChart {
	total := ds.Total()
	if total == 0 {
		return BarChart{}
	}

	shown := ds.Head(m.MaxBars)
	usable := m.UsableWidth(width)
	chart := BarChart{
		Width:         width,
		Height:        m.Height,
		ContentHeight: m.Padding + float64(len(shown))*m.Row(),
		Usable:        usable,
		Total:         total,
		Bars:          make([]Bar, 0, len(shown)),
	}

	trackW := max(0, width-m.LabelWidth-m.Padding)
	for i, e := range shown {
		y := m.Padding + float64(i)*m.Row()
		w := barWidth(e.Value, total, usable, m.MinBarWidth)
		baseline := y + m.BarHeight/2 + 4
		chart.Bars = append(chart.Bars, Bar{
			Entry:   e,
			Rank:    i,
			Track:   Rect{X: m.LabelWidth, Y: y, W: trackW, H: m.BarHeight},
			Fill:    Rect{X: m.LabelWidth, Y: y, W: w, H: m.BarHeight},
			Color:   t.Palette.At(i),
			LabelAt: Point{X: m.LabelWidth - 10, Y: baseline},
			ValueAt: Point{X: m.LabelWidth + w + 8, Y: baseline},
		})
	}
	return chart
}

// barWidth scales value into usable pixels, floored to whole pixels. Non-zero
// values are raised to minWidth so they stay visible; nothing exceeds usable.
func barWidth(value, total int, usable, minWidth float64) float64 {
	if value <= 0 || total <= 0 || usable <= 0 {
		return 0
	}
	w := math.Floor(usable * float64(value) / float64(total))
	w = max(w, minWidth)
	return min(w, usable)
}

// Commands converts the layout into surface calls: resize, clear, then per
// bar the label, track, fill and count.
func (c BarChart) Commands(m Metrics, t Theme) []Command {
	if c.Empty() {
		return nil
	}
	cmds := make([]Command, 0, 2+4*len(c.Bars))
	cmds = append(cmds,
		Command{Op: OpResize, Rect: Rect{W: c.Width, H: c.Height}},
		Command{Op: OpClear},
	)
	for _, b := range c.Bars {
		cmds = append(cmds,
			Command{Op: OpText, Center: b.LabelAt, Text: b.Label, Font: fontLabel, Align: AlignRight, Fill: t.Label},
			Command{Op: OpRoundRect, Rect: b.Track, Radius: m.CornerRadius, Fill: t.Track},
		)
		if b.Fill.W > 0 {
			cmds = append(cmds, Command{Op: OpRoundRect, Rect: b.Fill, Radius: min(m.CornerRadius, b.Fill.W/2), Fill: b.Color})
		}
		cmds = append(cmds, Command{Op: OpText, Center: b.ValueAt, Text: strconv.Itoa(b.Value), Font: fontValue, Align: AlignLeft, Fill: t.Value})
	}
	return cmds
}

// RenderBars draws ds onto s as a ranked horizontal bar chart, sized to the
// surface's container width and the fixed chart height. A nil surface, an
// empty dataset or a zero total leave the surface untouched.
func RenderBars(s Surface, ds Dataset, opts ...Option) BarChart {
	if s == nil {
		return BarChart{}
	}
	r := newRenderer(opts...)
	chart := LayoutBars(ds, s.ContainerWidth(), r.metrics, r.theme)
	Apply(s, chart.Commands(r.metrics, r.theme))
	return chart
}
