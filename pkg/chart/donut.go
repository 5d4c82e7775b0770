package chart

import (
	"math"
	"strconv"
)

// startAngle is 12 o'clock in screen coordinates.
const startAngle = -math.Pi / 2

// Slice is one wedge of the donut.
type Slice struct {
	Severity Severity `json:"severity"`
	Value    int      `json:"value"`
	Start    float64  `json:"start"` // radians
	Sweep    float64  `json:"sweep"` // radians, 2π·value/total
	Color    Color    `json:"color"`
	LabelAt  Point    `json:"label_at"`
	Ink      Color    `json:"ink"` // label color contrasting with Color
}

// End is the angle where the wedge stops.
func (s Slice) End() float64 { return s.Start + s.Sweep }

// Mid is the bisecting angle of the wedge.
func (s Slice) Mid() float64 { return s.Start + s.Sweep/2 }

// Donut is the layout of a donut chart for one surface width.
type Donut struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Hole   float64 `json:"hole"`
	Total  int     `json:"total"`
	Slices []Slice `json:"slices"`
}

// Empty reports whether the donut has nothing to draw.
func (d Donut) Empty() bool { return len(d.Slices) == 0 }

// SweepSum returns the summed sweep of all slices; 2π for any non-empty
// donut.
func (d Donut) SweepSum() float64 {
	sum := 0.0
	for _, s := range d.Slices {
		sum += s.Sweep
	}
	return sum
}

// LayoutDonut computes wedge geometry for counts on a surface of the given
// width. Wedges start at 12 o'clock and run clockwise in canonical severity
// order; zero counts get no wedge. A zero total, or a surface too small to
// hold a ring after the margin, yields an empty donut.
func LayoutDonut(counts SeverityCounts, width float64, m Metrics, t Theme) Donut {
	total := counts.Total()
	if total == 0 {
		return Donut{}
	}

	height := m.Height
	radius := min(width, height)/2 - m.DonutMargin
	if radius <= 0 {
		return Donut{}
	}

	d := Donut{
		Width:  width,
		Height: height,
		Center: Point{X: width / 2, Y: height / 2},
		Radius: radius,
		Hole:   radius * m.HoleRatio,
		Total:  total,
	}

	angle := startAngle
	for _, sev := range Severities {
		v := counts[sev]
		if v <= 0 {
			continue
		}
		s := Slice{
			Severity: sev,
			Value:    v,
			Start:    angle,
			Sweep:    2 * math.Pi * float64(v) / float64(total),
			Color:    t.SeverityColor(string(sev)),
		}
		mid := s.Mid()
		s.LabelAt = Point{
			X: d.Center.X + radius*m.LabelRadius*math.Cos(mid),
			Y: d.Center.Y + radius*m.LabelRadius*math.Sin(mid),
		}
		s.Ink = ContrastColor(s.Color, t.InkDark, t.InkLight)
		d.Slices = append(d.Slices, s)
		angle += s.Sweep
	}
	return d
}

// Commands converts the layout into surface calls: resize, clear, wedges
// with their labels, the hole, then the total and its caption.
func (d Donut) Commands(t Theme) []Command {
	if d.Empty() {
		return nil
	}
	cmds := make([]Command, 0, 6+2*len(d.Slices))
	cmds = append(cmds,
		Command{Op: OpResize, Rect: Rect{W: d.Width, H: d.Height}},
		Command{Op: OpClear},
	)
	for _, s := range d.Slices {
		cmds = append(cmds,
			Command{Op: OpWedge, Center: d.Center, Radius: d.Radius, Start: s.Start, End: s.End(), Fill: s.Color},
			Command{Op: OpText, Center: Point{X: s.LabelAt.X, Y: s.LabelAt.Y + 4}, Text: strconv.Itoa(s.Value), Font: fontValue, Align: AlignCenter, Fill: s.Ink},
		)
	}
	cmds = append(cmds,
		Command{Op: OpCircle, Center: d.Center, Radius: d.Hole, Fill: t.Background},
		Command{Op: OpText, Center: Point{X: d.Center.X, Y: d.Center.Y + 4}, Text: strconv.Itoa(d.Total), Font: fontTotal, Align: AlignCenter, Fill: t.Value},
		Command{Op: OpText, Center: Point{X: d.Center.X, Y: d.Center.Y + 18}, Text: "TOTAL", Font: fontCaption, Align: AlignCenter, Fill: t.Label},
	)
	return cmds
}

// RenderDonut draws counts onto s as a single-ring donut with the grand total
// in the middle. A nil surface or a zero total leave the surface untouched.
func RenderDonut(s Surface, counts SeverityCounts, opts ...Option) Donut {
	if s == nil {
		return Donut{}
	}
	r := newRenderer(opts...)
	d := LayoutDonut(counts, s.ContainerWidth(), r.metrics, r.theme)
	Apply(s, d.Commands(r.theme))
	return d
}
