package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/fonts"
)

// fullTurn is the sweep at which a wedge is drawn as a plain circle. An SVG
// arc whose end point equals its start point draws nothing.
const fullTurn = 2*math.Pi - 1e-9

type SVGOption func(*SVG)

// WithBackground paints the whole surface with c on every Clear.
func WithBackground(c chart.Color) SVGOption { return func(s *SVG) { s.background = c } }

// WithTitle adds an accessible <title> element.
func WithTitle(title string) SVGOption { return func(s *SVG) { s.title = title } }

// SVG is a chart.Surface that writes SVG elements into a buffer.
type SVG struct {
	container  float64
	width      float64
	height     float64
	background chart.Color
	title      string
	body       bytes.Buffer
}

// NewSVG returns an SVG surface hosted in a container of the given width.
func NewSVG(containerWidth float64, opts ...SVGOption) *SVG {
	s := &SVG{container: containerWidth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) ContainerWidth() float64 { return s.container }

func (s *SVG) Resize(width, height float64) {
	s.width, s.height = width, height
	s.body.Reset()
}

func (s *SVG) Clear() {
	s.body.Reset()
	if s.background != "" {
		fmt.Fprintf(&s.body, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			s.width, s.height, EscapeXML(string(s.background)))
	}
}

func (s *SVG) FillRoundedRect(r chart.Rect, radius float64, fill chart.Color) {
	fmt.Fprintf(&s.body, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, radius, EscapeXML(string(fill)))
}

func (s *SVG) FillWedge(c chart.Point, radius, start, end float64, fill chart.Color) {
	sweep := end - start
	if sweep <= 0 || radius <= 0 {
		return
	}
	if sweep >= fullTurn {
		s.FillCircle(c, radius, fill)
		return
	}
	x0, y0 := c.X+radius*math.Cos(start), c.Y+radius*math.Sin(start)
	x1, y1 := c.X+radius*math.Cos(end), c.Y+radius*math.Sin(end)
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	fmt.Fprintf(&s.body, `  <path d="M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f Z" fill="%s"/>`+"\n",
		c.X, c.Y, x0, y0, radius, radius, large, x1, y1, EscapeXML(string(fill)))
}

func (s *SVG) FillCircle(c chart.Point, radius float64, fill chart.Color) {
	if radius <= 0 {
		return
	}
	fmt.Fprintf(&s.body, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		c.X, c.Y, radius, EscapeXML(string(fill)))
}

func (s *SVG) FillText(p chart.Point, text string, f chart.Font, align chart.Align, fill chart.Color) {
	fmt.Fprintf(&s.body, `  <text x="%.1f" y="%.1f" text-anchor="%s" font-family="%s" font-size="%.0f" font-weight="%d" fill="%s">%s</text>`+"\n",
		p.X, p.Y, textAnchor(align), EscapeXML(fontFamily(f)), f.Size, f.Weight, EscapeXML(string(fill)), EscapeXML(text))
}

// Bytes returns the complete SVG document. A surface that was never resized
// yields an empty document of the container width and default height.
func (s *SVG) Bytes() []byte {
	w, h := s.width, s.height
	if w == 0 && h == 0 {
		w, h = s.container, chart.DefaultMetrics().Height
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(s.title))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func textAnchor(a chart.Align) string {
	switch a {
	case chart.AlignRight:
		return "end"
	case chart.AlignCenter:
		return "middle"
	default:
		return "start"
	}
}

func fontFamily(f chart.Font) string {
	if f.Family == chart.FamilyMono {
		return fonts.MonoFamily
	}
	return fonts.SansFamily
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var _ chart.Surface = (*SVG)(nil)
