package sink

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/fonts"
)

type PNGOption func(*PNG)

// WithScale renders at scale× the surface size; 2 gives a retina image.
func WithScale(scale float64) PNGOption {
	return func(p *PNG) {
		if scale > 0 {
			p.scale = scale
		}
	}
}

// WithPNGBackground fills the image with c on every Clear instead of leaving
// it transparent.
func WithPNGBackground(c chart.Color) PNGOption { return func(p *PNG) { p.background = c } }

// PNG is a chart.Surface that rasterizes onto a gg context.
type PNG struct {
	container  float64
	scale      float64
	background chart.Color
	dc         *gg.Context
	err        error
}

// NewPNG returns a raster surface hosted in a container of the given width.
func NewPNG(containerWidth float64, opts ...PNGOption) *PNG {
	p := &PNG{container: containerWidth, scale: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PNG) ContainerWidth() float64 { return p.container }

func (p *PNG) Resize(width, height float64) {
	w := max(1, int(math.Ceil(width*p.scale)))
	h := max(1, int(math.Ceil(height*p.scale)))
	p.dc = gg.NewContext(w, h)
	p.dc.Scale(p.scale, p.scale)
}

func (p *PNG) Clear() {
	dc := p.context()
	if p.background != "" {
		dc.SetHexColor(string(p.background))
	} else {
		dc.SetRGBA(0, 0, 0, 0)
	}
	dc.Clear()
}

func (p *PNG) FillRoundedRect(r chart.Rect, radius float64, fill chart.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dc := p.context()
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	dc.SetHexColor(string(fill))
	dc.Fill()
}

func (p *PNG) FillWedge(c chart.Point, radius, start, end float64, fill chart.Color) {
	if end <= start || radius <= 0 {
		return
	}
	dc := p.context()
	if end-start >= fullTurn {
		dc.DrawCircle(c.X, c.Y, radius)
	} else {
		dc.MoveTo(c.X, c.Y)
		dc.DrawArc(c.X, c.Y, radius, start, end)
		dc.ClosePath()
	}
	dc.SetHexColor(string(fill))
	dc.Fill()
}

func (p *PNG) FillCircle(c chart.Point, radius float64, fill chart.Color) {
	if radius <= 0 {
		return
	}
	dc := p.context()
	dc.DrawCircle(c.X, c.Y, radius)
	dc.SetHexColor(string(fill))
	dc.Fill()
}

func (p *PNG) FillText(pt chart.Point, text string, f chart.Font, align chart.Align, fill chart.Color) {
	face, err := fonts.Face(f.Family == chart.FamilyMono, f.Bold(), f.Size)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return
	}
	dc := p.context()
	dc.SetFontFace(face)
	dc.SetHexColor(string(fill))
	dc.DrawStringAnchored(text, pt.X, pt.Y, anchorX(align), 0)
}

// Image returns the rendered image.
func (p *PNG) Image() image.Image { return p.context().Image() }

// Encode writes the image as PNG. Font loading failures during drawing are
// reported here.
func (p *PNG) Encode(w io.Writer) error {
	if p.err != nil {
		return fmt.Errorf("draw text: %w", p.err)
	}
	return p.context().EncodePNG(w)
}

// Bytes returns the encoded PNG.
func (p *PNG) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// context lazily creates a blank canvas for surfaces that were never resized,
// which happens when there was nothing to draw.
func (p *PNG) context() *gg.Context {
	if p.dc == nil {
		p.Resize(max(1, p.container), chart.DefaultMetrics().Height)
	}
	return p.dc
}

func anchorX(a chart.Align) float64 {
	switch a {
	case chart.AlignRight:
		return 1
	case chart.AlignCenter:
		return 0.5
	default:
		return 0
	}
}

var _ chart.Surface = (*PNG)(nil)
