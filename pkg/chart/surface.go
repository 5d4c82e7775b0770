package chart

// Surface is a 2D drawing target provided by the host. Implementations own
// their pixel buffer; the renderers only issue fill calls and never read back.
type Surface interface {
	// ContainerWidth is the current width of the element hosting the surface.
	ContainerWidth() float64
	// Resize sets the drawing dimensions. Resizing discards prior content.
	Resize(width, height float64)
	// Clear erases the whole surface.
	Clear()
	FillRoundedRect(r Rect, radius float64, fill Color)
	// FillWedge fills a pie wedge from center between two angles in radians,
	// measured clockwise from 3 o'clock (screen coordinates, y down).
	FillWedge(center Point, radius, start, end float64, fill Color)
	FillCircle(center Point, radius float64, fill Color)
	// FillText draws text with its baseline at p, aligned horizontally.
	FillText(p Point, text string, font Font, align Align, fill Color)
}

// Point is a position in surface pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Align is the horizontal anchor of text relative to its point.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Family selects the typeface class.
type Family string

const (
	FamilySans Family = "sans"
	FamilyMono Family = "mono"
)

// Font describes the text face: size in pixels, CSS-style weight and family.
type Font struct {
	Size   float64 `json:"size"`
	Weight int     `json:"weight"`
	Family Family  `json:"family"`
}

// Bold reports whether the weight renders as a bold face.
func (f Font) Bold() bool { return f.Weight >= 600 }

// Op names a surface primitive.
type Op string

const (
	OpResize    Op = "resize"
	OpClear     Op = "clear"
	OpRoundRect Op = "round_rect"
	OpWedge     Op = "wedge"
	OpCircle    Op = "circle"
	OpText      Op = "text"
)

// Command is one surface call in serializable form. Only the fields used by
// Op are set; Center doubles as the text anchor for OpText.
type Command struct {
	Op     Op      `json:"op"`
	Rect   Rect    `json:"rect,omitzero"`
	Center Point   `json:"center,omitzero"`
	Radius float64 `json:"radius,omitempty"`
	Start  float64 `json:"start,omitempty"`
	End    float64 `json:"end,omitempty"`
	Text   string  `json:"text,omitempty"`
	Font   Font    `json:"font,omitzero"`
	Align  Align   `json:"align,omitempty"`
	Fill   Color   `json:"fill,omitempty"`
}

// IsDraw reports whether c paints pixels (as opposed to sizing or clearing).
func (c Command) IsDraw() bool {
	switch c.Op {
	case OpRoundRect, OpWedge, OpCircle, OpText:
		return true
	}
	return false
}

// Apply replays cmds against s in order. A nil surface is ignored.
func Apply(s Surface, cmds []Command) {
	if s == nil {
		return
	}
	for _, c := range cmds {
		switch c.Op {
		case OpResize:
			s.Resize(c.Rect.W, c.Rect.H)
		case OpClear:
			s.Clear()
		case OpRoundRect:
			s.FillRoundedRect(c.Rect, c.Radius, c.Fill)
		case OpWedge:
			s.FillWedge(c.Center, c.Radius, c.Start, c.End, c.Fill)
		case OpCircle:
			s.FillCircle(c.Center, c.Radius, c.Fill)
		case OpText:
			s.FillText(c.Center, c.Text, c.Font, c.Align, c.Fill)
		}
	}
}

// Recorder is an in-memory Surface that records every call. It is useful in
// tests and as the backing store of command-list exports.
type Recorder struct {
	Width    float64
	Height   float64
	Commands []Command

	container float64
}

// NewRecorder returns a recorder hosted in a container of the given width.
func NewRecorder(containerWidth float64) *Recorder {
	return &Recorder{container: containerWidth}
}

func (r *Recorder) ContainerWidth() float64 { return r.container }

// SetContainerWidth simulates the host container being resized.
func (r *Recorder) SetContainerWidth(w float64) { r.container = w }

func (r *Recorder) Resize(width, height float64) {
	r.Width, r.Height = width, height
	r.Commands = append(r.Commands, Command{Op: OpResize, Rect: Rect{W: width, H: height}})
}

func (r *Recorder) Clear() {
	r.Commands = append(r.Commands, Command{Op: OpClear})
}

func (r *Recorder) FillRoundedRect(rect Rect, radius float64, fill Color) {
	r.Commands = append(r.Commands, Command{Op: OpRoundRect, Rect: rect, Radius: radius, Fill: fill})
}

func (r *Recorder) FillWedge(center Point, radius, start, end float64, fill Color) {
	r.Commands = append(r.Commands, Command{Op: OpWedge, Center: center, Radius: radius, Start: start, End: end, Fill: fill})
}

func (r *Recorder) FillCircle(center Point, radius float64, fill Color) {
	r.Commands = append(r.Commands, Command{Op: OpCircle, Center: center, Radius: radius, Fill: fill})
}

func (r *Recorder) FillText(p Point, text string, font Font, align Align, fill Color) {
	r.Commands = append(r.Commands, Command{Op: OpText, Center: p, Text: text, Font: font, Align: align, Fill: fill})
}

// Draws returns the recorded commands that paint pixels.
func (r *Recorder) Draws() []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.IsDraw() {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.Commands = nil
	r.Width, r.Height = 0, 0
}

var _ Surface = (*Recorder)(nil)
