package chart

import (
	"fmt"
	"math"
	"testing"
)

func threats() Dataset {
	return Dataset{
		{Label: "malware", Value: 12},
		{Label: "trojan", Value: 5},
		{Label: "ransomware", Value: 3},
	}
}

func TestRenderBarsScenario(t *testing.T) {
	s := NewRecorder(400)
	c := RenderBars(s, threats())

	if len(c.Bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(c.Bars))
	}
	m := DefaultMetrics()
	if want := m.Padding + 3*(m.BarHeight+m.BarGap); c.ContentHeight != want {
		t.Errorf("ContentHeight = %v, want %v", c.ContentHeight, want)
	}
	if c.Usable != 240 {
		t.Errorf("Usable = %v, want 240", c.Usable)
	}

	wantWidths := []float64{144, 60, 36}
	for i, b := range c.Bars {
		if b.Fill.W != wantWidths[i] {
			t.Errorf("bar %d width = %v, want %v", i, b.Fill.W, wantWidths[i])
		}
		if b.Color != ColorForIndex(i) {
			t.Errorf("bar %d color = %s, want %s", i, b.Color, ColorForIndex(i))
		}
	}

	if s.Width != 400 || s.Height != 220 {
		t.Errorf("surface = %vx%v, want 400x220", s.Width, s.Height)
	}

	var labels []string
	for _, cmd := range s.Draws() {
		if cmd.Op == OpText && cmd.Align == AlignRight {
			labels = append(labels, cmd.Text)
		}
	}
	if fmt.Sprint(labels) != "[malware trojan ransomware]" {
		t.Errorf("labels = %v", labels)
	}
}

func TestRenderBarsZeroTotal(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
	}{
		{"nil", nil},
		{"empty", Dataset{}},
		{"all zero", Dataset{{Label: "a", Value: 0}, {Label: "b", Value: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRecorder(400)
			c := RenderBars(s, tt.ds)
			if !c.Empty() {
				t.Errorf("expected empty layout, got %d bars", len(c.Bars))
			}
			if len(s.Commands) != 0 {
				t.Errorf("expected no surface calls, got %d", len(s.Commands))
			}
		})
	}
}

func TestRenderBarsNilSurface(t *testing.T) {
	c := RenderBars(nil, threats())
	if !c.Empty() {
		t.Error("nil surface should produce an empty layout")
	}
}

func TestRenderBarsTruncatesToSix(t *testing.T) {
	var ds Dataset
	for i := 0; i < 9; i++ {
		ds = append(ds, Entry{Label: fmt.Sprintf("cat%d", i), Value: i + 1})
	}

	s := NewRecorder(600)
	c := RenderBars(s, ds)

	if len(c.Bars) != 6 {
		t.Fatalf("got %d bars, want 6", len(c.Bars))
	}
	for i, b := range c.Bars {
		if b.Label != ds[i].Label {
			t.Errorf("bar %d = %s, want %s", i, b.Label, ds[i].Label)
		}
	}
	m := DefaultMetrics()
	if want := m.Padding + 6*m.Row(); c.ContentHeight != want {
		t.Errorf("ContentHeight = %v, want %v", c.ContentHeight, want)
	}

	fills := 0
	for _, cmd := range s.Draws() {
		if cmd.Op == OpRoundRect && cmd.Fill != ColorTrack {
			fills++
		}
	}
	if fills != 6 {
		t.Errorf("drew %d fills, want 6", fills)
	}
}

func TestRenderBarsProportional(t *testing.T) {
	ds := Dataset{{Label: "a", Value: 40}, {Label: "b", Value: 20}, {Label: "c", Value: 10}}
	c := LayoutBars(ds, 1000, DefaultMetrics(), DefaultTheme())

	for i := range c.Bars {
		for j := range c.Bars {
			want := float64(ds[i].Value) / float64(ds[j].Value)
			got := c.Bars[i].Fill.W / c.Bars[j].Fill.W
			if math.Abs(got-want) > 0.05 {
				t.Errorf("width ratio %d/%d = %.3f, want %.3f", i, j, got, want)
			}
		}
	}
}

func TestRenderBarsMinimumWidth(t *testing.T) {
	ds := Dataset{{Label: "huge", Value: 10000}, {Label: "tiny", Value: 1}, {Label: "none", Value: 0}}
	c := LayoutBars(ds, 400, DefaultMetrics(), DefaultTheme())

	if got := c.Bars[1].Fill.W; got != DefaultMetrics().MinBarWidth {
		t.Errorf("tiny bar width = %v, want floor %v", got, DefaultMetrics().MinBarWidth)
	}
	if got := c.Bars[2].Fill.W; got != 0 {
		t.Errorf("zero bar width = %v, want 0", got)
	}
	if got := c.Bars[0].Fill.W; got > c.Usable {
		t.Errorf("bar width %v exceeds usable %v", got, c.Usable)
	}
}

func TestBarWidthNeverExceedsUsable(t *testing.T) {
	tests := []struct {
		name                      string
		value, total              int
		usable, minWidth, wantMax float64
	}{
		{"whole share", 5, 5, 240, 4, 240},
		{"narrow container", 1, 100, 2, 4, 2},
		{"no room", 3, 3, 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barWidth(tt.value, tt.total, tt.usable, tt.minWidth); got > tt.wantMax {
				t.Errorf("barWidth() = %v, want <= %v", got, tt.wantMax)
			}
		})
	}
}

func TestRenderBarsFollowsContainerWidth(t *testing.T) {
	s := NewRecorder(400)
	narrow := RenderBars(s, threats())

	s.SetContainerWidth(800)
	s.Reset()
	wide := RenderBars(s, threats())

	if s.Width != 800 {
		t.Errorf("surface width = %v, want 800", s.Width)
	}
	if wide.Bars[0].Fill.W <= narrow.Bars[0].Fill.W {
		t.Errorf("wider container should give wider bars: %v <= %v", wide.Bars[0].Fill.W, narrow.Bars[0].Fill.W)
	}
}

func TestRenderBarsIdempotent(t *testing.T) {
	a := NewRecorder(500)
	b := NewRecorder(500)
	RenderBars(a, threats())
	RenderBars(b, threats())
	RenderBars(b, threats())

	// the second pass re-issues the same sequence after its own resize+clear
	second := b.Commands[len(a.Commands):]
	if fmt.Sprint(second) != fmt.Sprint(a.Commands) {
		t.Error("repeated render produced different commands")
	}
}

func TestRenderBarsWithMetrics(t *testing.T) {
	m := Metrics{MaxBars: 2, LabelWidth: 80}
	c := RenderBars(NewRecorder(400), threats(), WithMetrics(m))
	if len(c.Bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(c.Bars))
	}
	if c.Bars[0].Track.X != 80 {
		t.Errorf("track x = %v, want 80", c.Bars[0].Track.X)
	}
	if c.Height != DefaultMetrics().Height {
		t.Errorf("height = %v, want default %v", c.Height, DefaultMetrics().Height)
	}
}
