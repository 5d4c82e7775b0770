package chart

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a CSS hex color token such as "#64d9a5".
type Color string

// Palette is an ordered list of colors assigned to entries by position.
type Palette []Color

// Dashboard colors.
const (
	ColorGreen  Color = "#64d9a5" // first bar, low severity
	ColorBlue   Color = "#5b9cf5" // second bar, medium severity
	ColorAmber  Color = "#f5a623" // third bar, high severity
	ColorPurple Color = "#a78bfa" // fourth bar
	ColorRed    Color = "#f56565" // fifth bar, critical severity
	ColorMuted  Color = "#8b90a5" // sixth bar, info and unknown severities, category labels

	ColorTrack      Color = "#1e2235" // bar background
	ColorText       Color = "#e4e7ef" // counts, donut total, wedge labels on dark fills
	ColorBackground Color = "#161923" // card background and donut hole
	ColorInk        Color = "#0a0c10" // wedge labels on light fills
)

// DefaultPalette is the positional palette used by the bar chart.
var DefaultPalette = Palette{ColorGreen, ColorBlue, ColorAmber, ColorPurple, ColorRed, ColorMuted}

// At returns the color for position i, cycling when i exceeds the palette
// length. An empty palette yields [ColorMuted].
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return ColorMuted
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// ColorForIndex returns DefaultPalette[i mod len(DefaultPalette)].
func ColorForIndex(i int) Color { return DefaultPalette.At(i) }

// Severity is one of the five canonical rule severity levels.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Severities lists the levels in canonical order, most severe first. The
// donut chart draws wedges in this order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

// ParseSeverity normalizes s and reports whether it names a canonical level.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	switch sev {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return sev, true
	}
	return "", false
}

// SeverityColors is the fixed severity→color table. Colors do not depend on
// which severities happen to be present in a dataset.
var SeverityColors = map[Severity]Color{
	SeverityCritical: ColorRed,
	SeverityHigh:     ColorAmber,
	SeverityMedium:   ColorBlue,
	SeverityLow:      ColorGreen,
	SeverityInfo:     ColorMuted,
}

// ColorForSeverity returns the fixed color for level, or [ColorMuted] when
// level is not a canonical severity.
func ColorForSeverity(level string) Color {
	return DefaultTheme().SeverityColor(level)
}

var severityBadges = map[Severity]string{
	SeverityCritical: "red",
	SeverityHigh:     "amber",
	SeverityMedium:   "blue",
	SeverityLow:      "green",
	SeverityInfo:     "muted",
}

// BadgeForSeverity returns the badge class name used in listings
// ("red", "amber", "blue", "green" or "muted").
func BadgeForSeverity(level string) string {
	if sev, ok := ParseSeverity(level); ok {
		return severityBadges[sev]
	}
	return "muted"
}

// lightnessThreshold splits fills into light (dark text) and dark (light
// text) on the CIE L*a*b* lightness axis.
const lightnessThreshold = 0.55

// ContrastColor picks dark or light text for legibility on fill. Fills that
// cannot be parsed get dark text.
func ContrastColor(fill, dark, light Color) Color {
	c, err := colorful.Hex(string(fill))
	if err != nil {
		return dark
	}
	l, _, _ := c.Lab()
	if l >= lightnessThreshold {
		return dark
	}
	return light
}

// ValidColor reports whether c is a parseable hex color.
func ValidColor(c Color) bool {
	_, err := colorful.Hex(string(c))
	return err == nil
}
