// Package pipeline turns a stats snapshot into rendered chart artifacts.
//
// This package is the single place where CLI and HTTP service pick a surface
// for a format, run the chart renderers and consult the artifact cache, so
// both entry points produce byte-identical output for the same input.
//
// # Artifacts
//
// An artifact is one chart in one format, named "<chart>.<format>":
//
//   - charts: "category" (ranked bars), "severity" (donut)
//   - formats: "svg", "png", "json" (command list), "pdf" (needs rsvg-convert)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, snapshot, pipeline.Options{
//	    Charts:  []string{"category", "severity"},
//	    Formats: []string{"svg", "png"},
//	    Width:   480,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["category.svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashchart/pkg/cache"
	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

const (
	// DefaultWidth is the container width used when none is given. It matches
	// a dashboard card on a typical laptop screen.
	DefaultWidth = 480.0

	// DefaultScale is the PNG pixel ratio.
	DefaultScale = 2.0

	// ArtifactTTL is how long rendered charts stay cached. Keys include the
	// stats hash, so a changed snapshot never reads a stale chart.
	ArtifactTTL = 24 * time.Hour
)

// Chart names.
const (
	ChartCategory = "category"
	ChartSeverity = "severity"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidCharts lists the supported charts in display order.
var ValidCharts = []string{ChartCategory, ChartSeverity}

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatJSON, FormatPDF}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// ArtifactName joins a chart and format into the artifact name.
func ArtifactName(chartName, format string) string {
	return chartName + "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Charts  []string      `json:"charts,omitempty"`
	Formats []string      `json:"formats,omitempty"`
	Width   float64       `json:"width,omitempty"`
	Scale   float64       `json:"scale,omitempty"` // PNG only
	Metrics chart.Metrics `json:"metrics,omitzero"`
	Theme   *chart.Theme  `json:"theme,omitempty"`
	// Refresh bypasses cached artifacts (new renders are still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// StatsHash is the content hash of the rendered snapshot.
	StatsHash string

	// Artifacts maps "<chart>.<format>" to the rendered bytes.
	Artifacts map[string][]byte

	// Dashboard is the computed geometry. It is zero when every artifact
	// came from the cache.
	Dashboard chart.Dashboard

	// RenderTime is the wall time of the run.
	RenderTime time.Duration

	// CacheInfo tracks cache usage.
	CacheInfo CacheInfo
}

// CacheInfo tracks cache hits for one run.
type CacheInfo struct {
	Hits   int
	Misses int
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return c.Misses == 0 && c.Hits > 0 }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateChart checks that a chart name is valid.
func ValidateChart(name string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidChart, "chart", name, ValidCharts)
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidFormat, "format", format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that every color in t parses.
func ValidateTheme(t *chart.Theme) error {
	if t == nil {
		return nil
	}
	for _, c := range t.Colors() {
		if !chart.ValidColor(c) {
			return errors.New(errors.ErrCodeInvalidColor, "invalid theme color %q", c)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Charts) == 0 {
		o.Charts = append([]string(nil), ValidCharts...)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	for _, c := range o.Charts {
		if err := ValidateChart(c); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ChartOptions converts the options into renderer options.
func (o *Options) ChartOptions() []chart.Option {
	opts := []chart.Option{chart.WithMetrics(o.Metrics)}
	if o.Theme != nil {
		opts = append(opts, chart.WithTheme(*o.Theme))
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(chartName, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Chart:  chartName,
		Format: format,
		Width:  o.Width,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if o.Theme != nil || o.Metrics != (chart.Metrics{}) {
		k.ThemeHash = cache.HashJSON(struct {
			Theme   *chart.Theme
			Metrics chart.Metrics
		}{o.Theme, o.Metrics})
	}
	return k
}
