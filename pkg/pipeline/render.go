package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/chart/sink"
	"github.com/matzehuels/dashchart/pkg/errors"
)

// encoder is a surface that can serialize what was drawn on it.
type encoder interface {
	chart.Surface
	encode(ctx context.Context) ([]byte, error)
}

type svgEncoder struct{ *sink.SVG }

func (e svgEncoder) encode(context.Context) ([]byte, error) { return e.Bytes(), nil }

type pdfEncoder struct{ *sink.SVG }

func (e pdfEncoder) encode(ctx context.Context) ([]byte, error) { return sink.ToPDF(ctx, e.Bytes()) }

type pngEncoder struct{ *sink.PNG }

func (e pngEncoder) encode(context.Context) ([]byte, error) { return e.Bytes() }

type jsonEncoder struct{ *sink.JSON }

func (e jsonEncoder) encode(context.Context) ([]byte, error) { return e.Bytes() }

func newSurface(chartName, format string, opts Options) (encoder, error) {
	switch format {
	case FormatSVG:
		return svgEncoder{sink.NewSVG(opts.Width, sink.WithTitle(title(chartName)))}, nil
	case FormatPDF:
		return pdfEncoder{sink.NewSVG(opts.Width, sink.WithTitle(title(chartName)), sink.WithBackground(background(opts)))}, nil
	case FormatPNG:
		return pngEncoder{sink.NewPNG(opts.Width, sink.WithScale(opts.Scale))}, nil
	case FormatJSON:
		return jsonEncoder{sink.NewJSON(opts.Width)}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}

func title(chartName string) string {
	switch chartName {
	case ChartCategory:
		return "Rules by category"
	case ChartSeverity:
		return "Rules by severity"
	}
	return chartName
}

// background is the page color for print formats, which have no host page.
func background(opts Options) chart.Color {
	if opts.Theme != nil && opts.Theme.Background != "" {
		return opts.Theme.Background
	}
	return chart.ColorBackground
}

// draw runs the renderer for chartName on s and stores its geometry in d.
func draw(s chart.Surface, chartName string, snapshot chart.Stats, opts Options, d *chart.Dashboard) error {
	switch chartName {
	case ChartCategory:
		d.Categories = chart.RenderBars(s, snapshot.Categories, opts.ChartOptions()...)
	case ChartSeverity:
		d.Severities = chart.RenderDonut(s, snapshot.Severities, opts.ChartOptions()...)
	default:
		return errors.New(errors.ErrCodeInvalidChart, "unknown chart %q", chartName)
	}
	return nil
}

// RenderArtifact renders one chart in one format without touching a cache.
// opts must already be validated.
func RenderArtifact(ctx context.Context, snapshot chart.Stats, chartName, format string, opts Options) ([]byte, chart.Dashboard, error) {
	var d chart.Dashboard
	s, err := newSurface(chartName, format, opts)
	if err != nil {
		return nil, d, err
	}
	if err := draw(s, chartName, snapshot, opts, &d); err != nil {
		return nil, d, err
	}
	data, err := s.encode(ctx)
	if err != nil {
		return nil, d, fmt.Errorf("render %s: %w", ArtifactName(chartName, format), err)
	}
	return data, d, nil
}
