// Package chart lays out and draws dashboard statistics charts.
//
// # Overview
//
// Two renderers share a small set of layout primitives:
//
//   - [RenderBars]: a ranked horizontal bar chart for label→count data
//   - [RenderDonut]: a single-ring donut chart for severity counts
//
// Neither renderer uses a charting library. Each one computes its geometry
// first ([LayoutBars], [LayoutDonut]), turns the geometry into a list of
// [Command] values, and replays the commands against a [Surface]. The split
// lets tests assert on geometry without a real drawing target.
//
// # Surfaces
//
// A [Surface] is owned by the host. It reports the width of its container,
// accepts a resize, and offers a handful of fill primitives (rounded
// rectangles, wedges, circles and aligned text). The core never reads pixels
// back. Concrete surfaces live in the [sink] subpackage (SVG, PNG, JSON); the
// in-memory [Recorder] captures commands for inspection.
//
// # Degenerate input
//
// The renderers never fail. An empty dataset, a zero total, a nil surface or
// a container too small to hold a ring produce no drawing calls at all.
// Severity labels outside the canonical five are left out of the donut and
// its total; [ColorForSeverity] maps them to the muted color.
//
// # Usage
//
//	ds := chart.Dataset{{Label: "malware", Value: 12}, {Label: "trojan", Value: 5}}
//	svg := sink.NewSVG(400)
//	chart.RenderBars(svg, ds)
//	os.WriteFile("categories.svg", svg.Bytes(), 0o644)
//
// [sink]: github.com/matzehuels/dashchart/pkg/chart/sink
package chart
