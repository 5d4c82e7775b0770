// Package pkg provides the libraries behind dashchart, the rule statistics
// dashboard renderer.
//
// # Overview
//
// dashchart draws two charts from a rule statistics snapshot: a ranked bar
// chart of rules per category and a donut of rules per severity. The pkg
// directory is organized as:
//
//  1. [chart] - layout and drawing of both charts onto an abstract surface
//  2. [chart/sink] - SVG, PNG and JSON surfaces plus PDF conversion
//  3. [stats] - snapshot decoding and sources (file, MongoDB)
//  4. [pipeline] - orchestration (load → render → cache)
//  5. [cache] - artifact storage (file, Redis)
//  6. [server] - the HTTP service
//
// # Architecture
//
//	stats.json / MongoDB
//	         ↓
//	    [stats] package (normalize counts)
//	         ↓
//	    [chart] package (layout + draw commands)
//	         ↓
//	    [chart/sink] package (SVG/PNG/JSON/PDF)
//
// # Quick Start
//
//	s, err := stats.Load("stats.json")
//	if err != nil {
//	    return err
//	}
//	svg := sink.NewSVG(480)
//	chart.RenderBars(svg, s.Categories)
//	os.WriteFile("categories.svg", svg.Bytes(), 0o644)
//
// # Supporting Packages
//
//   - [errors]: structured errors with machine-readable codes
//   - [observability]: pluggable hooks for metrics and tracing
//   - [buildinfo]: version information injected at build time
//   - [fonts]: font faces for raster output
//   - [httputil]: HTTP response helpers
package pkg
