// Package sink provides concrete chart surfaces.
//
// # Overview
//
// Each type here implements [chart.Surface] and turns the renderer's fill
// calls into an output format:
//
//   - [SVG]: scalable vector markup, written element by element
//   - [PNG]: raster image drawn with fogleman/gg and the embedded Go fonts
//   - [JSON]: the raw command list, for hosts that draw on their own canvas
//
// PDF is produced from SVG by [ToPDF], which shells out to rsvg-convert.
//
// # Usage
//
//	svg := sink.NewSVG(480, sink.WithTitle("Rules by category"))
//	chart.RenderBars(svg, stats.Categories)
//	os.WriteFile("categories.svg", svg.Bytes(), 0o644)
//
//	png := sink.NewPNG(480, sink.WithScale(2))
//	chart.RenderDonut(png, stats.Severities)
//	data, err := png.Bytes()
//
// A surface that received no calls (zero data) still produces a valid, blank
// document sized to its container width and the default chart height.
package sink
