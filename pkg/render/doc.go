// Package render provides output formats for chart scenes.
//
// # Overview
//
// A [scene.Scene] snapshot is rendered by the [sink] subpackage into SVG,
// PNG, PDF or JSON. This package holds the format conversion shared by the
// sinks.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). PNG output is normally rasterized natively by the sink;
// the rsvg path is available for pixel parity with the SVG.
//
//	svg := sink.RenderSVG(snapshot)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/barchart/pkg/render/sink
// [scene.Scene]: github.com/matzehuels/barchart/pkg/scene.Scene
package render
