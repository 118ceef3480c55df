// Package sink renders chart scenes into output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG with the axis, labels and bars, plus a
//     hover stylesheet and a per-bar tooltip title.
//   - [RenderPNG]: raster image drawn natively with gg, or through
//     rsvg-convert with [WithRSVG].
//   - [RenderPDF]: SVG converted with rsvg-convert.
//   - [RenderJSON]: the scene itself, for round-trips and inspection.
//
// Every sink is a pure function of the scene; none of them reads chart
// state. Coordinates follow the scene: bars and labels are relative to their
// group anchors, which are relative to the top-left container margin.
package sink
