// Package scale maps data values to chart coordinates and colors.
//
// # Scales
//
// Four mappings position every bar:
//
//   - position ([Linear]): [-dataMax, dataMax] → [0, chartWidth]. Zero maps to
//     the horizontal center, which is the chart's zero axis.
//   - width ([Linear]): [0, dataMax] → [0, chartWidth/2]. Bars extend left or
//     right of the center by magnitude only.
//   - band ([Band]): ordered labels → contiguous padded bands over
//     [0, chartHeight] (inner padding 0.1, outer padding 0.05).
//   - fill ([Quantize]): [-dataMax, dataMax] → one of numColors palette buckets.
//
// [Set] bundles the four and exposes the per-bar attribute helpers
// [Set.BarX], [Set.BarWidth] and [Set.BarFill].
//
// # Degenerate and extreme domains
//
// A zero dataMax collapses every continuous domain to a point: positions
// resolve to the range midpoint and fills to the palette midpoint. Values are
// clamped to ±[MaxMagnitude] before entering any continuous scale so domain
// arithmetic never overflows to infinity.
package scale
