// Package io provides JSON import and export for chart datasets.
//
// # JSON Format
//
// A dataset is an array of records:
//
//	[
//	  {"key": "ARGF_at", "value": -0.049},
//	  {"key": "YOAB_at", "value": -0.447}
//	]
//
// Required fields:
//   - key: text identity of the bar (numbers are accepted and converted)
//   - value: signed number
//
// Numbers are decoded without loss of precision, so an out-of-range value is
// reported by [dataset.Clean] rather than silently rounded by the decoder.
//
// [ReadJSON] returns the raw records; the chart cleans and validates them.
// [ReadRecords] cleans immediately and is what tools that do not build a
// chart should use.
//
// [dataset.Clean]: github.com/matzehuels/barchart/pkg/dataset.Clean
package io
