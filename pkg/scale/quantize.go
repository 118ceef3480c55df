package scale

import "math"

// Quantize maps a continuous domain onto a fixed number of discrete buckets.
type Quantize struct {
	Domain Linear
	Colors []string
}

// NewQuantize returns a quantize scale over [d0, d1] with one bucket per color.
func NewQuantize(d0, d1 float64, colors []string) Quantize {
	return Quantize{
		Domain: Linear{D0: d0, D1: d1, R0: 0, R1: 1},
		Colors: append([]string(nil), colors...),
	}
}

// Index returns the bucket of v. A degenerate domain resolves to the middle
// bucket, the one value 0 falls into over a symmetric domain.
func (q Quantize) Index(v float64) int {
	n := len(q.Colors)
	if n == 0 {
		return -1
	}
	if q.Domain.Degenerate() {
		return n / 2
	}
	i := int(math.Floor(q.Domain.Normalize(v) * float64(n)))
	return max(0, min(n-1, i))
}

// Map returns the color of v, or "" when the palette is empty.
func (q Quantize) Map(v float64) string {
	i := q.Index(v)
	if i < 0 {
		return ""
	}
	return q.Colors[i]
}
