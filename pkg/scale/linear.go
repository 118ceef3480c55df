package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Linear is a continuous linear mapping from a domain to a range.
type Linear struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
}

// NewLinear returns a linear scale with the given domain and range.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Degenerate reports whether the domain is a single point.
func (l Linear) Degenerate() bool { return l.D0 == l.D1 }

// Normalize maps v into [0,1] over the domain, clamping values outside it.
// A degenerate domain normalizes everything to 0.5.
func (l Linear) Normalize(v float64) float64 {
	if l.Degenerate() {
		return 0.5
	}
	lo, hi := math.Min(l.D0, l.D1), math.Max(l.D0, l.D1)
	v = math.Max(lo, math.Min(hi, ClampValue(v)))
	t := scale.Linear{Min: l.D0, Max: l.D1}.Map(v)
	return math.Max(0, math.Min(1, t))
}

// Map returns the range coordinate of v.
func (l Linear) Map(v float64) float64 {
	return l.R0 + l.Normalize(v)*(l.R1-l.R0)
}

// Tick is one axis tick.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Ticks returns at most n evenly spaced ticks over the domain, labelled
// with one significant digit. A degenerate domain yields one tick.
func (l Linear) Ticks(n int) []Tick {
	if l.Degenerate() || n < 1 {
		return []Tick{{Value: l.D0, Pos: l.Map(l.D0), Label: tickLabel(l.D0)}}
	}
	lo, hi := math.Min(l.D0, l.D1), math.Max(l.D0, l.D1)
	major, _ := scale.Linear{Min: lo, Max: hi}.Ticks(scale.TickOptions{Max: n})
	ticks := make([]Tick, 0, len(major))
	for _, v := range major {
		if v < lo || v > hi {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Pos: l.Map(v), Label: tickLabel(v)})
	}
	return ticks
}

func tickLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	return formatG(v, 1)
}
