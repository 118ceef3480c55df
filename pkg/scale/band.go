package scale

import "math"

// Band paddings of the chart.
const (
	DefaultPaddingInner = 0.1
	DefaultPaddingOuter = 0.05
	DefaultAlign        = 0.5
)

// Band maps an ordered label set onto contiguous, padded bands.
type Band struct {
	domain []string
	index  map[string]int
	r0, r1 float64

	paddingInner, paddingOuter, align float64

	start, step, bandwidth float64
}

// NewBand returns a band scale with the chart's default paddings.
func NewBand(labels []string, r0, r1 float64) Band {
	b := Band{
		paddingInner: DefaultPaddingInner,
		paddingOuter: DefaultPaddingOuter,
		align:        DefaultAlign,
		r0:           r0,
		r1:           r1,
	}
	return b.WithDomain(labels)
}

// WithDomain returns a copy of b over labels. Order matters: labels[0] gets
// the first band.
func (b Band) WithDomain(labels []string) Band {
	b.domain = append([]string(nil), labels...)
	b.index = make(map[string]int, len(labels))
	for i, l := range labels {
		if _, ok := b.index[l]; !ok {
			b.index[l] = i
		}
	}
	b.rescale()
	return b
}

// WithRange returns a copy of b over [r0, r1].
func (b Band) WithRange(r0, r1 float64) Band {
	b.r0, b.r1 = r0, r1
	b.domain = append([]string(nil), b.domain...)
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.domain))
	lo, hi := b.r0, b.r1
	reverse := hi < lo
	if reverse {
		lo, hi = hi, lo
	}
	b.step = (hi - lo) / math.Max(1, n-b.paddingInner+b.paddingOuter*2)
	b.start = lo + (hi-lo-b.step*(n-b.paddingInner))*b.align
	b.bandwidth = b.step * (1 - b.paddingInner)
	if reverse {
		b.start = hi - (b.start - lo) - b.bandwidth
		b.step = -b.step
	}
}

// Position returns the start coordinate of label's band.
func (b Band) Position(label string) (float64, bool) {
	i, ok := b.index[label]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Bandwidth returns the width of every band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b Band) Step() float64 { return math.Abs(b.step) }

// Domain returns a copy of the label order.
func (b Band) Domain() []string { return append([]string(nil), b.domain...) }

// Range returns the output interval.
func (b Band) Range() (float64, float64) { return b.r0, b.r1 }
