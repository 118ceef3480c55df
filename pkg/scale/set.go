package scale

import "math"

// Set holds the four mappings used to position and color bars.
type Set struct {
	Position Linear
	Width    Linear
	Band     Band
	Fill     Quantize
}

// NewSet returns a Set with empty domains and ranges.
func NewSet() *Set {
	return &Set{Band: NewBand(nil, 0, 0)}
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	c := *s
	c.Band = s.Band.WithRange(s.Band.r0, s.Band.r1)
	c.Fill.Colors = append([]string(nil), s.Fill.Colors...)
	return &c
}

// SetHorizontalDomains sets position to [-m, m] and width to [0, m].
func (s *Set) SetHorizontalDomains(dataMax float64) {
	m := ClampMagnitude(dataMax)
	s.Position.D0, s.Position.D1 = -m, m
	s.Width.D0, s.Width.D1 = 0, m
}

// SetVerticalDomain sets the band order.
func (s *Set) SetVerticalDomain(labels []string) {
	s.Band = s.Band.WithDomain(labels)
}

// SetFillDomain sets the fill domain to [-m, m].
func (s *Set) SetFillDomain(dataMax float64) {
	m := ClampMagnitude(dataMax)
	s.Fill.Domain.D0, s.Fill.Domain.D1 = -m, m
}

// SetDomains updates every domain.
func (s *Set) SetDomains(dataMax float64, labels []string) {
	s.SetHorizontalDomains(dataMax)
	s.SetVerticalDomain(labels)
	s.SetFillDomain(dataMax)
}

// SetHorizontalRanges sets position to [0, w] and width to [0, w/2].
func (s *Set) SetHorizontalRanges(chartWidth float64) {
	s.Position.R0, s.Position.R1 = 0, chartWidth
	s.Width.R0, s.Width.R1 = 0, chartWidth/2
}

// SetPositionalRanges sets the horizontal ranges and the band range [0, h].
func (s *Set) SetPositionalRanges(chartWidth, chartHeight float64) {
	s.SetHorizontalRanges(chartWidth)
	s.Band = s.Band.WithRange(0, chartHeight)
}

// SetFillRange replaces the palette.
func (s *Set) SetFillRange(colors []string) {
	s.Fill.Colors = append([]string(nil), colors...)
}

// Zero returns the x coordinate of the zero axis.
func (s *Set) Zero() float64 { return s.Position.Map(0) }

// BarX returns the left edge of the bar for v. Negative bars end at the zero
// axis; non-negative bars start one unit right of it so they never cover
// the center tick.
func (s *Set) BarX(v float64) float64 {
	if v < 0 {
		return s.Zero() - s.BarWidth(v)
	}
	return s.Zero() + 1
}

// BarWidth returns the length of the bar for v. A degenerate width domain
// collapses every bar to zero length.
func (s *Set) BarWidth(v float64) float64 {
	if s.Width.Degenerate() {
		return s.Width.R0
	}
	return s.Width.Map(math.Abs(ClampValue(v)))
}

// BarY returns the top of key's band, or the bottom of the band range when
// key is not in the domain.
func (s *Set) BarY(key string) float64 {
	if y, ok := s.Band.Position(key); ok {
		return y
	}
	_, r1 := s.Band.Range()
	return r1
}

// BarFill returns the palette color for v.
func (s *Set) BarFill(v float64) string { return s.Fill.Map(ClampValue(v)) }

// Ticks returns axis ticks over the position domain.
func (s *Set) Ticks(n int) []Tick { return s.Position.Ticks(n) }
