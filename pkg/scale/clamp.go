package scale

import "math"

// MaxMagnitude is the largest absolute value any continuous scale accepts.
// A symmetric domain [-MaxMagnitude, MaxMagnitude] has an extent of
// math.MaxFloat64/2, which leaves headroom for the subtraction performed
// when normalizing a value.
const MaxMagnitude = math.MaxFloat64 / 4

// ClampValue limits v to [-MaxMagnitude, MaxMagnitude]. Infinities clamp to
// the matching bound. NaN is returned unchanged; callers reject it earlier.
func ClampValue(v float64) float64 {
	switch {
	case v > MaxMagnitude:
		return MaxMagnitude
	case v < -MaxMagnitude:
		return -MaxMagnitude
	}
	return v
}

// ClampMagnitude limits a domain extremum to (0, MaxMagnitude]. Zero and
// negative inputs return 0, the degenerate domain.
func ClampMagnitude(m float64) float64 {
	if !(m > 0) {
		return 0
	}
	return math.Min(m, MaxMagnitude)
}
