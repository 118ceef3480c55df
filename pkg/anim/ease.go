package anim

import (
	"github.com/matzehuels/barchart/pkg/palette"
	"github.com/matzehuels/barchart/pkg/scene"
)

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float64) float64

// EaseLinear returns t unchanged.
func EaseLinear(t float64) float64 { return t }

// EaseCubicInOut accelerates through the first half and decelerates
// through the second.
func EaseCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Interpolate blends two attribute sets at t.
func Interpolate(from, to scene.Attrs, t float64) scene.Attrs {
	if t >= 1 {
		return to
	}
	return scene.Attrs{
		X:       lerp(from.X, to.X, t),
		Y:       lerp(from.Y, to.Y, t),
		Width:   lerp(from.Width, to.Width, t),
		Height:  lerp(from.Height, to.Height, t),
		Opacity: lerp(from.Opacity, to.Opacity, t),
		Fill:    blendFill(from.Fill, to.Fill, t),
	}
}

func blendFill(a, b string, t float64) string {
	switch {
	case a == b:
		return b
	case a == "":
		return b
	case b == "":
		return a
	}
	return palette.Blend(a, b, t)
}
