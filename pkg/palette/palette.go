// Package palette builds the diverging color ramp used by the fill scale.
//
// Colors are accepted as hex strings ("#dc3912", "#abc") or CSS color names
// ("lightgrey"). [Interpolate] blends negative → midpoint → positive in RGB
// space and returns hex strings ready to place in SVG attributes.
package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/barchart/pkg/errors"
)

// Default palette.
const (
	DefaultNeg         = "#dc3912"
	DefaultMid         = "lightgrey"
	DefaultPos         = "#109618"
	DefaultNumColors   = 256
	PlaceholderFill    = "white"
	placeholderFillHex = "#ffffff"
)

// Parse converts a hex string or CSS color name into a color.
func Parse(s string) (colorful.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", s)
		}
		return c, nil
	}
	rgba, ok := colornames.Map[name]
	if !ok {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", s)
	}
	c, _ := colorful.MakeColor(rgba)
	return c, nil
}

// Interpolate returns n colors running from neg through mid to pos. Entries
// 0..n/2 blend neg into mid and n/2..n-1 blend mid into pos, so entry n/2 is
// exactly mid for every n other than 2, which has no middle and is [neg pos].
func Interpolate(neg, mid, pos string, n int) ([]string, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "number of colors must be positive, got %d", n)
	}
	cn, err := Parse(neg)
	if err != nil {
		return nil, err
	}
	cm, err := Parse(mid)
	if err != nil {
		return nil, err
	}
	cp, err := Parse(pos)
	if err != nil {
		return nil, err
	}

	switch n {
	case 1:
		return []string{cm.Hex()}, nil
	case 2:
		return []string{cn.Clamped().Hex(), cp.Clamped().Hex()}, nil
	}
	m := n / 2
	out := make([]string, n)
	for i := range out {
		var c colorful.Color
		if i < m {
			c = cn.BlendRgb(cm, float64(i)/float64(m))
		} else {
			c = cm.BlendRgb(cp, float64(i-m)/float64(n-1-m))
		}
		out[i] = c.Clamped().Hex()
	}
	return out, nil
}

// Blend mixes a and b at t in [0,1]. Unparseable inputs fall back to the
// placeholder fill so a tween never fails mid-animation.
func Blend(a, b string, t float64) string {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca, err := Parse(a)
	if err != nil {
		ca, _ = colorful.Hex(placeholderFillHex)
	}
	cb, err := Parse(b)
	if err != nil {
		cb, _ = colorful.Hex(placeholderFillHex)
	}
	return ca.BlendRgb(cb, t).Clamped().Hex()
}
