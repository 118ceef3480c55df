package layout

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the rendered width of text at a font size.
type Measurer interface {
	Width(text string, fontSize float64) float64
}

// FaceMeasurer measures text with a fixed font face, scaling its advances
// linearly to the requested size.
type FaceMeasurer struct {
	Face font.Face
}

// DefaultMeasurer measures with the 7x13 bitmap face.
func DefaultMeasurer() FaceMeasurer {
	return FaceMeasurer{Face: basicfont.Face7x13}
}

// Width implements [Measurer].
func (m FaceMeasurer) Width(text string, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	face := m.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	px := float64(font.MeasureString(face, text)) / 64
	h := float64(face.Metrics().Height) / 64
	if h <= 0 {
		return px
	}
	return px * fontSize / h
}

// Ellipsis terminates truncated labels.
const Ellipsis = "…"

// Truncate shortens label so it fits within maxWidth, appending an ellipsis
// when characters were dropped. At least one character is kept.
func Truncate(label string, maxWidth, fontSize float64, m Measurer) string {
	if m == nil {
		m = DefaultMeasurer()
	}
	if m.Width(label, fontSize) <= maxWidth {
		return label
	}
	runes := []rune(label)
	for n := len(runes) - 1; n > 1; n-- {
		s := strings.TrimRight(string(runes[:n]), " ") + Ellipsis
		if m.Width(s, fontSize) <= maxWidth {
			return s
		}
	}
	if utf8.RuneCountInString(label) == 0 {
		return label
	}
	return string(runes[:1]) + Ellipsis
}
