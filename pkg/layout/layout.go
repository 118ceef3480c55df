package layout

import (
	"math"

	"github.com/matzehuels/barchart/pkg/errors"
)

// Fixed dimensions of the chart.
const (
	DefaultHeight  = 400.0
	DefaultWidth   = 800.0
	AxisOffset     = 5.0
	FontSize       = 10.0
	Padding        = 10.0
	LabelFraction  = 0.1
	DefaultMargins = 10.0

	// MinExtent is the smallest chart width or height ever produced; tiny
	// containers clamp to it instead of yielding negative scale ranges.
	MinExtent = 1.0
)

// Strategy selects how the label column width is determined.
type Strategy string

const (
	StrategyMeasured Strategy = "measured"
	StrategyFraction Strategy = "fraction"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool { return s == StrategyMeasured || s == StrategyFraction }

// Margins is the space reserved around the drawing area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DefaultContainerMargins returns 10 on every side.
func DefaultContainerMargins() Margins {
	return Margins{Top: DefaultMargins, Right: DefaultMargins, Bottom: DefaultMargins, Left: DefaultMargins}
}

// Horizontal returns Left + Right.
func (m Margins) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns Top + Bottom.
func (m Margins) Vertical() float64 { return m.Top + m.Bottom }

// Container is the outer box the chart is drawn into.
type Container struct {
	Width   float64
	Height  float64
	Margins Margins
}

// NewContainer validates the requested size and returns a container with the
// default margins. A zero height selects [DefaultHeight].
func NewContainer(width, height float64) (Container, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return Container{}, err
	}
	if height == 0 {
		height = DefaultHeight
	}
	return Container{Width: width, Height: height, Margins: DefaultContainerMargins()}, nil
}

// SVGWidth returns the drawing width inside the margins.
func (c Container) SVGWidth() float64 { return math.Max(MinExtent, c.Width-c.Margins.Horizontal()) }

// SVGHeight returns the drawing height inside the margins.
func (c Container) SVGHeight() float64 { return math.Max(MinExtent, c.Height-c.Margins.Vertical()) }

// Point is an anchor offset relative to the drawing origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options controls margin computation.
type Options struct {
	Strategy Strategy
	FontSize float64
	Measurer Measurer // nil selects the default face measurer
}

// DefaultOptions returns measured labels at the chart font size.
func DefaultOptions() Options {
	return Options{Strategy: StrategyMeasured, FontSize: FontSize}
}

// Layout holds the derived margins and anchors.
type Layout struct {
	SVGWidth  float64 `json:"svg_width"`
	SVGHeight float64 `json:"svg_height"`

	MarginLabelX float64 `json:"margin_label_x"`
	MarginLabelY float64 `json:"margin_label_y"`
	MarginChartX float64 `json:"margin_chart_x"`
	MarginChartY float64 `json:"margin_chart_y"`

	Bars   Point `json:"bars"`
	Labels Point `json:"labels"`
	Axis   Point `json:"axis"`

	// AxisTickSize is the signed tick length; ticks grow downward across
	// the whole bar area.
	AxisTickSize float64 `json:"axis_tick_size"`
	// LabelWidth is the room available to a label's text.
	LabelWidth float64 `json:"label_width"`
	FontSize   float64 `json:"font_size"`
}

// Compute derives the layout of the container for the given labels.
func Compute(c Container, labels []string, opts Options) Layout {
	if opts.FontSize <= 0 {
		opts.FontSize = FontSize
	}
	if opts.Measurer == nil {
		opts.Measurer = DefaultMeasurer()
	}
	if !opts.Strategy.Valid() {
		opts.Strategy = StrategyMeasured
	}

	w, h := c.SVGWidth(), c.SVGHeight()
	l := Layout{SVGWidth: w, SVGHeight: h, FontSize: opts.FontSize}

	switch opts.Strategy {
	case StrategyFraction:
		l.MarginLabelX = math.Ceil(LabelFraction * w)
	default:
		l.MarginLabelX = math.Ceil(widest(labels, opts)) + AxisOffset
	}
	l.MarginLabelX = math.Min(l.MarginLabelX, math.Floor(w/2))
	l.MarginLabelY = opts.FontSize
	l.MarginChartX = math.Max(MinExtent, w-l.MarginLabelX-AxisOffset-Padding)
	l.MarginChartY = math.Max(MinExtent, h-l.MarginLabelY-AxisOffset)

	l.Bars = Point{X: l.MarginLabelX + AxisOffset, Y: l.MarginLabelY + AxisOffset}
	l.Labels = Point{X: l.MarginLabelX, Y: l.MarginLabelY + AxisOffset}
	l.Axis = Point{X: l.MarginLabelX + AxisOffset, Y: l.MarginLabelY}
	l.AxisTickSize = -l.MarginChartY - AxisOffset
	l.LabelWidth = math.Max(0, l.MarginLabelX-AxisOffset)
	return l
}

func widest(labels []string, opts Options) float64 {
	var m float64
	for _, s := range labels {
		m = math.Max(m, opts.Measurer.Width(s, opts.FontSize))
	}
	return m
}
