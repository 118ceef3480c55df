package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/barchart/pkg/errors"
)

// fixedMeasurer reports 6 units per rune at every font size.
type fixedMeasurer struct{}

func (fixedMeasurer) Width(s string, _ float64) float64 { return 6 * float64(len([]rune(s))) }

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(800, 0)
	if err != nil {
		t.Fatalf("NewContainer() error: %v", err)
	}
	if c.Height != DefaultHeight {
		t.Errorf("Height = %v, want %v", c.Height, DefaultHeight)
	}
	if c.SVGWidth() != 780 || c.SVGHeight() != 380 {
		t.Errorf("SVG size = %vx%v, want 780x380", c.SVGWidth(), c.SVGHeight())
	}

	for _, size := range [][2]float64{{0, 400}, {-5, 400}, {800, -1}, {math.NaN(), 1}} {
		if _, err := NewContainer(size[0], size[1]); !errors.Is(err, errors.ErrCodeInvalidSize) {
			t.Errorf("NewContainer(%v) error = %v, want %v", size, err, errors.ErrCodeInvalidSize)
		}
	}
}

func TestComputeMeasured(t *testing.T) {
	c, _ := NewContainer(800, 400)
	l := Compute(c, []string{"ab", "abcdefghij", "abc"}, Options{Strategy: StrategyMeasured, Measurer: fixedMeasurer{}})

	if l.MarginLabelX != 65 {
		t.Errorf("MarginLabelX = %v, want 65", l.MarginLabelX)
	}
	if l.MarginLabelY != FontSize {
		t.Errorf("MarginLabelY = %v, want %v", l.MarginLabelY, FontSize)
	}
	if l.MarginChartX != 780-65-AxisOffset-Padding {
		t.Errorf("MarginChartX = %v", l.MarginChartX)
	}
	if l.MarginChartY != 380-FontSize-AxisOffset {
		t.Errorf("MarginChartY = %v", l.MarginChartY)
	}
	if l.LabelWidth != 60 {
		t.Errorf("LabelWidth = %v, want 60", l.LabelWidth)
	}
}

func TestComputeAnchors(t *testing.T) {
	c, _ := NewContainer(500, 300)
	l := Compute(c, nil, Options{Strategy: StrategyFraction})

	if l.MarginLabelX != math.Ceil(0.1*480) {
		t.Fatalf("MarginLabelX = %v, want %v", l.MarginLabelX, math.Ceil(0.1*480))
	}
	tests := []struct {
		name string
		got  Point
		want Point
	}{
		{"bars", l.Bars, Point{l.MarginLabelX + AxisOffset, l.MarginLabelY + AxisOffset}},
		{"labels", l.Labels, Point{l.MarginLabelX, l.MarginLabelY + AxisOffset}},
		{"axis", l.Axis, Point{l.MarginLabelX + AxisOffset, l.MarginLabelY}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("anchor = %v, want %v", tt.got, tt.want)
			}
		})
	}
	if l.AxisTickSize != -l.MarginChartY-AxisOffset {
		t.Errorf("AxisTickSize = %v", l.AxisTickSize)
	}
}

func TestComputeLabelsChangeMargin(t *testing.T) {
	c, _ := NewContainer(800, 400)
	short := Compute(c, []string{"a"}, DefaultOptions())
	long := Compute(c, []string{"a much longer label"}, DefaultOptions())

	if long.MarginLabelX <= short.MarginLabelX {
		t.Errorf("MarginLabelX long=%v short=%v, want long > short", long.MarginLabelX, short.MarginLabelX)
	}
	if long.MarginChartX >= short.MarginChartX {
		t.Errorf("MarginChartX long=%v short=%v, want long < short", long.MarginChartX, short.MarginChartX)
	}
}

func TestComputeTinyContainerClamps(t *testing.T) {
	c, _ := NewContainer(12, 12)
	l := Compute(c, []string{"a label far wider than the container"}, DefaultOptions())

	if l.MarginChartX < MinExtent || l.MarginChartY < MinExtent {
		t.Errorf("chart extent = %vx%v, want >= %v", l.MarginChartX, l.MarginChartY, MinExtent)
	}
	if l.MarginLabelX > l.SVGWidth/2 {
		t.Errorf("MarginLabelX = %v exceeds half of %v", l.MarginLabelX, l.SVGWidth)
	}
}

func TestFaceMeasurer(t *testing.T) {
	m := DefaultMeasurer()
	if got := m.Width("", FontSize); got != 0 {
		t.Errorf("Width(\"\") = %v, want 0", got)
	}
	// The 7x13 face has a 7px advance at a 13px height.
	if got, want := m.Width("abcd", 13), 28.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Width(abcd, 13) = %v, want %v", got, want)
	}
	if a, b := m.Width("ab", 10), m.Width("ab", 20); math.Abs(b-2*a) > 1e-9 {
		t.Errorf("Width does not scale with font size: %v vs %v", a, b)
	}
}

func TestTruncate(t *testing.T) {
	m := fixedMeasurer{}
	tests := []struct {
		name  string
		label string
		max   float64
		want  string
	}{
		{"fits", "abc", 18, "abc"},
		{"truncated", "abcdefgh", 30, "abcd…"},
		{"trailing space trimmed", "ab cdefgh", 24, "ab…"},
		{"keeps one rune", "abcdefgh", 1, "a…"},
		{"empty", "", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.label, tt.max, FontSize, m); got != tt.want {
				t.Errorf("Truncate(%q, %v) = %q, want %q", tt.label, tt.max, got, tt.want)
			}
		})
	}
}
