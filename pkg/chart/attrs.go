package chart

import (
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/layout"
	"github.com/matzehuels/barchart/pkg/palette"
	"github.com/matzehuels/barchart/pkg/scene"
)

// HoverOpacity is the opacity factor of a hovered bar.
const HoverOpacity = scene.HoverOpacity

// barAttrs derives bar rectangles from a state.
type barAttrs struct{ s *State }

func (b barAttrs) Target(r dataset.Record) scene.Attrs {
	sc := b.s.Scales
	return scene.Attrs{
		X:       sc.BarX(r.Value),
		Y:       sc.BarY(r.Key),
		Width:   sc.BarWidth(r.Value),
		Height:  sc.Band.Bandwidth(),
		Opacity: 1,
		Fill:    sc.BarFill(r.Value),
	}
}

// Enter starts a bar as a zero-width sliver on the zero axis. On the first
// render it already has its full height; later it grows from nothing.
func (b barAttrs) Enter(r dataset.Record, initial bool) scene.Attrs {
	sc := b.s.Scales
	a := scene.Attrs{X: sc.Zero(), Y: sc.BarY(r.Key), Opacity: 1, Fill: palette.PlaceholderFill}
	if initial {
		a.Height = sc.Band.Bandwidth()
	}
	return a
}

func (b barAttrs) Exit(string) scene.Attrs {
	return scene.Attrs{X: b.s.Scales.Zero(), Y: b.s.Layout.MarginChartY, Opacity: 1, Fill: palette.PlaceholderFill}
}

func (barAttrs) Text(dataset.Record) string { return "" }

// labelAttrs derives the right-aligned key labels. Y is the band center.
type labelAttrs struct {
	s *State
	m layout.Measurer
}

func (l labelAttrs) Target(r dataset.Record) scene.Attrs {
	sc := l.s.Scales
	return scene.Attrs{
		Y:       sc.BarY(r.Key) + sc.Band.Bandwidth()/2,
		Width:   l.s.Layout.LabelWidth,
		Height:  l.s.Layout.FontSize,
		Opacity: 1,
	}
}

func (l labelAttrs) Enter(r dataset.Record, _ bool) scene.Attrs {
	a := l.Target(r)
	a.Opacity = 0
	return a
}

func (l labelAttrs) Exit(string) scene.Attrs {
	return scene.Attrs{Y: l.s.Layout.MarginChartY, Width: l.s.Layout.LabelWidth, Height: l.s.Layout.FontSize}
}

func (l labelAttrs) Text(r dataset.Record) string {
	return layout.Truncate(r.Key, l.s.Layout.LabelWidth, l.s.Layout.FontSize, l.m)
}
