package chart

import (
	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/layout"
	"github.com/matzehuels/barchart/pkg/palette"
	"github.com/matzehuels/barchart/pkg/scale"
)

// State is the immutable snapshot every render derives from. A new State
// is built for each update; existing values are never mutated.
type State struct {
	Config    config.Config
	Dataset   dataset.Dataset
	Sort      dataset.SortState
	Colors    []string
	Scales    *scale.Set
	Container layout.Container
	Layout    layout.Layout
}

// env holds the collaborators the pure state functions need.
type env struct {
	names  dataset.CompareFunc
	layout layout.Options
}

func newState(cfg config.Config, recs []dataset.Record, e env) (State, error) {
	colors, err := palette.Interpolate(cfg.NegColor, cfg.MidColor, cfg.PosColor, cfg.NumColors)
	if err != nil {
		return State{}, err
	}
	c, err := layout.NewContainer(cfg.Width, cfg.Height)
	if err != nil {
		return State{}, err
	}
	s := State{Config: cfg, Sort: cfg.Sort(), Colors: colors, Container: c, Scales: scale.NewSet()}
	s.Dataset = dataset.New(recs, s.Sort, 0, cfg.DefaultDataMax, e.names)
	s.Layout = layout.Compute(c, s.Dataset.Labels, e.layout)
	s.Scales.SetDomains(s.Dataset.DataMax, s.Dataset.Labels)
	s.Scales.SetPositionalRanges(s.Layout.MarginChartX, s.Layout.MarginChartY)
	s.Scales.SetFillRange(colors)
	return s, nil
}

// withData replaces the records. The labels may change, so the layout and
// every scale are recomputed.
func (s State) withData(recs []dataset.Record, e env) State {
	n := s
	n.Scales = s.Scales.Clone()
	n.Dataset = dataset.New(recs, s.Sort, s.Dataset.DataMax, s.Config.DefaultDataMax, e.names)
	n.Layout = layout.Compute(s.Container, n.Dataset.Labels, e.layout)
	n.Scales.SetDomains(n.Dataset.DataMax, n.Dataset.Labels)
	n.Scales.SetPositionalRanges(n.Layout.MarginChartX, n.Layout.MarginChartY)
	return n
}

// withSort reorders the records. Only the band domain changes.
func (s State) withSort(ss dataset.SortState, e env) State {
	n := s
	n.Scales = s.Scales.Clone()
	n.Sort = ss
	n.Dataset = s.Dataset.Resort(ss, e.names)
	n.Scales.SetVerticalDomain(n.Dataset.Labels)
	return n
}

// withColors rebuilds the palette. Empty arguments keep the current color.
func (s State) withColors(neg, pos string) (State, error) {
	n := s
	if neg != "" {
		n.Config.NegColor = neg
	}
	if pos != "" {
		n.Config.PosColor = pos
	}
	colors, err := palette.Interpolate(n.Config.NegColor, n.Config.MidColor, n.Config.PosColor, n.Config.NumColors)
	if err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "update colors")
	}
	n.Colors = colors
	n.Scales = s.Scales.Clone()
	n.Scales.SetFillRange(colors)
	return n, nil
}

// withContainer applies a new container size. Horizontal ranges always
// follow the new width; the band range only changes with the height.
func (s State) withContainer(c layout.Container, e env) State {
	n := s
	n.Scales = s.Scales.Clone()
	n.Container = c
	n.Config.Width, n.Config.Height = c.Width, c.Height
	n.Layout = layout.Compute(c, s.Dataset.Labels, e.layout)
	if c.Height != s.Container.Height {
		n.Scales.SetPositionalRanges(n.Layout.MarginChartX, n.Layout.MarginChartY)
	} else {
		n.Scales.SetHorizontalRanges(n.Layout.MarginChartX)
	}
	return n
}
