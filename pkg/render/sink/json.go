package sink

import (
	"encoding/json"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/layout"
	"github.com/matzehuels/barchart/pkg/scale"
	"github.com/matzehuels/barchart/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	sort    string
	dataMax float64
	indent  bool
}

// WithJSONSort records the sort state name (e.g. "value-asc").
func WithJSONSort(s string) JSONOption { return func(r *jsonRenderer) { r.sort = s } }

// WithJSONDataMax records the magnitude extremum of the rendered dataset.
func WithJSONDataMax(m float64) JSONOption { return func(r *jsonRenderer) { r.dataMax = m } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Margin  layout.Margins `json:"margin"`
	Sort    string         `json:"sort,omitempty"`
	DataMax float64        `json:"data_max,omitempty"`
	Axis    jsonAxis       `json:"axis"`
	Labels  jsonGroup      `json:"labels"`
	Bars    jsonGroup      `json:"bars"`
}

type jsonAxis struct {
	Anchor   layout.Point `json:"anchor"`
	TickSize float64      `json:"tick_size"`
	Ticks    []scale.Tick `json:"ticks"`
}

type jsonGroup struct {
	Anchor   layout.Point    `json:"anchor"`
	Elements []scene.Element `json:"elements"`
}

// RenderJSON renders s as JSON. Exiting elements are included with their
// flag set so a mid-transition snapshot round-trips exactly.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:   s.Width,
		Height:  s.Height,
		Margin:  s.Margin,
		Sort:    r.sort,
		DataMax: r.dataMax,
		Axis:    jsonAxis{Anchor: s.Axis.Anchor, TickSize: s.Axis.TickSize, Ticks: s.Axis.Ticks},
		Labels:  buildGroup(s.Labels),
		Bars:    buildGroup(s.Bars),
	}
	if out.Axis.Ticks == nil {
		out.Axis.Ticks = []scale.Tick{}
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal scene")
	}
	return data, nil
}

func buildGroup(g *scene.Group) jsonGroup {
	elems := make([]scene.Element, 0, g.Len())
	for _, e := range g.Elements() {
		elems = append(elems, *e)
	}
	return jsonGroup{Anchor: g.Anchor, Elements: elems}
}
