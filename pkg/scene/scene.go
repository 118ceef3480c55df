// Package scene holds the rendered element set of the chart.
//
// A [Scene] contains two keyed groups, one bar and one label per record key,
// plus the axis. Element IDs are namespaced by group ("bars/YOAB_at",
// "labels/YOAB_at") so a scheduler can address any element with one string.
// Only the chart engine mutates a scene; callers read copies via [Scene.Clone].
package scene

import (
	"slices"
	"strings"

	"github.com/matzehuels/barchart/pkg/layout"
	"github.com/matzehuels/barchart/pkg/scale"
)

// Group names.
const (
	GroupBars   = "bars"
	GroupLabels = "labels"
)

// HoverOpacity scales the opacity of a hovered element.
const HoverOpacity = 0.5

// Attrs are the animatable attributes of an element.
type Attrs struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
	Fill    string  `json:"fill,omitempty"`
}

// Element is one rendered bar or label.
type Element struct {
	ID      string  `json:"id"`
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	Text    string  `json:"text,omitempty"`
	Attrs   Attrs   `json:"attrs"`
	Bold    bool    `json:"bold,omitempty"`
	Hovered bool    `json:"hovered,omitempty"`
	Exiting bool    `json:"exiting,omitempty"`
}

// Opacity returns the drawn opacity: the animated opacity, faded by
// HoverOpacity while the element is hovered. Transitions never touch the
// hover state.
func (e *Element) Opacity() float64 {
	if e.Hovered {
		return e.Attrs.Opacity * HoverOpacity
	}
	return e.Attrs.Opacity
}

// ID joins a group name and a record key.
func ID(group, key string) string { return group + "/" + key }

// SplitID returns the group and key of an element ID.
func SplitID(id string) (group, key string, ok bool) {
	return strings.Cut(id, "/")
}

// Group is an ordered, keyed set of elements sharing an anchor.
type Group struct {
	Name   string       `json:"name"`
	Anchor layout.Point `json:"anchor"`

	order []string
	byKey map[string]*Element
}

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name, byKey: make(map[string]*Element)}
}

// Get returns the element for key.
func (g *Group) Get(key string) (*Element, bool) {
	e, ok := g.byKey[key]
	return e, ok
}

// Put inserts or replaces the element for e.Key. New keys are appended to
// the render order.
func (g *Group) Put(e Element) *Element {
	e.ID = ID(g.Name, e.Key)
	if cur, ok := g.byKey[e.Key]; ok {
		*cur = e
		return cur
	}
	el := &e
	g.byKey[e.Key] = el
	g.order = append(g.order, e.Key)
	return el
}

// Remove deletes the element for key.
func (g *Group) Remove(key string) bool {
	if _, ok := g.byKey[key]; !ok {
		return false
	}
	delete(g.byKey, key)
	g.order = slices.DeleteFunc(g.order, func(k string) bool { return k == key })
	return true
}

// Reorder moves the elements of keys to the front of the render order, in
// the order given. Unknown keys are skipped; the remaining elements keep
// their relative order behind them.
func (g *Group) Reorder(keys []string) {
	order := make([]string, 0, len(g.order))
	placed := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := g.byKey[k]; ok && !placed[k] {
			placed[k] = true
			order = append(order, k)
		}
	}
	for _, k := range g.order {
		if !placed[k] {
			order = append(order, k)
		}
	}
	g.order = order
}

// Keys returns the keys of every element, including exiting ones, in render
// order.
func (g *Group) Keys() []string { return slices.Clone(g.order) }

// Live returns the keys of elements that are not exiting.
func (g *Group) Live() []string {
	keys := make([]string, 0, len(g.order))
	for _, k := range g.order {
		if !g.byKey[k].Exiting {
			keys = append(keys, k)
		}
	}
	return keys
}

// Elements returns every element in render order.
func (g *Group) Elements() []*Element {
	out := make([]*Element, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.byKey[k])
	}
	return out
}

// Len returns the number of elements, including exiting ones.
func (g *Group) Len() int { return len(g.order) }

func (g *Group) clone() *Group {
	c := &Group{Name: g.Name, Anchor: g.Anchor, order: slices.Clone(g.order), byKey: make(map[string]*Element, len(g.byKey))}
	for k, e := range g.byKey {
		cp := *e
		c.byKey[k] = &cp
	}
	return c
}

// Axis is the top axis: tick marks plus the vertical label line.
type Axis struct {
	Anchor   layout.Point `json:"anchor"`
	Ticks    []scale.Tick `json:"ticks"`
	TickSize float64      `json:"tick_size"`
	// LineX and LineY0..LineY1 describe the y-axis line along the labels.
	LineX  float64 `json:"line_x"`
	LineY0 float64 `json:"line_y0"`
	LineY1 float64 `json:"line_y1"`
}

// Scene is the complete rendered state.
type Scene struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Margin layout.Margins `json:"margin"`
	Bars   *Group         `json:"bars"`
	Labels *Group         `json:"labels"`
	Axis   Axis           `json:"axis"`
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{Bars: NewGroup(GroupBars), Labels: NewGroup(GroupLabels)}
}

// Group returns the group with the given name.
func (s *Scene) Group(name string) (*Group, bool) {
	switch name {
	case GroupBars:
		return s.Bars, true
	case GroupLabels:
		return s.Labels, true
	}
	return nil, false
}

// Element returns the element with the given ID.
func (s *Scene) Element(id string) (*Element, bool) {
	group, key, ok := SplitID(id)
	if !ok {
		return nil, false
	}
	g, ok := s.Group(group)
	if !ok {
		return nil, false
	}
	return g.Get(key)
}

// Attrs returns the current attributes of an element.
func (s *Scene) Attrs(id string) (Attrs, bool) {
	e, ok := s.Element(id)
	if !ok {
		return Attrs{}, false
	}
	return e.Attrs, true
}

// SetAttrs replaces the attributes of an element. Unknown IDs are ignored.
func (s *Scene) SetAttrs(id string, a Attrs) {
	if e, ok := s.Element(id); ok {
		e.Attrs = a
	}
}

// Remove deletes an element.
func (s *Scene) Remove(id string) {
	group, key, ok := SplitID(id)
	if !ok {
		return
	}
	if g, ok := s.Group(group); ok {
		g.Remove(key)
	}
}

// Clone returns a deep copy of s.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Bars = s.Bars.clone()
	c.Labels = s.Labels.clone()
	c.Axis.Ticks = slices.Clone(s.Axis.Ticks)
	return &c
}
