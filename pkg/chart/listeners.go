package chart

import (
	"slices"

	"github.com/matzehuels/barchart/pkg/errors"
)

// Event is a pointer event name.
type Event string

const (
	EventMouseOver Event = "mouseover"
	EventMouseOut  Event = "mouseout"
	EventClick     Event = "click"
)

// Handler reacts to an event on one element.
type Handler func() error

// Listeners is a registration table keyed by element ID.
type Listeners struct {
	table map[string]map[Event]Handler
}

// NewListeners returns an empty table.
func NewListeners() *Listeners {
	return &Listeners{table: make(map[string]map[Event]Handler)}
}

// On registers h for ev on the element id, replacing any previous handler.
func (l *Listeners) On(id string, ev Event, h Handler) {
	m, ok := l.table[id]
	if !ok {
		m = make(map[Event]Handler)
		l.table[id] = m
	}
	m[ev] = h
}

// Clear drops every registration.
func (l *Listeners) Clear() { clear(l.table) }

// Has reports whether a handler is registered for ev on id.
func (l *Listeners) Has(id string, ev Event) bool {
	_, ok := l.table[id][ev]
	return ok
}

// Dispatch runs the handler for ev on id.
func (l *Listeners) Dispatch(id string, ev Event) error {
	h, ok := l.table[id][ev]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no %s listener for %q", ev, id)
	}
	return h()
}

// IDs returns the registered element IDs in sorted order.
func (l *Listeners) IDs() []string {
	ids := make([]string, 0, len(l.table))
	for id := range l.table {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
