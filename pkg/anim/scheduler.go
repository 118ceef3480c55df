package anim

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/barchart/pkg/scene"
)

// Request asks a scheduler to move one element to new attributes.
type Request struct {
	ID       string        // element ID, e.g. "bars/YOAB_at"
	To       scene.Attrs   // target attributes
	Delay    time.Duration // wait before starting
	Duration time.Duration // length of the transition; 0 applies at once
	Remove   bool          // remove the element once To is reached
}

// Token identifies one submitted request.
type Token struct {
	ID      uuid.UUID
	Element string
}

// Valid reports whether t was returned by a scheduler.
func (t Token) Valid() bool { return t.ID != uuid.Nil }

// Target is the element store a scheduler writes to.
type Target interface {
	Attrs(id string) (scene.Attrs, bool)
	SetAttrs(id string, a scene.Attrs)
	Remove(id string)
}

// Scheduler plays requests against a target.
type Scheduler interface {
	// Submit cancels any in-flight request for r.ID and schedules r.
	Submit(r Request) Token
	// Cancel stops the request identified by t, leaving the element at its
	// current attributes. It reports whether the request was still active.
	Cancel(t Token) bool
	// CancelAll stops every in-flight request.
	CancelAll()
	// Pending returns the number of requests not yet finished.
	Pending() int
}

func newToken(id string) Token {
	return Token{ID: uuid.New(), Element: id}
}

// Immediate applies every request synchronously.
type Immediate struct {
	target Target
}

// NewImmediate returns a scheduler writing straight to target.
func NewImmediate(target Target) *Immediate {
	return &Immediate{target: target}
}

// Submit implements [Scheduler].
func (s *Immediate) Submit(r Request) Token {
	if r.Remove {
		s.target.Remove(r.ID)
	} else {
		s.target.SetAttrs(r.ID, r.To)
	}
	return newToken(r.ID)
}

// Cancel implements [Scheduler]. Immediate requests are never in flight.
func (s *Immediate) Cancel(Token) bool { return false }

// CancelAll implements [Scheduler].
func (s *Immediate) CancelAll() {}

// Pending implements [Scheduler].
func (s *Immediate) Pending() int { return 0 }
