package anim

import (
	"slices"
	"time"

	"github.com/matzehuels/barchart/pkg/scene"
)

type job struct {
	token   Token
	req     Request
	start   time.Duration
	from    scene.Attrs
	started bool
}

// Timeline is a frame-driven scheduler. Time only moves when [Timeline.Advance]
// is called, which makes playback deterministic and lets a caller render any
// intermediate frame.
type Timeline struct {
	target Target
	ease   EaseFunc
	now    time.Duration
	active map[string]*job
}

// TimelineOption configures a Timeline.
type TimelineOption func(*Timeline)

// WithEase replaces the default cubic in-out easing.
func WithEase(f EaseFunc) TimelineOption { return func(t *Timeline) { t.ease = f } }

// NewTimeline returns an idle timeline writing to target.
func NewTimeline(target Target, opts ...TimelineOption) *Timeline {
	t := &Timeline{target: target, ease: EaseCubicInOut, active: make(map[string]*job)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the elapsed timeline time.
func (t *Timeline) Now() time.Duration { return t.now }

// Submit implements [Scheduler]. A request with no delay and no duration is
// applied before Submit returns.
func (t *Timeline) Submit(r Request) Token {
	delete(t.active, r.ID)
	tok := newToken(r.ID)
	j := &job{token: tok, req: r, start: t.now + r.Delay}
	if r.Delay <= 0 && r.Duration <= 0 {
		t.finish(j)
		return tok
	}
	t.active[r.ID] = j
	return tok
}

// Cancel implements [Scheduler].
func (t *Timeline) Cancel(tok Token) bool {
	j, ok := t.active[tok.Element]
	if !ok || j.token != tok {
		return false
	}
	delete(t.active, tok.Element)
	return true
}

// CancelAll implements [Scheduler].
func (t *Timeline) CancelAll() { clear(t.active) }

// Pending implements [Scheduler].
func (t *Timeline) Pending() int { return len(t.active) }

// Idle reports whether nothing is scheduled.
func (t *Timeline) Idle() bool { return len(t.active) == 0 }

// Advance moves the clock forward by dt and writes the interpolated
// attributes of every running request.
func (t *Timeline) Advance(dt time.Duration) {
	if dt > 0 {
		t.now += dt
	}
	for _, id := range t.ids() {
		j := t.active[id]
		if t.now < j.start {
			continue
		}
		if !j.started {
			from, ok := t.target.Attrs(id)
			if !ok {
				delete(t.active, id)
				continue
			}
			j.from, j.started = from, true
		}
		p := 1.0
		if j.req.Duration > 0 {
			p = float64(t.now-j.start) / float64(j.req.Duration)
		}
		if p >= 1 {
			delete(t.active, id)
			t.finish(j)
			continue
		}
		t.target.SetAttrs(id, Interpolate(j.from, j.req.To, t.ease(p)))
	}
}

// Flush completes every request at once.
func (t *Timeline) Flush() {
	for _, id := range t.ids() {
		j := t.active[id]
		delete(t.active, id)
		t.finish(j)
	}
}

// Remaining returns the time until the last scheduled request ends.
func (t *Timeline) Remaining() time.Duration {
	var end time.Duration
	for _, j := range t.active {
		end = max(end, j.start+j.req.Duration)
	}
	return max(0, end-t.now)
}

func (t *Timeline) finish(j *job) {
	if j.req.Remove {
		t.target.Remove(j.req.ID)
		return
	}
	t.target.SetAttrs(j.req.ID, j.req.To)
}

func (t *Timeline) ids() []string {
	ids := make([]string, 0, len(t.active))
	for id := range t.active {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
