package reconcile

import (
	"time"

	"github.com/matzehuels/barchart/pkg/anim"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/scene"
)

// Default timings of data-driven transitions.
const (
	DefaultDuration = 1000 * time.Millisecond
	DefaultStagger  = 25 * time.Millisecond
)

// Phase is the partition a transition belongs to.
type Phase int

const (
	PhaseEnter Phase = iota
	PhaseUpdate
	PhaseExit
)

func (p Phase) String() string {
	switch p {
	case PhaseEnter:
		return "enter"
	case PhaseUpdate:
		return "update"
	case PhaseExit:
		return "exit"
	}
	return "unknown"
}

// Attributes computes element attributes for one group.
type Attributes interface {
	// Target returns the resting attributes of rec under the current state.
	Target(rec dataset.Record) scene.Attrs
	// Enter returns the attributes a new element is created with.
	Enter(rec dataset.Record, initial bool) scene.Attrs
	// Exit returns the collapsed attributes an element leaves with.
	Exit(key string) scene.Attrs
	// Text returns the display text of rec, or "" for shapes.
	Text(rec dataset.Record) string
}

// Options controls timing.
type Options struct {
	// Animate disables every duration and delay when false.
	Animate  bool
	Duration time.Duration
	// Stagger delays the i-th record by i*Stagger on the initial render.
	Stagger time.Duration
	// Initial marks the very first render of the chart.
	Initial bool
}

// Transition moves one element.
type Transition struct {
	Key      string
	Phase    Phase
	Record   dataset.Record
	Text     string
	From     *scene.Attrs // creation attributes; set for entering elements only
	To       scene.Attrs
	Delay    time.Duration
	Duration time.Duration
	Remove   bool
}

// Plan builds the transitions for records (in their current order) against
// the partition p.
func Plan(p Partition, records []dataset.Record, attrs Attributes, opts Options) []Transition {
	byKey := make(map[string]int, len(records))
	for i, r := range records {
		byKey[r.Key] = i
	}
	entering := make(map[string]bool, len(p.Enter))
	for _, k := range p.Enter {
		entering[k] = true
	}

	dur := time.Duration(0)
	if opts.Animate {
		dur = opts.Duration
	}

	plan := make([]Transition, 0, len(records)+len(p.Exit))
	for _, k := range append(append([]string(nil), p.Update...), p.Enter...) {
		i, ok := byKey[k]
		if !ok {
			continue
		}
		rec := records[i]
		tr := Transition{Key: k, Phase: PhaseUpdate, Record: rec, Text: attrs.Text(rec), To: attrs.Target(rec), Duration: dur}
		if entering[k] {
			from := attrs.Enter(rec, opts.Initial)
			tr.Phase, tr.From = PhaseEnter, &from
		}
		if opts.Animate && opts.Initial && opts.Stagger > 0 {
			tr.Delay = time.Duration(i) * opts.Stagger
		}
		plan = append(plan, tr)
	}
	for _, k := range p.Exit {
		plan = append(plan, Transition{Key: k, Phase: PhaseExit, To: attrs.Exit(k), Duration: dur, Remove: true})
	}
	return plan
}

// Apply realizes plan on group g through sched. Entering elements are
// created at their From attributes; exiting elements are flagged and removed
// by the scheduler when their transition ends. Entering and updated elements
// are then ordered as in plan, so render order follows the sort, with
// exiting elements behind them.
func Apply(g *scene.Group, plan []Transition, sched anim.Scheduler) {
	keys := make([]string, 0, len(plan))
	for _, tr := range plan {
		if tr.Phase != PhaseExit {
			keys = append(keys, tr.Key)
		}
		switch tr.Phase {
		case PhaseEnter:
			g.Put(scene.Element{Key: tr.Key, Value: tr.Record.Value, Text: tr.Text, Attrs: *tr.From})
		case PhaseUpdate:
			if e, ok := g.Get(tr.Key); ok {
				e.Value, e.Text = tr.Record.Value, tr.Text
				e.Exiting = false
			}
		case PhaseExit:
			if e, ok := g.Get(tr.Key); ok {
				e.Exiting = true
			}
		}
	}
	g.Reorder(keys)
	for _, tr := range plan {
		sched.Submit(anim.Request{
			ID:       scene.ID(g.Name, tr.Key),
			To:       tr.To,
			Delay:    tr.Delay,
			Duration: tr.Duration,
			Remove:   tr.Remove,
		})
	}
}

// Retarget recomputes the targets of every live element of g from records
// without creating or removing anything. It backs re-sorts, recolors and
// resizes, where the key set is unchanged. The render order follows records.
func Retarget(g *scene.Group, records []dataset.Record, attrs Attributes, sched anim.Scheduler, dur time.Duration) int {
	g.Reorder(dataset.Labels(records))
	n := 0
	for _, rec := range records {
		e, ok := g.Get(rec.Key)
		if !ok || e.Exiting {
			continue
		}
		e.Value, e.Text = rec.Value, attrs.Text(rec)
		sched.Submit(anim.Request{ID: e.ID, To: attrs.Target(rec), Duration: dur})
		n++
	}
	return n
}
