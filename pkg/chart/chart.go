package chart

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/anim"
	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/layout"
	"github.com/matzehuels/barchart/pkg/observability"
	"github.com/matzehuels/barchart/pkg/reconcile"
	"github.com/matzehuels/barchart/pkg/scene"
)

// AxisTicks is the maximum number of x-axis ticks.
const AxisTicks = 10

// Widget is the capability set of an embeddable chart.
type Widget interface {
	Initialize(data []dataset.Raw, cfg config.Config) error
	UpdateData(data []dataset.Raw) error
	UpdateSort(byName, ascending *bool) error
	UpdateColors(neg, pos string) error
	Resize(width, height float64) error
}

var _ Widget = (*Chart)(nil)

// Chart is the diverging bar chart engine.
type Chart struct {
	state     *State
	env       env
	scene     *scene.Scene
	sched     anim.Scheduler
	timeline  *anim.Timeline
	listeners *Listeners
	tooltip   Tooltip
	logger    *log.Logger
	measurer  layout.Measurer
}

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMeasurer sets the label text measurer.
func WithMeasurer(m layout.Measurer) Option {
	return func(c *Chart) {
		if m != nil {
			c.measurer = m
		}
	}
}

// WithScheduler replaces the default timeline. newSched receives the scene
// the scheduler must write to.
func WithScheduler(newSched func(anim.Target) anim.Scheduler) Option {
	return func(c *Chart) {
		if newSched != nil {
			c.sched = newSched(c.scene)
		}
	}
}

// New returns an uninitialized chart.
func New(opts ...Option) *Chart {
	c := &Chart{
		scene:     scene.New(),
		listeners: NewListeners(),
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		measurer:  layout.DefaultMeasurer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = anim.NewTimeline(c.scene)
	}
	c.timeline, _ = c.sched.(*anim.Timeline)
	return c
}

// =============================================================================
// Widget Operations
// =============================================================================

// Initialize cleans data, derives the first state from cfg and renders the
// chart. Calling it again discards the previous scene.
func (c *Chart) Initialize(data []dataset.Raw, cfg config.Config) error {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return c.fail("initialize", err)
	}
	recs, err := dataset.Clean(data)
	if err != nil {
		return c.fail("initialize", err)
	}
	e := env{
		names:  dataset.Collator(cfg.Language()),
		layout: layout.Options{Strategy: layout.Strategy(cfg.LabelStrategy), FontSize: layout.FontSize, Measurer: c.measurer},
	}
	st, err := newState(cfg, recs, e)
	if err != nil {
		return c.fail("initialize", err)
	}

	c.sched.CancelAll()
	*c.scene = *scene.New()
	c.env, c.state = e, &st
	c.tooltip = Tooltip{}
	c.logger.Debug("initialize", "records", st.Dataset.Len(), "sort", st.Sort, "data_max", st.Dataset.DataMax)
	c.reconcile("initialize", true)
	return nil
}

// UpdateData replaces the dataset. Bars for kept keys move to their new
// targets, new keys enter and missing keys exit.
func (c *Chart) UpdateData(data []dataset.Raw) error {
	if err := c.ready(); err != nil {
		return c.fail("update_data", err)
	}
	recs, err := dataset.Clean(data)
	if err != nil {
		return c.fail("update_data", err)
	}
	c.hideTooltip()
	st := c.state.withData(recs, c.env)
	c.state = &st
	c.logger.Debug("update data", "records", st.Dataset.Len(), "data_max", st.Dataset.DataMax)
	c.reconcile("update_data", false)
	return nil
}

// UpdateSort assigns the sort state. Nil components are left unchanged.
func (c *Chart) UpdateSort(byName, ascending *bool) error {
	if err := c.ready(); err != nil {
		return c.fail("update_sort", err)
	}
	c.resort(c.state.Sort.Apply(byName, ascending))
	return nil
}

// CycleSort advances the click-to-resort cycle and returns the new state.
func (c *Chart) CycleSort() (dataset.SortState, error) {
	if err := c.ready(); err != nil {
		return dataset.SortState{}, c.fail("cycle_sort", err)
	}
	next := c.state.Sort.Cycle()
	c.resort(next)
	return next, nil
}

// UpdateColors rebuilds the palette from new end colors and animates the
// fills. Empty arguments keep the current colors.
func (c *Chart) UpdateColors(neg, pos string) error {
	if err := c.ready(); err != nil {
		return c.fail("update_colors", err)
	}
	st, err := c.state.withColors(neg, pos)
	if err != nil {
		return c.fail("update_colors", err)
	}
	c.state = &st
	n := reconcile.Retarget(c.scene.Bars, st.Dataset.Records, barAttrs{&st}, c.sched, c.duration())
	c.logger.Debug("update colors", "neg", st.Config.NegColor, "pos", st.Config.PosColor)
	observability.Chart().OnReconcile("update_colors", 0, n, 0)
	c.bind()
	return nil
}

// Resize applies a new container size and reflows every element without
// animation. A zero height keeps the current height.
func (c *Chart) Resize(width, height float64) error {
	if err := c.ready(); err != nil {
		return c.fail("resize", err)
	}
	if height == 0 {
		height = c.state.Container.Height
	}
	box, err := layout.NewContainer(width, height)
	if err != nil {
		return c.fail("resize", err)
	}
	st := c.state.withContainer(box, c.env)
	c.state = &st

	c.sched.CancelAll()
	for _, g := range []*scene.Group{c.scene.Bars, c.scene.Labels} {
		for _, e := range g.Elements() {
			if e.Exiting {
				g.Remove(e.Key)
			}
		}
	}
	c.syncFrame()
	reconcile.Retarget(c.scene.Bars, st.Dataset.Records, barAttrs{&st}, c.sched, 0)
	reconcile.Retarget(c.scene.Labels, st.Dataset.Records, labelAttrs{&st, c.measurer}, c.sched, 0)
	c.restoreHover()

	c.logger.Debug("resize", "width", box.Width, "height", box.Height, "chart_width", st.Layout.MarginChartX)
	observability.Chart().OnResize(box.Width, box.Height)
	c.bind()
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// State returns the current state. It reports false before Initialize.
func (c *Chart) State() (State, bool) {
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}

// Snapshot returns a deep copy of the rendered scene.
func (c *Chart) Snapshot() *scene.Scene { return c.scene.Clone() }

// Tooltip returns the current tooltip.
func (c *Chart) Tooltip() Tooltip { return c.tooltip }

// Listeners returns the current listener table.
func (c *Chart) Listeners() *Listeners { return c.listeners }

// Dispatch delivers a pointer event to an element.
func (c *Chart) Dispatch(ev Event, elementID string) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.listeners.Dispatch(elementID, ev)
}

// Advance moves the animation clock forward. It is a no-op for schedulers
// other than the default timeline.
func (c *Chart) Advance(dt time.Duration) {
	if c.timeline != nil {
		c.timeline.Advance(dt)
	}
}

// Flush completes every running animation.
func (c *Chart) Flush() {
	if c.timeline != nil {
		c.timeline.Flush()
	}
}

// Animating reports whether any transition is still running.
func (c *Chart) Animating() bool { return c.sched.Pending() > 0 }

// Remaining returns the time until the running transitions end.
func (c *Chart) Remaining() time.Duration {
	if c.timeline != nil {
		return c.timeline.Remaining()
	}
	return 0
}

// =============================================================================
// Rendering
// =============================================================================

func (c *Chart) ready() error {
	if c.state == nil {
		return errors.New(errors.ErrCodeNotInitialized, "chart is not initialized")
	}
	return nil
}

func (c *Chart) fail(op string, err error) error {
	c.logger.Debug("rejected", "op", op, "err", err)
	observability.Chart().OnError(op, err)
	return err
}

func (c *Chart) duration() time.Duration {
	if !c.state.Config.Transitions() {
		return 0
	}
	return c.state.Config.Duration.Std()
}

// syncFrame copies the container, anchors and axis of the current state
// into the scene. The axis is never animated.
func (c *Chart) syncFrame() {
	st := c.state
	c.scene.Width, c.scene.Height = st.Container.Width, st.Container.Height
	c.scene.Margin = st.Container.Margins
	c.scene.Bars.Anchor = st.Layout.Bars
	c.scene.Labels.Anchor = st.Layout.Labels
	c.scene.Axis = scene.Axis{
		Anchor:   st.Layout.Axis,
		Ticks:    st.Scales.Ticks(AxisTicks),
		TickSize: st.Layout.AxisTickSize,
		LineX:    st.Layout.Labels.X,
		LineY0:   st.Layout.Labels.Y,
		LineY1:   st.Layout.SVGHeight,
	}
}

// reconcile runs a full enter/update/exit pass of both groups against the
// current state.
func (c *Chart) reconcile(op string, initial bool) {
	st := c.state
	c.syncFrame()

	opts := reconcile.Options{
		Animate:  st.Config.Transitions(),
		Duration: st.Config.Duration.Std(),
		Stagger:  st.Config.StaggerDelay(),
		Initial:  initial,
	}
	keys := st.Dataset.Labels

	bars := reconcile.Diff(c.scene.Bars.Keys(), keys)
	reconcile.Apply(c.scene.Bars, reconcile.Plan(bars, st.Dataset.Records, barAttrs{st}, opts), c.sched)

	// Labels fade in together instead of following the bar stagger.
	opts.Stagger = 0
	labels := reconcile.Diff(c.scene.Labels.Keys(), keys)
	reconcile.Apply(c.scene.Labels, reconcile.Plan(labels, st.Dataset.Records, labelAttrs{st, c.measurer}, opts), c.sched)

	stats := bars.Stats()
	c.logger.Debug("reconcile", "op", op, "enter", stats.Enter, "update", stats.Update, "exit", stats.Exit)
	observability.Chart().OnReconcile(op, stats.Enter, stats.Update, stats.Exit)
	c.bind()
}

// resort applies a sort state. Only vertical positions change because the
// horizontal scales are untouched.
func (c *Chart) resort(ss dataset.SortState) {
	c.hideTooltip()
	st := c.state.withSort(ss, c.env)
	c.state = &st

	dur := c.duration()
	n := reconcile.Retarget(c.scene.Bars, st.Dataset.Records, barAttrs{&st}, c.sched, dur)
	reconcile.Retarget(c.scene.Labels, st.Dataset.Records, labelAttrs{&st, c.measurer}, c.sched, dur)

	c.logger.Debug("sort", "state", ss)
	observability.Chart().OnSort(ss.String())
	observability.Chart().OnReconcile("update_sort", 0, n, 0)
	c.bind()
}

// =============================================================================
// Interaction
// =============================================================================

// bind rebuilds the listener table for every live element.
func (c *Chart) bind() {
	c.listeners.Clear()
	for _, key := range c.scene.Bars.Live() {
		barID := scene.ID(scene.GroupBars, key)
		c.listeners.On(barID, EventMouseOver, func() error { c.showTooltip(key); return nil })
		c.listeners.On(barID, EventMouseOut, func() error { c.hideTooltip(); return nil })
		c.listeners.On(barID, EventClick, func() error {
			c.highlight(key, false)
			_, err := c.CycleSort()
			return err
		})
	}
	for _, key := range c.scene.Labels.Live() {
		labelID := scene.ID(scene.GroupLabels, key)
		c.listeners.On(labelID, EventMouseOver, func() error { c.highlight(key, true); return nil })
		c.listeners.On(labelID, EventMouseOut, func() error { c.highlight(key, false); return nil })
	}
}

// showTooltip highlights key and shows its tooltip.
func (c *Chart) showTooltip(key string) {
	c.highlight(key, true)
	rec, ok := c.state.Dataset.Lookup(key)
	if !ok {
		return
	}
	c.tooltip = newTooltip(rec.Key, rec.Value, c.state.Config.KeyTooltipLabel, c.state.Config.ValueTooltipLabel)
}

// highlight fades the bar and bolds the label of key, or reverts both.
// Both are element state outside the animated attributes, so running and
// later transitions keep them.
func (c *Chart) highlight(key string, on bool) {
	if bar, ok := c.scene.Bars.Get(key); ok {
		bar.Hovered = on
	}
	if label, ok := c.scene.Labels.Get(key); ok {
		label.Bold = on
	}
}

// hideTooltip clears every hover state.
func (c *Chart) hideTooltip() {
	if c.tooltip.Visible {
		c.highlight(c.tooltip.Key, false)
	}
	for _, e := range c.scene.Labels.Elements() {
		e.Bold = false
	}
	for _, e := range c.scene.Bars.Elements() {
		e.Hovered = false
	}
	c.tooltip = Tooltip{}
}

// restoreHover reapplies the visible tooltip's highlight after a reflow
// reset the attributes.
func (c *Chart) restoreHover() {
	if c.tooltip.Visible {
		c.highlight(c.tooltip.Key, true)
	}
}
