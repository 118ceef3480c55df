package chart

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/barchart/pkg/anim"
	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/palette"
	"github.com/matzehuels/barchart/pkg/scene"
)

// genes is the 22-record coefficient fixture.
var genes = []dataset.Raw{
	{Key: "ARGF_at", Value: -0.049}, {Key: "DNAJ_at", Value: -0.011}, {Key: "LYSC_at", Value: -0.368},
	{Key: "RPLL_at", Value: -0.007}, {Key: "SPOIISA_at", Value: 0.134}, {Key: "XHLA_at", Value: 0.066},
	{Key: "XHLB_at", Value: 0.018}, {Key: "XKDS_at", Value: 0.064}, {Key: "XLYA_at", Value: 0.024},
	{Key: "XTRA_at", Value: 0.195}, {Key: "YBFI_at", Value: -0.099}, {Key: "YCGO_at", Value: 0.348},
	{Key: "YCKE_at", Value: 0.132}, {Key: "YDDK_at", Value: -0.166}, {Key: "YEBC_at", Value: -0.281},
	{Key: "YEZB_at", Value: 0.008}, {Key: "YHCL_at", Value: -0.044}, {Key: "YOAB_at", Value: -0.447},
	{Key: "YRVJ_at", Value: -0.034}, {Key: "YURQ_at", Value: 0.105}, {Key: "YXLD_at", Value: -0.254},
	{Key: "YYDA_at", Value: -0.005},
}

func noTransitions() config.Config {
	return config.Config{EnableTransitions: config.Bool(false)}
}

func mustInit(t *testing.T, data []dataset.Raw, cfg config.Config, opts ...Option) *Chart {
	t.Helper()
	c := New(opts...)
	if err := c.Initialize(data, cfg); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return c
}

func mustState(t *testing.T, c *Chart) State {
	t.Helper()
	st, ok := c.State()
	if !ok {
		t.Fatal("State() not initialized")
	}
	return st
}

func barAttrsOf(t *testing.T, c *Chart, key string) scene.Attrs {
	t.Helper()
	e, ok := c.Snapshot().Bars.Get(key)
	if !ok {
		t.Fatalf("bar %q not rendered", key)
	}
	return e.Attrs
}

func finite(a scene.Attrs) bool {
	for _, v := range []float64{a.X, a.Y, a.Width, a.Height, a.Opacity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestNotInitialized(t *testing.T) {
	c := New()
	checks := map[string]error{
		"UpdateData":   c.UpdateData(genes),
		"UpdateSort":   c.UpdateSort(nil, nil),
		"UpdateColors": c.UpdateColors("", ""),
		"Resize":       c.Resize(800, 400),
		"Dispatch":     c.Dispatch(EventClick, "bars/YOAB_at"),
	}
	for name, err := range checks {
		if !errors.Is(err, errors.ErrCodeNotInitialized) {
			t.Errorf("%s() = %v, want NOT_INITIALIZED", name, err)
		}
	}
	if _, ok := c.State(); ok {
		t.Error("State() ok before Initialize")
	}
}

func TestInitializeWithoutTransitions(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	st := mustState(t, c)

	if c.Animating() {
		t.Error("Animating() = true, want false")
	}
	snap := c.Snapshot()
	if snap.Bars.Len() != 22 || snap.Labels.Len() != 22 {
		t.Fatalf("rendered %d bars, %d labels, want 22 each", snap.Bars.Len(), snap.Labels.Len())
	}
	for _, rec := range st.Dataset.Records {
		want := barAttrs{&st}.Target(rec)
		if got := barAttrsOf(t, c, rec.Key); got != want {
			t.Errorf("bar %s = %+v, want %+v", rec.Key, got, want)
		}
	}
	if got := st.Dataset.Labels[0]; got != "ARGF_at" {
		t.Errorf("first label = %q, want ARGF_at", got)
	}
	if snap.Width != 800 || snap.Height != 400 {
		t.Errorf("scene size = %vx%v, want 800x400", snap.Width, snap.Height)
	}
	if len(snap.Axis.Ticks) == 0 {
		t.Error("axis has no ticks")
	}
}

func TestInitialRenderIsStaggered(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	st := mustState(t, c)

	first := barAttrsOf(t, c, "ARGF_at")
	if first.Width != 0 || first.Fill != palette.PlaceholderFill || first.X != st.Scales.Zero() {
		t.Errorf("entering bar = %+v, want zero width white at the zero axis", first)
	}
	if first.Height != st.Scales.Band.Bandwidth() {
		t.Errorf("entering height = %v, want bandwidth %v", first.Height, st.Scales.Band.Bandwidth())
	}

	c.Advance(0)
	c.Advance(10 * time.Millisecond)
	if got := barAttrsOf(t, c, "DNAJ_at"); got.Width != 0 {
		t.Errorf("second bar started before its 25ms delay: %+v", got)
	}
	if got, want := c.Remaining(), 21*config.DefaultStagger+time.Second-10*time.Millisecond; got != want {
		t.Errorf("Remaining() = %v, want %v", got, want)
	}

	c.Flush()
	if c.Animating() {
		t.Error("Animating() after Flush")
	}
	rec, _ := st.Dataset.Lookup("DNAJ_at")
	if got, want := barAttrsOf(t, c, "DNAJ_at"), (barAttrs{&st}).Target(rec); got != want {
		t.Errorf("after Flush = %+v, want %+v", got, want)
	}
}

func TestZeroStaggerStartsTogether(t *testing.T) {
	c := mustInit(t, genes, config.Config{Stagger: config.Dur(0)})

	c.Advance(0)
	c.Advance(10 * time.Millisecond)
	if got := barAttrsOf(t, c, "DNAJ_at"); got.Width == 0 {
		t.Errorf("second bar still waiting with stagger disabled: %+v", got)
	}
	if got, want := c.Remaining(), time.Second-10*time.Millisecond; got != want {
		t.Errorf("Remaining() = %v, want %v", got, want)
	}
}

func TestUpdateSortEndToEnd(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	c.Flush()
	before := barAttrsOf(t, c, "YOAB_at")

	if err := c.UpdateSort(config.Bool(false), config.Bool(true)); err != nil {
		t.Fatalf("UpdateSort() error: %v", err)
	}
	st := mustState(t, c)
	labels := st.Scales.Band.Domain()
	if labels[0] != "YOAB_at" || labels[len(labels)-1] != "YCGO_at" {
		t.Errorf("band domain = %s..%s, want YOAB_at..YCGO_at", labels[0], labels[len(labels)-1])
	}
	if st.Dataset.DataMax != 0.447 {
		t.Errorf("DataMax = %v, want 0.447", st.Dataset.DataMax)
	}
	if st.Sort != (dataset.SortState{ByName: false, Ascending: true}) {
		t.Errorf("Sort = %v, want value-asc", st.Sort)
	}

	c.Flush()
	after := barAttrsOf(t, c, "YOAB_at")
	if after.X != before.X || after.Width != before.Width || after.Fill != before.Fill {
		t.Errorf("horizontal attrs changed: before %+v, after %+v", before, after)
	}
	if y, _ := st.Scales.Band.Position("YOAB_at"); after.Y != y {
		t.Errorf("Y = %v, want %v", after.Y, y)
	}
	if last := barAttrsOf(t, c, "YCGO_at"); !(last.Y > after.Y) {
		t.Errorf("YCGO_at Y = %v, want below YOAB_at (%v)", last.Y, after.Y)
	}
}

func TestUpdateSortKeepsNilComponents(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	if err := c.UpdateSort(nil, config.Bool(false)); err != nil {
		t.Fatalf("UpdateSort() error: %v", err)
	}
	st := mustState(t, c)
	if st.Sort != (dataset.SortState{ByName: true, Ascending: false}) {
		t.Errorf("Sort = %v, want name-desc", st.Sort)
	}
	if st.Dataset.Labels[0] != "YYDA_at" {
		t.Errorf("first label = %q, want YYDA_at", st.Dataset.Labels[0])
	}
}

func TestCycleSortLaw(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	want := []dataset.SortState{
		{ByName: false, Ascending: true},
		{ByName: true, Ascending: false},
		{ByName: false, Ascending: false},
		{ByName: true, Ascending: true},
	}
	for i, w := range want {
		got, err := c.CycleSort()
		if err != nil {
			t.Fatalf("CycleSort() error: %v", err)
		}
		if got != w {
			t.Errorf("CycleSort() #%d = %v, want %v", i+1, got, w)
		}
	}
}

func TestUpdateDataIdempotent(t *testing.T) {
	single := mustInit(t, genes, config.Config{})
	single.Flush()

	twice := mustInit(t, genes, config.Config{})
	twice.Advance(300 * time.Millisecond)
	for range 2 {
		if err := twice.UpdateData(genes); err != nil {
			t.Fatalf("UpdateData() error: %v", err)
		}
	}
	twice.Flush()

	a, b := single.Snapshot(), twice.Snapshot()
	if !slices.Equal(a.Bars.Live(), b.Bars.Live()) {
		t.Fatalf("keys differ: %v vs %v", a.Bars.Live(), b.Bars.Live())
	}
	for _, g := range []string{scene.GroupBars, scene.GroupLabels} {
		ga, _ := a.Group(g)
		gb, _ := b.Group(g)
		for _, e := range ga.Elements() {
			o, ok := gb.Get(e.Key)
			if !ok || o.Attrs != e.Attrs || o.Text != e.Text {
				t.Errorf("%s/%s = %+v, want %+v", g, e.Key, o, e)
			}
		}
	}
}

func TestUpdateDataPartitionLaw(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	c.Flush()

	next := []dataset.Raw{
		{Key: "YOAB_at", Value: 0.2},
		{Key: "YCGO_at", Value: -0.1},
		{Key: "NEW1_at", Value: 0.05},
	}
	if err := c.UpdateData(next); err != nil {
		t.Fatalf("UpdateData() error: %v", err)
	}

	mid := c.Snapshot()
	if got := mid.Bars.Len(); got != 23 {
		t.Errorf("elements mid-flight = %d, want 23 (3 live + 20 exiting)", got)
	}
	if got := len(mid.Bars.Live()); got != 3 {
		t.Errorf("live mid-flight = %d, want 3", got)
	}
	if c.Listeners().Has("bars/ARGF_at", EventMouseOver) {
		t.Error("exiting bar still has listeners")
	}
	entering, _ := mid.Bars.Get("NEW1_at")
	if entering.Attrs.Height != 0 || entering.Attrs.Fill != palette.PlaceholderFill {
		t.Errorf("entering bar = %+v, want zero height white", entering.Attrs)
	}

	c.Flush()
	snap := c.Snapshot()
	got := snap.Bars.Keys()
	slices.Sort(got)
	if want := []string{"NEW1_at", "YCGO_at", "YOAB_at"}; !slices.Equal(got, want) {
		t.Errorf("keys after convergence = %v, want %v", got, want)
	}
	if snap.Labels.Len() != 3 {
		t.Errorf("labels after convergence = %d, want 3", snap.Labels.Len())
	}
	if st := mustState(t, c); st.Dataset.DataMax != 0.2 {
		t.Errorf("DataMax = %v, want 0.2", st.Dataset.DataMax)
	}
}

func TestExitingBarRevives(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	c.Flush()

	if err := c.UpdateData(genes[:1]); err != nil {
		t.Fatal(err)
	}
	c.Advance(0)
	c.Advance(400 * time.Millisecond)
	if e, _ := c.Snapshot().Bars.Get("YOAB_at"); !e.Exiting {
		t.Fatal("YOAB_at not exiting")
	}

	if err := c.UpdateData(genes); err != nil {
		t.Fatal(err)
	}
	c.Flush()
	snap := c.Snapshot()
	if snap.Bars.Len() != 22 || len(snap.Bars.Live()) != 22 {
		t.Errorf("bars = %d (live %d), want 22", snap.Bars.Len(), len(snap.Bars.Live()))
	}
	st := mustState(t, c)
	rec, _ := st.Dataset.Lookup("YOAB_at")
	if got, want := barAttrsOf(t, c, "YOAB_at"), (barAttrs{&st}).Target(rec); got != want {
		t.Errorf("revived bar = %+v, want %+v", got, want)
	}
}

func TestEmptyDatasetKeepsDataMax(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	if err := c.UpdateData(nil); err != nil {
		t.Fatalf("UpdateData(nil) error: %v", err)
	}
	st := mustState(t, c)
	if st.Dataset.DataMax != 0.447 {
		t.Errorf("DataMax = %v, want 0.447", st.Dataset.DataMax)
	}
	if n := c.Snapshot().Bars.Len(); n != 0 {
		t.Errorf("bars = %d, want 0", n)
	}

	empty := mustInit(t, nil, noTransitions())
	if st := mustState(t, empty); st.Dataset.DataMax != dataset.DefaultDataMax {
		t.Errorf("empty DataMax = %v, want %v", st.Dataset.DataMax, dataset.DefaultDataMax)
	}
}

func TestInvalidDataLeavesStateUntouched(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	before := mustState(t, c)

	tests := []struct {
		name string
		data []dataset.Raw
		code errors.Code
	}{
		{"duplicate", []dataset.Raw{{Key: "a", Value: 1}, {Key: "a", Value: 2}}, errors.ErrCodeDuplicateKey},
		{"non-numeric", []dataset.Raw{{Key: "a", Value: "one"}}, errors.ErrCodeInvalidValue},
		{"missing value", []dataset.Raw{{Key: "a"}}, errors.ErrCodeInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.UpdateData(tt.data); !errors.Is(err, tt.code) {
				t.Errorf("UpdateData() = %v, want %s", err, tt.code)
			}
		})
	}
	if after := mustState(t, c); after.Dataset.Len() != before.Dataset.Len() {
		t.Errorf("dataset changed after rejected updates")
	}
}

func TestDegenerateDataMax(t *testing.T) {
	c := mustInit(t, []dataset.Raw{{Key: "a", Value: 0}, {Key: "b", Value: 0}}, noTransitions())
	st := mustState(t, c)
	if st.Dataset.DataMax != 0 {
		t.Fatalf("DataMax = %v, want 0", st.Dataset.DataMax)
	}
	a := barAttrsOf(t, c, "a")
	if !finite(a) {
		t.Fatalf("attrs not finite: %+v", a)
	}
	if a.Width != 0 {
		t.Errorf("Width = %v, want 0", a.Width)
	}
	if want := st.Colors[len(st.Colors)/2]; a.Fill != want {
		t.Errorf("Fill = %q, want palette midpoint %q", a.Fill, want)
	}
	if mid, _ := palette.Parse(palette.DefaultMid); a.Fill != mid.Hex() {
		t.Errorf("Fill = %q, want mid color %q", a.Fill, mid.Hex())
	}
}

func TestExtremeMagnitudes(t *testing.T) {
	data := []dataset.Raw{{Key: "huge", Value: 1e308}, {Key: "tiny", Value: -1e308}, {Key: "zero", Value: 0.0}}
	c := mustInit(t, data, noTransitions())
	st := mustState(t, c)
	for _, key := range []string{"huge", "tiny", "zero"} {
		if a := barAttrsOf(t, c, key); !finite(a) {
			t.Errorf("bar %s attrs not finite: %+v", key, a)
		}
	}
	if got := barAttrsOf(t, c, "huge").Fill; got != st.Colors[len(st.Colors)-1] {
		t.Errorf("huge fill = %q, want last color", got)
	}
	if got := barAttrsOf(t, c, "tiny").Fill; got != st.Colors[0] {
		t.Errorf("tiny fill = %q, want first color", got)
	}
}

func TestUpdateColors(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	if err := c.UpdateColors("", "#0000ff"); err != nil {
		t.Fatalf("UpdateColors() error: %v", err)
	}
	st := mustState(t, c)
	if st.Config.NegColor != palette.DefaultNeg {
		t.Errorf("NegColor = %q, want unchanged", st.Config.NegColor)
	}
	if got := st.Colors[len(st.Colors)-1]; got != "#0000ff" {
		t.Errorf("last color = %q, want #0000ff", got)
	}
	rec, _ := st.Dataset.Lookup("YCGO_at")
	if got, want := barAttrsOf(t, c, "YCGO_at").Fill, st.Scales.BarFill(rec.Value); got != want {
		t.Errorf("fill = %q, want %q", got, want)
	}

	if err := c.UpdateColors("nope", ""); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("UpdateColors(nope) = %v, want INVALID_COLOR", err)
	}
}

func TestResize(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	c.Advance(100 * time.Millisecond)

	if err := c.Resize(400, 0); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if c.Animating() {
		t.Error("Animating() after Resize, want instant reflow")
	}
	st := mustState(t, c)
	if st.Container.Width != 400 || st.Container.Height != 400 {
		t.Errorf("container = %vx%v, want 400x400", st.Container.Width, st.Container.Height)
	}
	for _, rec := range st.Dataset.Records {
		if got, want := barAttrsOf(t, c, rec.Key), (barAttrs{&st}).Target(rec); got != want {
			t.Errorf("bar %s = %+v, want %+v", rec.Key, got, want)
		}
	}
	if got := c.Snapshot().Width; got != 400 {
		t.Errorf("scene width = %v, want 400", got)
	}

	bandBefore := st.Scales.Band.Bandwidth()
	if err := c.Resize(400, 200); err != nil {
		t.Fatal(err)
	}
	if st := mustState(t, c); !(st.Scales.Band.Bandwidth() < bandBefore) {
		t.Errorf("bandwidth = %v, want smaller than %v after height shrink", st.Scales.Band.Bandwidth(), bandBefore)
	}
}

func TestResizeWidthOnlyKeepsHeight(t *testing.T) {
	c := mustInit(t, genes, config.Config{Height: 600}, WithScheduler(func(tg anim.Target) anim.Scheduler { return anim.NewImmediate(tg) }))
	before := mustState(t, c)

	if err := c.Resize(500, 0); err != nil {
		t.Fatalf("Resize(500, 0) error: %v", err)
	}
	st := mustState(t, c)
	if st.Container.Width != 500 || st.Container.Height != 600 {
		t.Errorf("container = %vx%v, want 500x600", st.Container.Width, st.Container.Height)
	}
	if got, want := st.Scales.Band.Bandwidth(), before.Scales.Band.Bandwidth(); got != want {
		t.Errorf("bandwidth = %v, want unchanged %v", got, want)
	}
	r0, r1 := st.Scales.Band.Range()
	w0, w1 := before.Scales.Band.Range()
	if r0 != w0 || r1 != w1 {
		t.Errorf("band range = [%v %v], want [%v %v]", r0, r1, w0, w1)
	}
	if st.Layout.MarginChartX >= before.Layout.MarginChartX {
		t.Errorf("chart width = %v, want narrower than %v", st.Layout.MarginChartX, before.Layout.MarginChartX)
	}
}

func TestResizeRejectsInvalidSizes(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	for _, size := range [][2]float64{{0, 400}, {-10, 400}, {800, -1}, {math.NaN(), 400}} {
		if err := c.Resize(size[0], size[1]); !errors.Is(err, errors.ErrCodeInvalidSize) {
			t.Errorf("Resize(%v, %v) = %v, want INVALID_SIZE", size[0], size[1], err)
		}
	}
	if err := c.Resize(3, 3); err != nil {
		t.Fatalf("Resize(3, 3) error: %v", err)
	}
	for _, key := range []string{"YOAB_at", "YCGO_at"} {
		if a := barAttrsOf(t, c, key); !finite(a) || a.Width < 0 {
			t.Errorf("bar %s attrs = %+v, want finite non-negative", key, a)
		}
	}
}

func TestResizeDropsExitingBars(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	c.Flush()
	if err := c.UpdateData(genes[:2]); err != nil {
		t.Fatal(err)
	}
	if err := c.Resize(600, 300); err != nil {
		t.Fatal(err)
	}
	if n := c.Snapshot().Bars.Len(); n != 2 {
		t.Errorf("bars after resize = %d, want 2", n)
	}
}

func TestHoverAndClick(t *testing.T) {
	c := mustInit(t, genes, noTransitions())

	if err := c.Dispatch(EventMouseOver, "bars/YOAB_at"); err != nil {
		t.Fatalf("mouseover error: %v", err)
	}
	snap := c.Snapshot()
	bar, _ := snap.Bars.Get("YOAB_at")
	label, _ := snap.Labels.Get("YOAB_at")
	if bar.Opacity() != HoverOpacity || !bar.Hovered || !label.Bold {
		t.Errorf("hover: opacity=%v bold=%v, want %v true", bar.Opacity(), label.Bold, HoverOpacity)
	}
	tip := c.Tooltip()
	if !tip.Visible || tip.Direction != "e" || tip.OffsetX != TooltipOffset {
		t.Errorf("tooltip = %+v, want visible east", tip)
	}
	if got := tip.Rows(); got[0] != [2]string{"Variable", "YOAB_at"} || got[1] != [2]string{"Coefficient", "-0.447"} {
		t.Errorf("Rows() = %v", got)
	}

	if err := c.Dispatch(EventMouseOut, "bars/YOAB_at"); err != nil {
		t.Fatal(err)
	}
	snap = c.Snapshot()
	bar, _ = snap.Bars.Get("YOAB_at")
	label, _ = snap.Labels.Get("YOAB_at")
	if bar.Opacity() != 1 || label.Bold || c.Tooltip().Visible {
		t.Errorf("mouseout: opacity=%v bold=%v tooltip=%v", bar.Opacity(), label.Bold, c.Tooltip().Visible)
	}

	if err := c.Dispatch(EventMouseOver, "bars/YCGO_at"); err != nil {
		t.Fatal(err)
	}
	if tip := c.Tooltip(); tip.Direction != "w" || tip.OffsetX != -TooltipOffset {
		t.Errorf("positive tooltip = %+v, want west", tip)
	}
	if err := c.Dispatch(EventClick, "bars/YCGO_at"); err != nil {
		t.Fatalf("click error: %v", err)
	}
	if c.Tooltip().Visible {
		t.Error("tooltip visible after click re-sort")
	}
	if st := mustState(t, c); st.Sort != (dataset.SortState{ByName: false, Ascending: true}) {
		t.Errorf("Sort after click = %v, want value-asc", st.Sort)
	}
}

func TestLabelHover(t *testing.T) {
	c := mustInit(t, genes, noTransitions())
	if err := c.Dispatch(EventMouseOver, "labels/XTRA_at"); err != nil {
		t.Fatal(err)
	}
	bar, _ := c.Snapshot().Bars.Get("XTRA_at")
	if bar.Opacity() != HoverOpacity {
		t.Errorf("bar opacity = %v, want %v", bar.Opacity(), HoverOpacity)
	}
	if c.Tooltip().Visible {
		t.Error("label hover must not show the tooltip")
	}
	if err := c.Dispatch(EventClick, "labels/XTRA_at"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("label click = %v, want NOT_FOUND", err)
	}
}

func TestImmediateScheduler(t *testing.T) {
	c := mustInit(t, genes, config.Config{}, WithScheduler(func(tg anim.Target) anim.Scheduler { return anim.NewImmediate(tg) }))
	st := mustState(t, c)
	rec, _ := st.Dataset.Lookup("LYSC_at")
	if got, want := barAttrsOf(t, c, "LYSC_at"), (barAttrs{&st}).Target(rec); got != want {
		t.Errorf("bar = %+v, want %+v", got, want)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %v, want 0", c.Remaining())
	}
}

func TestInitializeRejectsInvalidConfig(t *testing.T) {
	c := New()
	err := c.Initialize(genes, config.Config{PosColor: "not-a-color"})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Initialize() = %v, want INVALID_CONFIG", err)
	}
	if _, ok := c.State(); ok {
		t.Error("State() ok after rejected Initialize")
	}
}

func TestHoverSurvivesTransitions(t *testing.T) {
	c := mustInit(t, genes, config.Config{})
	c.Advance(100 * time.Millisecond)

	if err := c.Dispatch(EventMouseOver, "bars/ARGF_at"); err != nil {
		t.Fatal(err)
	}
	check := func(stage string) {
		t.Helper()
		bar, _ := c.Snapshot().Bars.Get("ARGF_at")
		if !c.Tooltip().Visible || bar.Opacity() != HoverOpacity {
			t.Errorf("%s: tooltip=%v opacity=%v, want visible and %v", stage, c.Tooltip().Visible, bar.Opacity(), HoverOpacity)
		}
	}

	c.Advance(100 * time.Millisecond)
	check("mid transition")
	c.Flush()
	check("after flush")

	if err := c.UpdateColors("#0000ff", ""); err != nil {
		t.Fatal(err)
	}
	c.Advance(300 * time.Millisecond)
	check("mid color change")
	c.Flush()
	check("after color change")
	if a := barAttrsOf(t, c, "ARGF_at"); a.Opacity != 1 {
		t.Errorf("animated opacity = %v, want 1", a.Opacity)
	}

	if err := c.Dispatch(EventMouseOut, "bars/ARGF_at"); err != nil {
		t.Fatal(err)
	}
	if bar, _ := c.Snapshot().Bars.Get("ARGF_at"); bar.Opacity() != 1 {
		t.Errorf("opacity after mouseout = %v, want 1", bar.Opacity())
	}
}
