// Package config holds the chart configuration: colors, palette size,
// initial sort state, transitions and container size.
//
// Every field is optional. Zero values mean "use the default", which is why
// the boolean options are pointers: an unset ByName is distinguishable from
// an explicit false. Configurations load from TOML:
//
//	neg_color = "#dc3912"
//	mid_color = "lightgrey"
//	pos_color = "#109618"
//	num_colors = 256
//	by_name = false
//	duration = "750ms"
//
// Use [Config.WithDefaults] to resolve zero values and [Config.Validate]
// before handing a configuration to a chart.
package config

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/layout"
	"github.com/matzehuels/barchart/pkg/palette"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDuration is the length of data-driven transitions.
	DefaultDuration = 1000 * time.Millisecond

	// DefaultStagger is the per-index delay of the first render.
	DefaultStagger = 25 * time.Millisecond

	// DefaultLocale drives name comparison.
	DefaultLocale = "en"

	// DefaultKeyTooltipLabel and DefaultValueTooltipLabel caption the tooltip rows.
	DefaultKeyTooltipLabel   = "Variable"
	DefaultValueTooltipLabel = "Coefficient"
)

// =============================================================================
// Config
// =============================================================================

// Config is the chart configuration.
type Config struct {
	NegColor  string `toml:"neg_color" json:"neg_color,omitempty"`
	MidColor  string `toml:"mid_color" json:"mid_color,omitempty"`
	PosColor  string `toml:"pos_color" json:"pos_color,omitempty"`
	NumColors int    `toml:"num_colors" json:"num_colors,omitempty"`

	DefaultDataMax float64 `toml:"default_data_max" json:"default_data_max,omitempty"`

	ByName    *bool `toml:"by_name" json:"by_name,omitempty"`
	Ascending *bool `toml:"ascending" json:"ascending,omitempty"`

	EnableTransitions *bool     `toml:"enable_transitions" json:"enable_transitions,omitempty"`
	Duration          Duration  `toml:"duration" json:"duration,omitempty"`
	// Stagger nil means DefaultStagger; an explicit zero disables the
	// initial stagger.
	Stagger           *Duration `toml:"stagger" json:"stagger,omitempty"`

	// Width zero means responsive: the container default is used until the
	// first resize.
	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`

	Locale        string `toml:"locale" json:"locale,omitempty"`
	LabelStrategy string `toml:"label_strategy" json:"label_strategy,omitempty"`

	KeyTooltipLabel   string `toml:"key_tooltip_label" json:"key_tooltip_label,omitempty"`
	ValueTooltipLabel string `toml:"value_tooltip_label" json:"value_tooltip_label,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Dur returns a pointer to d as a Duration.
func Dur(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

// Default returns a fully resolved default configuration.
func Default() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns c with every zero-valued field replaced by its default.
func (c Config) WithDefaults() Config {
	if c.NegColor == "" {
		c.NegColor = palette.DefaultNeg
	}
	if c.MidColor == "" {
		c.MidColor = palette.DefaultMid
	}
	if c.PosColor == "" {
		c.PosColor = palette.DefaultPos
	}
	if c.NumColors == 0 {
		c.NumColors = palette.DefaultNumColors
	}
	if c.DefaultDataMax == 0 {
		c.DefaultDataMax = dataset.DefaultDataMax
	}
	if c.ByName == nil {
		c.ByName = Bool(dataset.DefaultSort.ByName)
	}
	if c.Ascending == nil {
		c.Ascending = Bool(dataset.DefaultSort.Ascending)
	}
	if c.EnableTransitions == nil {
		c.EnableTransitions = Bool(true)
	}
	if c.Duration == 0 {
		c.Duration = Duration(DefaultDuration)
	}
	if c.Stagger == nil {
		c.Stagger = Dur(DefaultStagger)
	}
	if c.Width == 0 {
		c.Width = layout.DefaultWidth
	}
	if c.Height == 0 {
		c.Height = layout.DefaultHeight
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.LabelStrategy == "" {
		c.LabelStrategy = string(layout.StrategyMeasured)
	}
	if c.KeyTooltipLabel == "" {
		c.KeyTooltipLabel = DefaultKeyTooltipLabel
	}
	if c.ValueTooltipLabel == "" {
		c.ValueTooltipLabel = DefaultValueTooltipLabel
	}
	return c
}

// Validate checks the resolved configuration. Call it on the result of
// [Config.WithDefaults].
func (c Config) Validate() error {
	colors := []struct{ name, value string }{
		{"neg_color", c.NegColor}, {"mid_color", c.MidColor}, {"pos_color", c.PosColor},
	}
	for _, col := range colors {
		if _, err := palette.Parse(col.value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", col.name)
		}
	}
	if c.NumColors < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "num_colors must be at least 1, got %d", c.NumColors)
	}
	if !(c.DefaultDataMax > 0) || math.IsInf(c.DefaultDataMax, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "default_data_max must be positive and finite, got %v", c.DefaultDataMax)
	}
	if c.Duration < 0 || c.StaggerDelay() < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "duration and stagger must not be negative")
	}
	if err := errors.ValidateSize(c.Width, c.Height); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "locale %q", c.Locale)
	}
	if !layout.Strategy(c.LabelStrategy).Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "label_strategy must be one of measured, fraction, got %q", c.LabelStrategy)
	}
	return nil
}

// StaggerDelay returns the per-index delay of the first render, zero when
// Stagger is unset.
func (c Config) StaggerDelay() time.Duration {
	if c.Stagger == nil {
		return 0
	}
	return c.Stagger.Std()
}

// Sort returns the initial sort state.
func (c Config) Sort() dataset.SortState {
	return dataset.DefaultSort.Apply(c.ByName, c.Ascending)
}

// Transitions reports whether animated transitions are enabled.
func (c Config) Transitions() bool {
	return c.EnableTransitions == nil || *c.EnableTransitions
}

// Language returns the collation locale, falling back to English.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// =============================================================================
// Loading
// =============================================================================

// Load reads a TOML configuration file. The result is not resolved against
// defaults.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config")
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses TOML from r. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undec[0].String())
	}
	return c, nil
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	if o.NegColor != "" {
		c.NegColor = o.NegColor
	}
	if o.MidColor != "" {
		c.MidColor = o.MidColor
	}
	if o.PosColor != "" {
		c.PosColor = o.PosColor
	}
	if o.NumColors != 0 {
		c.NumColors = o.NumColors
	}
	if o.DefaultDataMax != 0 {
		c.DefaultDataMax = o.DefaultDataMax
	}
	if o.ByName != nil {
		c.ByName = o.ByName
	}
	if o.Ascending != nil {
		c.Ascending = o.Ascending
	}
	if o.EnableTransitions != nil {
		c.EnableTransitions = o.EnableTransitions
	}
	if o.Duration != 0 {
		c.Duration = o.Duration
	}
	if o.Stagger != nil {
		c.Stagger = o.Stagger
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Locale != "" {
		c.Locale = o.Locale
	}
	if o.LabelStrategy != "" {
		c.LabelStrategy = o.LabelStrategy
	}
	if o.KeyTooltipLabel != "" {
		c.KeyTooltipLabel = o.KeyTooltipLabel
	}
	if o.ValueTooltipLabel != "" {
		c.ValueTooltipLabel = o.ValueTooltipLabel
	}
	return c
}
