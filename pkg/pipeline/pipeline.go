// Package pipeline drives the chart for batch use: load records, build the
// chart, play its transitions to a point in time and render the resulting
// frame.
//
// The CLI render, cycle and serve commands all go through this package so
// that every entry point produces the same frames for the same inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "genes.json",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	c, err := runner.Build(ctx, opts)
//	artifacts, err := pipeline.Render(ctx, c.Snapshot(), state, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/render/sink"
	"github.com/matzehuels/barchart/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the PNG pixel ratio.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidSorts lists the accepted sort names in cycle order.
var ValidSorts = []string{"name-asc", "value-asc", "name-desc", "value-desc"}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input is a JSON records file. Data is used instead when Input is empty.
	Input string        `json:"input,omitempty"`
	Data  []dataset.Raw `json:"data,omitempty"`

	// Then is applied as a data update once the initial transition settled.
	Then     string        `json:"then,omitempty"`
	ThenData []dataset.Raw `json:"then_data,omitempty"`

	Config config.Config `json:"config"`

	// Sort overrides the configured initial order, e.g. "value-desc".
	Sort string `json:"sort,omitempty"`

	// Cycles is the number of click-to-resort steps applied last.
	Cycles int `json:"cycles,omitempty"`

	// At advances the final transition by this much. Nil settles it.
	At *time.Duration `json:"at,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Titles  bool     `json:"titles,omitempty"`

	// Native draws PNGs with the built-in rasterizer instead of rsvg-convert.
	Native bool `json:"native,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the rendered frame.
	Scene *scene.Scene

	// State is the chart state after the last operation.
	State chart.State

	// Sorts lists the sort state after each cycle step.
	Sorts []dataset.SortState

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	DataMax    float64
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation
// =============================================================================

// ValidateAndSetDefaults fills defaults and validates the options.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.Config = o.Config.WithDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := sink.ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Cycles < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cycles must not be negative, got %d", o.Cycles)
	}
	if o.At != nil && *o.At < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at must not be negative, got %v", *o.At)
	}
	if o.Sort != "" {
		s, err := ParseSort(o.Sort)
		if err != nil {
			return err
		}
		o.Config.ByName = config.Bool(s.ByName)
		o.Config.Ascending = config.Bool(s.Ascending)
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	return errors.ValidateFormats([]string{format}, ValidFormats)
}

// ValidateFormats checks a list of output formats. Empty is allowed and
// means the default.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return nil
	}
	return errors.ValidateFormats(formats, ValidFormats)
}

// ParseSort converts a sort name such as "value-desc" to a sort state.
func ParseSort(name string) (dataset.SortState, error) {
	for _, s := range []dataset.SortState{
		{ByName: true, Ascending: true},
		{ByName: true, Ascending: false},
		{ByName: false, Ascending: true},
		{ByName: false, Ascending: false},
	} {
		if s.String() == name {
			return s, nil
		}
	}
	return dataset.SortState{}, errors.New(errors.ErrCodeInvalidInput, "invalid sort: %q", name)
}
