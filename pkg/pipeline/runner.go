package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	bario "github.com/matzehuels/barchart/pkg/io"
)

// Runner executes pipeline runs. It holds no chart state, so one Runner
// may serve concurrent runs with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	buildStart := time.Now()
	c, sorts, err := r.build(ctx, opts)
	if err != nil {
		return nil, err
	}
	st, _ := c.State()
	result := &Result{
		Scene: c.Snapshot(),
		State: st,
		Sorts: sorts,
	}
	result.Stats.Records = st.Dataset.Len()
	result.Stats.DataMax = st.Dataset.DataMax
	result.Stats.BuildTime = time.Since(buildStart)

	logger.Info("built chart",
		"records", result.Stats.Records,
		"sort", st.Sort,
		"data_max", st.Dataset.DataMax,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	artifacts, err := Render(ctx, result.Scene, st, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build loads the data and drives a new chart through the configured
// operations. The returned chart is positioned at opts.At.
func (r *Runner) Build(ctx context.Context, opts Options) (*chart.Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	c, _, err := r.build(ctx, opts)
	return c, err
}

func (r *Runner) build(ctx context.Context, opts Options) (*chart.Chart, []dataset.SortState, error) {
	logger := r.logger(opts)

	data, err := Load(opts.Input, opts.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("load: %w", err)
	}
	c := chart.New(chart.WithLogger(logger))
	if err := c.Initialize(data, opts.Config); err != nil {
		return nil, nil, fmt.Errorf("initialize: %w", err)
	}

	if opts.Then != "" || opts.ThenData != nil {
		next, err := Load(opts.Then, opts.ThenData)
		if err != nil {
			return nil, nil, fmt.Errorf("load update: %w", err)
		}
		c.Flush()
		if err := c.UpdateData(next); err != nil {
			return nil, nil, fmt.Errorf("update: %w", err)
		}
	}

	var sorts []dataset.SortState
	for range opts.Cycles {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		c.Flush()
		s, err := c.CycleSort()
		if err != nil {
			return nil, nil, fmt.Errorf("cycle: %w", err)
		}
		sorts = append(sorts, s)
	}

	if opts.At != nil {
		c.Advance(*opts.At)
	} else {
		c.Flush()
	}
	return c, sorts, nil
}

// Load returns the records at path, or data when path is empty.
func Load(path string, data []dataset.Raw) ([]dataset.Raw, error) {
	if path == "" {
		if data == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no input data")
		}
		return data, nil
	}
	return bario.ImportJSON(path)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
