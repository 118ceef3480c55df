package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	configPath string         // TOML config file
	output     string         // output file path (or base path for multiple outputs)
	formats    []string       // output formats: "svg", "pdf", "png", "json"
	sort       string         // initial sort, e.g. "value-desc"
	width      float64        // container width in pixels
	height     float64        // container height in pixels
	then       string         // dataset applied as an update after the first
	at         *time.Duration // point in the last transition to capture
	scale      float64        // PNG pixel ratio
	titles     bool           // embed hover titles in SVG bars
	native     bool           // rasterize PNG without rsvg-convert
}

// renderCommand creates the render command for writing chart frames.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var at time.Duration
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a dataset to SVG, PNG, PDF or JSON",
		Long: `Render draws the chart for a JSON dataset and writes one file per format.

With --then the chart first settles on the input, then transitions to the
second dataset. --at captures that transition part-way through instead of
its end state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("at") {
				opts.at = &at
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file (default ~/.config/barchart/config.toml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "initial sort: name-asc, name-desc, value-asc, value-desc")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width (default 800)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "container height (default 400)")
	cmd.Flags().StringVar(&opts.then, "then", "", "dataset to transition to after the input")
	cmd.Flags().DurationVar(&at, "at", 0, "capture the last transition after this long, e.g. 500ms")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel ratio, at most 8")
	cmd.Flags().BoolVar(&opts.titles, "titles", false, "embed key/value titles in SVG bars")
	cmd.Flags().BoolVar(&opts.native, "native", false, "rasterize PNG without rsvg-convert")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(pipeline.ValidSorts, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender builds the chart for input and writes every requested artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg = cfg.Merge(config.Config{Width: opts.width, Height: opts.height})

	if slices.Contains(opts.formats, pipeline.FormatPNG) && !opts.native && !render.Available() {
		printWarning("rsvg-convert not found, rasterizing PNG natively")
		opts.native = true
	}

	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Input:   input,
		Then:    opts.then,
		Config:  cfg,
		Sort:    opts.sort,
		At:      opts.at,
		Formats: opts.formats,
		Scale:   opts.scale,
		Titles:  opts.titles,
		Native:  opts.native,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.formats, opts.output, input)
	if err != nil {
		return err
	}
	if opts.output == "-" {
		return nil
	}

	prog.done(fmt.Sprintf("Rendered %s", input))
	printStats(result.Stats.Records, result.Stats.DataMax, result.State.Sort.String())
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order. Output "-" writes a single artifact to stdout.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	if output == "-" {
		if len(formats) != 1 {
			return nil, fmt.Errorf("stdout output requires exactly one format, got %d", len(formats))
		}
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range slices.Compact(slices.Clone(formats)) {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
