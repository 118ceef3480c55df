package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/observability"
	"github.com/matzehuels/barchart/pkg/render/sink"
	"github.com/matzehuels/barchart/pkg/scene"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, s *scene.Scene, st chart.State, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(s, st, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(s *scene.Scene, st chart.State, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(st, opts)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...)}
		if !opts.Native {
			pngOpts = append(pngOpts, sink.WithRSVG())
		}
		return sink.RenderPNG(s, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(s,
			sink.WithJSONSort(st.Sort.String()),
			sink.WithJSONDataMax(st.Dataset.DataMax),
			sink.WithJSONIndent())
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func buildSVGOptions(st chart.State, opts Options) []sink.SVGOption {
	if !opts.Titles {
		return nil
	}
	return []sink.SVGOption{sink.WithTitles(st.Config.KeyTooltipLabel, st.Config.ValueTooltipLabel)}
}
