package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/palette"
	"github.com/matzehuels/barchart/pkg/render"
	"github.com/matzehuels/barchart/pkg/scene"
)

// Raster limits. A frame beyond MaxPixels is rejected instead of allocated.
const (
	MaxScale  = 8.0
	MaxPixels = 64 << 20
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithPNGSVGOptions passes options through to the SVG renderer used by
// [WithRSVG].
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
// It must be finite and in (0, MaxScale].
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG rasterizes the SVG output with rsvg-convert instead of drawing
// natively.
func WithRSVG() PNGOption { return func(r *pngRenderer) { r.rsvg = true } }

var (
	gridColor = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	textColor = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// RenderPNG renders s as a PNG image.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if err := ValidateScale(r.scale); err != nil {
		return nil, err
	}
	fw, fh := math.Ceil(s.Width*r.scale), math.Ceil(s.Height*r.scale)
	if !(fw*fh <= MaxPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png of %vx%v pixels exceeds %d pixels", fw, fh, MaxPixels)
	}
	if r.rsvg {
		return render.ToPNG(RenderSVG(s, r.svgOpts...), r.scale)
	}

	w, h := max(1, int(fw)), max(1, int(fh))
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(s.Margin.Left, s.Margin.Top)
	dc.SetFontFace(basicfont.Face7x13)

	drawAxis(dc, s)
	drawLabels(dc, s.Labels)
	drawBars(dc, s.Bars)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// ValidateScale checks a PNG scale factor.
func ValidateScale(scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 1) || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, %v], got %v", MaxScale, scale)
	}
	return nil
}

func drawAxis(dc *gg.Context, s *scene.Scene) {
	a := s.Axis
	dc.SetLineWidth(1)
	dc.SetColor(gridColor)
	for _, t := range a.Ticks {
		x := a.Anchor.X + t.Pos
		dc.DrawLine(x, a.Anchor.Y, x, a.Anchor.Y-a.TickSize)
	}
	dc.DrawLine(a.LineX, a.LineY0, a.LineX, a.LineY1)
	dc.Stroke()

	dc.SetColor(textColor)
	for _, t := range a.Ticks {
		dc.DrawStringAnchored(t.Label, a.Anchor.X+t.Pos, a.Anchor.Y-3, 0.5, 0)
	}
}

func drawLabels(dc *gg.Context, g *scene.Group) {
	for _, e := range g.Elements() {
		if e.Text == "" || e.Attrs.Opacity <= 0 {
			continue
		}
		dc.SetRGBA(0.2, 0.2, 0.2, e.Attrs.Opacity)
		x, y := g.Anchor.X+e.Attrs.X, g.Anchor.Y+e.Attrs.Y
		dc.DrawStringAnchored(e.Text, x, y, 1, 0.35)
		if e.Bold {
			dc.DrawStringAnchored(e.Text, x+0.5, y, 1, 0.35)
		}
	}
}

func drawBars(dc *gg.Context, g *scene.Group) {
	for _, e := range g.Elements() {
		a := e.Attrs
		if a.Width <= 0 || a.Height <= 0 {
			continue
		}
		c, err := palette.Parse(a.Fill)
		if err != nil {
			c, _ = palette.Parse(palette.PlaceholderFill)
		}
		dc.SetRGBA(c.R, c.G, c.B, e.Opacity())
		dc.DrawRectangle(g.Anchor.X+a.X, g.Anchor.Y+a.Y, a.Width, a.Height)
		dc.Fill()
	}
}
