package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/barchart/pkg/scale"
	"github.com/matzehuels/barchart/pkg/scene"
)

const chartCSS = `
    .bar { transition: opacity 0.2s ease; }
    .bar:hover { opacity: 0.5; }
    .label { font-family: sans-serif; }
    .label.bold { font-weight: bold; }
    .tick line, .labels-tick-line { stroke: #ccc; shape-rendering: crispEdges; }
    .tick text { font-family: sans-serif; fill: #555; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	keyLabel   string
	valueLabel string
	titles     bool
	style      bool
}

// WithTitles adds a tooltip title to every bar with the given captions.
func WithTitles(keyLabel, valueLabel string) SVGOption {
	return func(r *svgRenderer) { r.titles, r.keyLabel, r.valueLabel = true, keyLabel, valueLabel }
}

// WithoutStyle omits the embedded stylesheet.
func WithoutStyle() SVGOption { return func(r *svgRenderer) { r.style = false } }

// RenderSVG renders s as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{style: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(s.Width), num(s.Height), s.Width, s.Height)
	if r.style {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", num(s.Margin.Left), num(s.Margin.Top))

	// Axis first so bars are drawn on top.
	renderAxis(&buf, s.Axis)
	fmt.Fprintf(&buf, `    <path class="labels-tick-line" d="M %s %s L %s %s"/>`+"\n",
		num(s.Axis.LineX), num(s.Axis.LineY0), num(s.Axis.LineX), num(s.Axis.LineY1))
	renderLabels(&buf, s.Labels)
	renderBars(&buf, s.Bars, &r)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderAxis(buf *bytes.Buffer, a scene.Axis) {
	fmt.Fprintf(buf, `    <g class="axis" transform="translate(%s,%s)" font-size="%d" text-anchor="middle">`+"\n",
		num(a.Anchor.X), num(a.Anchor.Y), axisFontSize)
	for _, t := range a.Ticks {
		fmt.Fprintf(buf, `      <g class="tick" transform="translate(%s,0)"><line y2="%s"/><text y="-3">%s</text></g>`+"\n",
			num(t.Pos), num(-a.TickSize), escapeXML(t.Label))
	}
	buf.WriteString("    </g>\n")
}

func renderLabels(buf *bytes.Buffer, g *scene.Group) {
	fmt.Fprintf(buf, `    <g class="labels" transform="translate(%s,%s)" text-anchor="end">`+"\n", num(g.Anchor.X), num(g.Anchor.Y))
	for _, e := range g.Elements() {
		class := "label"
		if e.Bold {
			class += " bold"
		}
		fmt.Fprintf(buf, `      <text id="%s" class="%s" x="%s" y="%s" dy="0.35em" font-size="%s" opacity="%s">%s</text>`+"\n",
			escapeXML(e.ID), class, num(e.Attrs.X), num(e.Attrs.Y), num(e.Attrs.Height), num(e.Attrs.Opacity), escapeXML(e.Text))
	}
	buf.WriteString("    </g>\n")
}

func renderBars(buf *bytes.Buffer, g *scene.Group, r *svgRenderer) {
	fmt.Fprintf(buf, `    <g class="bars" transform="translate(%s,%s)">`+"\n", num(g.Anchor.X), num(g.Anchor.Y))
	for _, e := range g.Elements() {
		fmt.Fprintf(buf, `      <rect id="%s" class="bar" x="%s" y="%s" width="%s" height="%s" fill="%s" opacity="%s"`,
			escapeXML(e.ID), num(e.Attrs.X), num(e.Attrs.Y), num(e.Attrs.Width), num(e.Attrs.Height), escapeXML(e.Attrs.Fill), num(e.Opacity()))
		if !r.titles {
			buf.WriteString("/>\n")
			continue
		}
		fmt.Fprintf(buf, "><title>%s: %s\n%s: %s</title></rect>\n",
			escapeXML(r.keyLabel), escapeXML(e.Key), escapeXML(r.valueLabel), scale.FormatValue(e.Value))
	}
	buf.WriteString("    </g>\n")
}

const axisFontSize = 10

func num(v float64) string { return fmt.Sprintf("%.2f", v) }

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
