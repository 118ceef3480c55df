package cli

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/palette"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/scene"
)

const (
	// cellWidth and cellHeight map one terminal cell to chart pixels.
	cellWidth  = 8.0
	cellHeight = 16.0

	// footerLines is the space kept below the chart for status and help.
	footerLines = 4

	frameInterval = 33 * time.Millisecond
)

// viewPalettes are the end colors cycled by the "c" key.
var viewPalettes = [][2]string{
	{palette.DefaultNeg, palette.DefaultPos},
	{"#d7191c", "#2c7bb6"},
	{"purple", "orange"},
}

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "view [file...]",
		Short: "Explore datasets in an animated terminal chart",
		Long: `View draws the chart in the terminal and animates every change.

Keys:
  ↑/↓ or k/j   select a bar and show its tooltip
  enter/space  click the selected bar (advance the sort cycle)
  n            switch to the next dataset
  c            switch to the next color palette
  q            quit`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")

	return cmd
}

func (c *CLI) runView(ctx context.Context, inputs []string, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	datasets := make([][]dataset.Raw, len(inputs))
	for i, in := range inputs {
		if datasets[i], err = pipeline.Load(in, nil); err != nil {
			return err
		}
	}

	// The alternate screen owns the terminal; chart logs would corrupt it.
	ch := chart.New(
		chart.WithLogger(log.NewWithOptions(io.Discard, log.Options{})),
		chart.WithMeasurer(cellMeasurer{}),
	)
	if err := ch.Initialize(datasets[0], cfg); err != nil {
		return err
	}

	m := newViewModel(ch, datasets, inputs)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// viewModel - bubbletea model driving a chart
// =============================================================================

type frameMsg time.Time

// cellMeasurer sizes labels in whole terminal cells.
type cellMeasurer struct{}

func (cellMeasurer) Width(text string, _ float64) float64 {
	return float64(utf8.RuneCountInString(text)) * cellWidth
}

type viewModel struct {
	chart    *chart.Chart
	datasets [][]dataset.Raw
	names    []string
	current  int
	palette  int

	cols, rows int
	cursor     int
	hovered    string
	last       time.Time
	err        error
}

func newViewModel(c *chart.Chart, datasets [][]dataset.Raw, names []string) viewModel {
	return viewModel{chart: c, datasets: datasets, names: names, cursor: -1}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m viewModel) Init() tea.Cmd {
	return frameTick()
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.chart.Advance(now.Sub(m.last))
		}
		m.last = now
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		chartRows := max(2, m.rows-footerLines)
		m.err = m.chart.Resize(float64(m.cols)*cellWidth, float64(chartRows)*cellHeight)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "enter", " ":
			m.click()
		case "n":
			m.current = (m.current + 1) % len(m.datasets)
			m.hovered, m.cursor = "", -1
			m.err = m.chart.UpdateData(m.datasets[m.current])
		case "c":
			m.palette = (m.palette + 1) % len(viewPalettes)
			p := viewPalettes[m.palette]
			m.err = m.chart.UpdateColors(p[0], p[1])
		}
	}
	return m, nil
}

// moveCursor hovers the bar delta rows away from the current one.
func (m *viewModel) moveCursor(delta int) {
	st, ok := m.chart.State()
	if !ok || len(st.Dataset.Labels) == 0 {
		return
	}
	n := len(st.Dataset.Labels)
	switch {
	case m.cursor >= 0:
		m.cursor = (m.cursor + delta + n) % n
	case delta > 0:
		m.cursor = 0
	default:
		m.cursor = n - 1
	}
	if m.hovered != "" {
		_ = m.chart.Dispatch(chart.EventMouseOut, scene.ID(scene.GroupBars, m.hovered))
	}
	m.hovered = st.Dataset.Labels[m.cursor]
	m.err = m.chart.Dispatch(chart.EventMouseOver, scene.ID(scene.GroupBars, m.hovered))
}

// click sends a click to the hovered bar, or cycles the sort directly when
// nothing is selected.
func (m *viewModel) click() {
	if m.hovered == "" {
		_, m.err = m.chart.CycleSort()
		return
	}
	m.err = m.chart.Dispatch(chart.EventClick, scene.ID(scene.GroupBars, m.hovered))
	m.hovered, m.cursor = "", -1
}

func (m viewModel) View() string {
	var b strings.Builder
	s := m.chart.Snapshot()
	cols, rows := m.cols, m.rows-footerLines
	if cols <= 0 {
		cols, rows = int(s.Width/cellWidth), int(s.Height/cellHeight)
	}
	b.WriteString(renderFrame(s, cols, max(rows, 2)))
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

func (m viewModel) status() string {
	var b strings.Builder
	st, _ := m.chart.State()
	name := filepath.Base(m.names[m.current])
	b.WriteString(StyleTitle.Render(name))
	b.WriteString(formatStats(st.Dataset.Len(), st.Dataset.DataMax, st.Sort.String()))
	b.WriteString("\n")

	if tip := m.chart.Tooltip(); tip.Visible {
		for _, row := range tip.Rows() {
			b.WriteString(StyleDim.Render(row[0]+": ") + StyleValue.Render(row[1]) + "  ")
		}
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  ⏎ click  n next dataset  c colors  q quit"))
	return b.String()
}

// =============================================================================
// Frame rasterizer
// =============================================================================

type cell struct {
	r    rune
	fg   string
	bold bool
}

type frame struct {
	cols  int
	cells [][]cell
}

func newFrame(cols, rows int) *frame {
	f := &frame{cols: cols, cells: make([][]cell, rows)}
	for i := range f.cells {
		f.cells[i] = make([]cell, cols)
		for j := range f.cells[i] {
			f.cells[i][j].r = ' '
		}
	}
	return f
}

func (f *frame) set(row, col int, c cell) {
	if row < 0 || row >= len(f.cells) || col < 0 || col >= f.cols {
		return
	}
	f.cells[row][col] = c
}

func (f *frame) text(row, col int, s string, fg string, bold bool) {
	for i, r := range []rune(s) {
		f.set(row, col+i, cell{r: r, fg: fg, bold: bold})
	}
}

func (f *frame) String() string {
	lines := make([]string, len(f.cells))
	for i, row := range f.cells {
		var b strings.Builder
		for j := 0; j < len(row); {
			k := j
			var run strings.Builder
			for k < len(row) && row[k].fg == row[j].fg && row[k].bold == row[j].bold {
				run.WriteRune(row[k].r)
				k++
			}
			style := lipgloss.NewStyle().Bold(row[j].bold)
			if row[j].fg != "" {
				style = style.Foreground(lipgloss.Color(row[j].fg))
			}
			b.WriteString(style.Render(run.String()))
			j = k
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// renderFrame rasterizes s into a grid of cols×rows terminal cells.
func renderFrame(s *scene.Scene, cols, rows int) string {
	f := newFrame(cols, rows)
	sx := func(x float64) int { return int(math.Round(x / cellWidth)) }
	sy := func(y float64) int { return int(math.Floor(y / cellHeight)) }

	a := s.Axis
	ax, ay := s.Margin.Left+a.Anchor.X, s.Margin.Top+a.Anchor.Y
	for _, t := range a.Ticks {
		col := sx(ax + t.Pos)
		f.text(sy(ay)-1, col-len(t.Label)/2, t.Label, string(colorGray), false)
	}

	lx, ly := s.Margin.Left+s.Labels.Anchor.X, s.Margin.Top+s.Labels.Anchor.Y
	for _, e := range s.Labels.Elements() {
		if e.Attrs.Opacity < 0.5 || e.Text == "" {
			continue
		}
		end := sx(lx + e.Attrs.X)
		f.text(sy(ly+e.Attrs.Y), end-len([]rune(e.Text))-1, e.Text, "", e.Bold)
	}

	bx, by := s.Margin.Left+s.Bars.Anchor.X, s.Margin.Top+s.Bars.Anchor.Y
	for _, e := range s.Bars.Elements() {
		at := e.Attrs
		if e.Opacity() == 0 || at.Width <= 0 {
			continue
		}
		c0, c1 := sx(bx+at.X), sx(bx+at.X+at.Width)
		if c1 == c0 {
			c1 = c0 + 1
		}
		glyph := '█'
		if e.Opacity() < 1 {
			glyph = '▒'
		}
		fill := at.Fill
		if c, err := palette.Parse(fill); err == nil {
			fill = c.Hex()
		}
		row := sy(by + at.Y + at.Height/2)
		for col := c0; col < c1; col++ {
			f.set(row, col, cell{r: glyph, fg: fill})
		}
	}
	return f.String()
}
