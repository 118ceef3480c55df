package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/pipeline"
)

// defaultCycleSteps walks the cycle once and returns to the start.
const defaultCycleSteps = 4

type cycleRow struct {
	step  int
	sort  string
	first string
	last  string
}

// cycleCommand creates the cycle command that prints the click-to-resort sequence.
func (c *CLI) cycleCommand() *cobra.Command {
	var (
		steps      int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "cycle [file]",
		Short: "Print the click-to-resort sort sequence",
		Long: `Cycle prints the sort state after each bar click. With a dataset it also
shows the first and last label of every resulting order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runCycle(cmd.Context(), input, configPath, steps)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", defaultCycleSteps, "number of clicks to simulate")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")

	return cmd
}

func (c *CLI) runCycle(ctx context.Context, input, configPath string, steps int) error {
	if steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", steps)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	var data []dataset.Raw
	if input != "" {
		if data, err = pipeline.Load(input, nil); err != nil {
			return err
		}
	}
	rows, err := cycleSteps(data, cfg, steps, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	fmt.Println(StyleTitle.Render("Sort cycle"))
	fmt.Println(renderCycleTable(rows, data != nil))
	return nil
}

// cycleSteps returns the initial sort state followed by one row per click.
// Without data only the sort states are filled in.
func cycleSteps(data []dataset.Raw, cfg config.Config, steps int, logger *log.Logger) ([]cycleRow, error) {
	rows := make([]cycleRow, 0, steps+1)
	if data == nil {
		s := cfg.WithDefaults().Sort()
		rows = append(rows, cycleRow{step: 0, sort: s.String()})
		for i := 1; i <= steps; i++ {
			s = s.Cycle()
			rows = append(rows, cycleRow{step: i, sort: s.String()})
		}
		return rows, nil
	}

	c := chart.New(chart.WithLogger(logger))
	if err := c.Initialize(data, cfg); err != nil {
		return nil, err
	}
	row := func(step int) cycleRow {
		st, _ := c.State()
		r := cycleRow{step: step, sort: st.Sort.String()}
		if n := len(st.Dataset.Labels); n > 0 {
			r.first, r.last = st.Dataset.Labels[0], st.Dataset.Labels[n-1]
		}
		return r
	}
	rows = append(rows, row(0))
	for i := 1; i <= steps; i++ {
		c.Flush()
		if _, err := c.CycleSort(); err != nil {
			return nil, err
		}
		rows = append(rows, row(i))
	}
	return rows, nil
}

func renderCycleTable(rows []cycleRow, labels bool) string {
	headers := []string{"Click", "Sort"}
	if labels {
		headers = append(headers, "First", "Last")
	}
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{strconv.Itoa(r.step), r.sort}
		if labels {
			data[i] = append(data[i], r.first, r.last)
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleNumber
			case col == 1:
				return StyleHighlight
			}
			return StyleValue
		}).
		Render()
}
