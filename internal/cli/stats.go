package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashchart/pkg/chart"
)

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

func (c *CLI) statsCommand() *cobra.Command {
	var src sourceFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [stats.json]",
		Short: "Print the rule counts a snapshot contains",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runStats(cmd.Context(), input, src, asJSON)
		},
	}
	cmd.Flags().StringVar(&src.mongoURI, "mongo-uri", "", "aggregate statistics from this MongoDB")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the normalized snapshot as JSON")
	return cmd
}

func (c *CLI) runStats(ctx context.Context, input string, f sourceFlags, asJSON bool) error {
	src, name, closeSrc, err := c.openSource(ctx, input, f)
	if err != nil {
		return err
	}
	defer closeSrc()

	s, err := src.Stats(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		data, err := s.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	theme := chart.DefaultTheme()
	if t := c.cfg().Theme; t != nil {
		theme = t.Resolve()
	}
	fmt.Println(StyleTitle.Render("Rules by category") + StyleDim.Render(" ("+name+")"))
	fmt.Println(categoryTable(s.Categories, theme))
	fmt.Println()
	fmt.Println(StyleTitle.Render("Rules by severity"))
	fmt.Println(severityTable(s.Severities, theme))
	fmt.Println()
	printKeyValue("total rules", StyleNumber.Render(strconv.Itoa(s.TotalRules)))
	for _, w := range s.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// categoryTable lists every category with its share of the total. Rows past
// the chart's bar limit are dimmed: they are counted but not drawn.
func categoryTable(ds chart.Dataset, theme chart.Theme) string {
	total := ds.Total()
	limit := chart.DefaultMetrics().MaxBars
	rows := make([][]string, 0, len(ds))
	for i, e := range ds {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Label, strconv.Itoa(e.Value), share(e.Value, total)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Category", "Rules", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return styleHeader.Padding(0, 1)
			case row >= limit:
				return base.Foreground(colorDim)
			case col == 1:
				return base.Inherit(colorStyle(theme.Palette.At(row)))
			case col >= 2:
				return base.Foreground(colorWhite).Align(lipgloss.Right)
			}
			return base.Foreground(colorGray)
		}).
		Render()
}

// severityTable lists the canonical severities in order, zeros included.
func severityTable(counts chart.SeverityCounts, theme chart.Theme) string {
	total := counts.Total()
	rows := make([][]string, 0, len(chart.Severities))
	for _, sev := range chart.Severities {
		rows = append(rows, []string{severityBadge(theme, sev), strconv.Itoa(counts[sev]), share(counts[sev], total)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Severity", "Rules", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				return base.Foreground(colorWhite).Align(lipgloss.Right)
			}
			return base
		}).
		Render()
}

func share(v, total int) string {
	if total == 0 {
		return "-"
	}
	return strconv.FormatFloat(100*float64(v)/float64(total), 'f', 1, 64) + "%"
}
