package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/stats"
)

// cellWidth is the pixel width one terminal column stands for. Layouts are
// computed in pixels and quantized to columns.
const cellWidth = 8.0

func (c *CLI) previewCommand() *cobra.Command {
	var (
		src      sourceFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "preview [stats.json]",
		Short: "Draw the dashboard charts in the terminal",
		Long: `Draw the dashboard charts in the terminal.

The charts are laid out for the terminal width and re-laid out whenever the
window is resized. Press r to reload the statistics and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPreview(cmd.Context(), input, src, interval)
		},
	}
	cmd.Flags().StringVar(&src.mongoURI, "mongo-uri", "", "aggregate statistics from this MongoDB")
	cmd.Flags().DurationVar(&interval, "interval", 0, "reload statistics periodically (e.g. 5s)")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, f sourceFlags, interval time.Duration) error {
	src, _, closeSrc, err := c.openSource(ctx, input, f)
	if err != nil {
		return err
	}
	defer closeSrc()

	s, err := src.Stats(ctx)
	if err != nil {
		return err
	}

	cfg := c.cfg()
	m := newPreviewModel(ctx, src, s, cfg.Metrics, cfg.Theme)
	m.interval = interval
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// previewModel - terminal dashboard
// =============================================================================

type statsMsg struct {
	stats *stats.Stats
	err   error
}

type tickMsg time.Time

type previewModel struct {
	ctx      context.Context
	src      stats.Source
	stats    *stats.Stats
	metrics  chart.Metrics
	theme    chart.Theme
	interval time.Duration

	cols int
	err  error

	bars  chart.BarChart
	donut chart.Donut
}

func newPreviewModel(ctx context.Context, src stats.Source, s *stats.Stats, m chart.Metrics, t *chart.Theme) previewModel {
	theme := chart.DefaultTheme()
	if t != nil {
		theme = t.Resolve()
	}
	pm := previewModel{
		ctx:     ctx,
		src:     src,
		stats:   s,
		metrics: m.Resolve(),
		theme:   theme,
		cols:    80,
	}
	return pm.relayout()
}

// relayout recomputes both charts for the current terminal width.
func (m previewModel) relayout() previewModel {
	width := float64(m.cols) * cellWidth
	cs := m.stats.Chart()
	m.bars = chart.LayoutBars(cs.Categories, width, m.metrics, m.theme)
	m.donut = chart.LayoutDonut(cs.Severities, width, m.metrics, m.theme)
	return m
}

func (m previewModel) reload() tea.Cmd {
	return func() tea.Msg {
		s, err := m.src.Stats(m.ctx)
		return statsMsg{stats: s, err: err}
	}
}

func (m previewModel) tick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m previewModel) Init() tea.Cmd {
	return m.tick()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.reload()
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		return m.relayout(), nil
	case tickMsg:
		return m, tea.Batch(m.reload(), m.tick())
	case statsMsg:
		m.err = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m = m.relayout()
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rules by category"))
	b.WriteString("\n\n")
	if m.bars.Empty() {
		b.WriteString(StyleDim.Render("  no categories"))
		b.WriteString("\n")
	}
	for _, bar := range m.bars.Bars {
		b.WriteString(m.barLine(bar))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleTitle.Render("Rules by severity"))
	b.WriteString("\n\n")
	if m.donut.Empty() {
		b.WriteString(StyleDim.Render("  no rules"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.ringLine())
		b.WriteString("\n\n")
		for _, sl := range m.donut.Slices {
			b.WriteString(m.legendLine(sl))
			b.WriteString("\n")
		}
		b.WriteString("\n  ")
		b.WriteString(StyleValue.Bold(true).Render(strconv.Itoa(m.donut.Total)))
		b.WriteString(" " + StyleDim.Render("TOTAL"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleWarning.Render("reload failed: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("r reload  q quit"))
	return b.String()
}

// columns converts a pixel extent to whole terminal columns.
func columns(px float64) int {
	return int(math.Round(px / cellWidth))
}

func (m previewModel) barLine(bar chart.Bar) string {
	labelCols := max(columns(bar.Fill.X)-1, 1)
	label := lipgloss.NewStyle().Width(labelCols).Align(lipgloss.Right).
		Foreground(lipgloss.Color(string(m.theme.Label))).
		Render(truncate(bar.Label, labelCols))

	fill := columns(bar.Fill.W)
	if bar.Fill.W > 0 {
		fill = max(fill, 1)
	}
	track := max(columns(bar.Track.W)-fill, 0)

	return label + " " +
		colorStyle(bar.Color).Render(strings.Repeat("█", fill)) +
		colorStyle(m.theme.Track).Render(strings.Repeat("░", track)) + " " +
		colorStyle(m.theme.Value).Render(strconv.Itoa(bar.Value))
}

// ringLine unrolls the donut into one stacked bar; each segment's length is
// proportional to its wedge sweep.
func (m previewModel) ringLine() string {
	span := max(m.cols-4, 1)
	var b strings.Builder
	b.WriteString("  ")
	used := 0
	for i, sl := range m.donut.Slices {
		n := int(math.Round(sl.Sweep / (2 * math.Pi) * float64(span)))
		if i == len(m.donut.Slices)-1 {
			n = span - used
		}
		n = max(n, 1)
		used += n
		b.WriteString(colorStyle(sl.Color).Render(strings.Repeat("█", n)))
	}
	return b.String()
}

func (m previewModel) legendLine(sl chart.Slice) string {
	pct := 100 * float64(sl.Value) / float64(m.donut.Total)
	return fmt.Sprintf("  %s %s %s %s",
		colorStyle(sl.Color).Render("●"),
		lipgloss.NewStyle().Width(9).Render(severityBadge(m.theme, sl.Severity)),
		StyleValue.Render(strconv.Itoa(sl.Value)),
		StyleDim.Render(fmt.Sprintf("(%.1f%%)", pct)))
}

// truncate shortens s to n columns with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
