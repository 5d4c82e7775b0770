package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashchart/pkg/errors"
	"github.com/matzehuels/dashchart/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single artifact) or base path
	charts  []string // "category", "severity"
	formats []string // "svg", "png", "json", "pdf"
	width   float64  // container width
	scale   float64  // PNG pixel ratio
	noCache bool
	refresh bool
	source  sourceFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var chartsStr, formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [stats.json]",
		Short: "Render the dashboard charts to files",
		Long: `Render the category bar chart and the severity donut for a stats file.

Without a file, statistics are aggregated from MongoDB (--mongo-uri or the
[mongo] config section).`,
		Example: `  dashchart render stats.json
  dashchart render stats.json -f svg,png --width 640 -o out/dashboard
  dashchart render --chart severity --mongo-uri mongodb://localhost:27017`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.charts = parseList(chartsStr, pipeline.ValidCharts...)
			opts.formats = parseList(formatsStr, pipeline.FormatSVG)
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single artifact) or base path (multiple)")
	cmd.Flags().StringVar(&chartsStr, "chart", "", "chart(s): category, severity (comma-separated, default both)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, fmt.Sprintf("container width in pixels (default %g)", pipeline.DefaultWidth))
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel ratio")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().StringVar(&opts.source.mongoURI, "mongo-uri", "", "aggregate statistics from this MongoDB")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	src, name, closeSrc, err := c.openSource(ctx, input, opts.source)
	if err != nil {
		return err
	}
	defer closeSrc()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	snapshot, err := runner.LoadStats(ctx, src, name)
	if err != nil {
		return err
	}

	popts := c.baseOptions()
	popts.Charts = opts.charts
	popts.Formats = opts.formats
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh
	if opts.width != 0 {
		popts.Width = opts.width
	}

	spinner := newSpinnerWithContext(ctx, "Rendering charts...")
	spinner.Start()
	result, err := runner.Render(ctx, snapshot, popts)
	spinner.Stop()
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnsupported) {
			printWarning("%s", errors.UserMessage(err))
		}
		return err
	}

	names := make([]string, 0, len(result.Artifacts))
	for n := range result.Artifacts {
		names = append(names, n)
	}
	slices.Sort(names)

	base := basePath(opts.output, input)
	single := len(names) == 1
	for _, n := range names {
		path := outputPath(opts.output, base, n, single, len(popts.Charts) == 1)
		if err := writeFile(path, result.Artifacts[n]); err != nil {
			return err
		}
		fmt.Println(artifactLine(path, len(result.Artifacts[n]), result.CacheInfo.AllHit()))
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(names)))
	return nil
}

// basePath derives the base output path. Without -o it is the input name
// without extension, or "dashboard" when reading from MongoDB. A known format
// extension on -o is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "dashboard"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for artifact ("category.svg"). A lone artifact
// goes to -o verbatim; otherwise files are "<base>_<chart>.<format>", or
// "<base>.<format>" when only one chart was requested.
func outputPath(output, base, artifact string, single, oneChart bool) string {
	if single && output != "" {
		return output
	}
	chartName, format, _ := strings.Cut(artifact, ".")
	if oneChart {
		return base + "." + format
	}
	return base + "_" + chartName + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
