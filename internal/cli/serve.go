package cli

import (
	"cmp"
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashchart/pkg/pipeline"
	"github.com/matzehuels/dashchart/pkg/server"
)

// defaultStatsTTL bounds how stale a served Mongo snapshot can be.
const defaultStatsTTL = 30 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		src     sourceFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [stats.json]",
		Short: "Serve the dashboard charts over HTTP",
		Long: `Serve the dashboard charts over HTTP.

A stats file is re-read on every request, so edits show up without a restart.
Without a file, statistics are aggregated from MongoDB and cached briefly.`,
		Example: `  dashchart serve stats.json --addr :8080
  curl localhost:8080/charts/category.svg?width=640`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runServe(cmd.Context(), input, addr, src, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	cmd.Flags().StringVar(&src.mongoURI, "mongo-uri", "", "aggregate statistics from this MongoDB")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, f sourceFlags, noCache bool) error {
	// Every chart request would fail on a bad theme; refuse to start instead.
	if err := pipeline.ValidateTheme(c.cfg().Theme); err != nil {
		return err
	}
	src, name, closeSrc, err := c.openSource(ctx, input, f)
	if err != nil {
		return err
	}
	defer closeSrc()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	if name == "mongo" {
		runner.StatsTTL = cmp.Or(time.Duration(c.cfg().StatsTTL), defaultStatsTTL)
	}

	srv := server.New(server.Config{
		Addr:       cmp.Or(addr, c.cfg().Listen),
		Source:     src,
		SourceName: name,
		Runner:     runner,
		Defaults:   c.baseOptions(),
		Logger:     c.Logger,
	})
	return srv.ListenAndServe(ctx)
}
