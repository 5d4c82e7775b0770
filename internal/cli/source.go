package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/dashchart/pkg/stats"
)

// sourceFlags selects where a command reads statistics from.
type sourceFlags struct {
	mongoURI string
}

// openSource returns a file source for path, or a Mongo source when path is
// empty and a URI is given by flag or config. close releases the source.
func (c *CLI) openSource(ctx context.Context, path string, f sourceFlags) (src stats.Source, name string, close func(), err error) {
	noop := func() {}
	if path != "" {
		return stats.NewFileSource(path), "file", noop, nil
	}

	cfg := c.cfg().Mongo
	if f.mongoURI != "" {
		cfg.URI = f.mongoURI
	}
	if cfg.URI == "" {
		return nil, "", noop, fmt.Errorf("no stats file given and no mongo uri configured")
	}

	logger := loggerFromContext(ctx)
	logger.Debug("connecting to mongodb", "database", cfg.Database, "collection", cfg.Collection)
	m, err := stats.NewMongoSource(ctx, cfg)
	if err != nil {
		return nil, "", noop, err
	}
	return m, "mongo", func() {
		if err := m.Close(context.Background()); err != nil {
			logger.Debug("close mongodb", "err", err)
		}
	}, nil
}
