package stats

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/errors"
)

// Default collection coordinates for the rules store.
const (
	DefaultDatabase   = "yaraforge"
	DefaultCollection = "rules"
)

// MongoConfig configures a [MongoSource].
type MongoConfig struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"` // per aggregation; 0 means 10s
}

// MongoSource aggregates statistics over a rules collection. Each document is
// expected to carry "category" and "severity" strings and an optional
// "active" flag; rules with active == false are not counted.
type MongoSource struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoSource connects to MongoDB and pings the primary.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	if err := errors.ValidateURI(cfg.URI, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	cfg.Database = cmp.Or(cfg.Database, DefaultDatabase)
	cfg.Collection = cmp.Or(cfg.Collection, DefaultCollection)
	cfg.Timeout = cmp.Or(cfg.Timeout, 10*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to mongodb")
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongodb")
	}

	return &MongoSource{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

// Close disconnects the client.
func (m *MongoSource) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// groupRow is one result document of a $group stage.
type groupRow struct {
	Key   string `bson:"_id"`
	Count int    `bson:"count"`
}

// Stats runs the category, severity and total aggregations concurrently.
func (m *MongoSource) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var cats, sevs []groupRow
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := m.aggregate(gctx, groupPipeline("$category", false))
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		cats = rows
		return nil
	})
	g.Go(func() error {
		rows, err := m.aggregate(gctx, groupPipeline("$severity", true))
		if err != nil {
			return fmt.Errorf("severities: %w", err)
		}
		sevs = rows
		return nil
	})
	g.Go(func() error {
		n, err := m.coll.CountDocuments(gctx, activeFilter())
		if err != nil {
			return fmt.Errorf("total: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "aggregate rules")
	}

	s := fromRows(cats, sevs)
	s.TotalRules = int(total)
	return s, nil
}

func (m *MongoSource) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]groupRow, error) {
	cur, err := m.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []groupRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func activeFilter() bson.D {
	return bson.D{{Key: "active", Value: bson.D{{Key: "$ne", Value: false}}}}
}

// groupPipeline counts active rules grouped by field, optionally lowercasing
// the key first.
func groupPipeline(field string, lower bool) mongo.Pipeline {
	var key any = field
	if lower {
		key = bson.D{{Key: "$toLower", Value: field}}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: activeFilter()}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: key},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}

// fromRows builds stats from grouped rows. Categories are ranked by count
// descending, ties broken by label; rules without a category are counted
// under "uncategorized".
func fromRows(cats, sevs []groupRow) *Stats {
	s := &Stats{Severities: chart.SeverityCounts{}}

	merged := map[string]int{}
	for _, r := range cats {
		label := strings.TrimSpace(r.Key)
		if label == "" {
			label = "uncategorized"
		}
		merged[label] += r.Count
	}
	for label, n := range merged {
		s.Categories = append(s.Categories, chart.Entry{Label: label, Value: n})
	}
	slices.SortFunc(s.Categories, func(a, b chart.Entry) int {
		return cmp.Or(cmp.Compare(b.Value, a.Value), cmp.Compare(a.Label, b.Label))
	})

	for _, r := range sevs {
		sev, ok := chart.ParseSeverity(r.Key)
		if !ok {
			s.Warnings = append(s.Warnings, fmt.Sprintf("ignoring %d rules with unknown severity %q", r.Count, r.Key))
			continue
		}
		s.Severities[sev] += r.Count
	}
	return s
}
