package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dashchart/pkg/cache"
	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/errors"
	"github.com/matzehuels/dashchart/pkg/stats"
)

// Config is the optional TOML configuration file. Flags override it.
//
//	listen = ":8080"
//	width = 480
//
//	[theme]
//	palette = ["#64d9a5", "#5aa9e6"]
//	[theme.severity]
//	critical = "#ff0000"
//
//	[metrics]
//	max_bars = 8
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//
//	[redis]
//	addr = "localhost:6379"
//	prefix = "dashchart:"
type Config struct {
	Listen   string  `toml:"listen"`
	Width    float64 `toml:"width"`
	CacheDir string  `toml:"cache_dir"`
	// StatsTTL caches Mongo snapshots in the service; 0 means 30s.
	StatsTTL duration `toml:"stats_ttl"`

	Theme   *chart.Theme      `toml:"theme"`
	Metrics chart.Metrics     `toml:"metrics"`
	Mongo   stats.MongoConfig `toml:"mongo"`
	Redis   cache.RedisConfig `toml:"redis"`

	path    string
	unknown []string
}

// duration decodes TOML strings such as "30s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// configPath returns $XDG_CONFIG_HOME/dashchart/config.toml, falling back to
// the platform config directory.
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads path. With an empty path the default location is used and
// a missing file yields an empty config; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	cfg := &Config{path: path}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
			}
			return &Config{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	for _, key := range md.Undecoded() {
		cfg.unknown = append(cfg.unknown, key.String())
	}
	if cfg.Width != 0 {
		if err := errors.ValidateWidth(cfg.Width); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
