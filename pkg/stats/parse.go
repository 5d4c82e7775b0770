package stats

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/errors"
)

// Parse decodes a stats document.
//
// Both "categories" and "severities" are optional objects of label→count.
// Counts must be non-negative integers. A category label that appears twice
// keeps its first position and its last value. Severity keys are matched
// case-insensitively; keys outside the five canonical levels are skipped and
// reported in Stats.Warnings. When "total_rules" is absent it defaults to the
// severity total.
func Parse(data []byte) (*Stats, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidStats, "stats document is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidStats, "stats document must be a JSON object")
	}

	s := &Stats{Severities: chart.SeverityCounts{}}

	cats, err := object(root, "categories")
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	cats.ForEach(func(k, v gjson.Result) bool {
		var n int
		if n, err = count(k.String(), v); err != nil {
			return false
		}
		if err = errors.ValidateLabel(k.String()); err != nil {
			return false
		}
		if i, ok := index[k.String()]; ok {
			s.Categories[i].Value = n
			return true
		}
		index[k.String()] = len(s.Categories)
		s.Categories = append(s.Categories, chart.Entry{Label: k.String(), Value: n})
		return true
	})
	if err != nil {
		return nil, err
	}

	sevs, err := object(root, "severities")
	if err != nil {
		return nil, err
	}
	sevs.ForEach(func(k, v gjson.Result) bool {
		var n int
		if n, err = count(k.String(), v); err != nil {
			return false
		}
		sev, ok := chart.ParseSeverity(k.String())
		if !ok {
			s.Warnings = append(s.Warnings, fmt.Sprintf("ignoring unknown severity %q", k.String()))
			return true
		}
		s.Severities[sev] += n
		return true
	})
	if err != nil {
		return nil, err
	}

	s.TotalRules = s.Severities.Total()
	if t := root.Get("total_rules"); t.Exists() {
		n, err := count("total_rules", t)
		if err != nil {
			return nil, err
		}
		s.TotalRules = n
	}
	return s, nil
}

// Load reads and parses a stats file.
func Load(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "stats file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func object(root gjson.Result, key string) (gjson.Result, error) {
	r := root.Get(key)
	switch {
	case !r.Exists(), r.Type == gjson.Null:
		return gjson.Result{}, nil
	case !r.IsObject():
		return r, errors.New(errors.ErrCodeInvalidStats, "%q must be an object of label to count", key)
	}
	return r, nil
}

func count(name string, v gjson.Result) (int, error) {
	if v.Type != gjson.Number {
		return 0, errors.New(errors.ErrCodeInvalidStats, "count for %q must be a number, got %s", name, v.Raw)
	}
	if err := errors.ValidateCount(name, v.Num); err != nil {
		return 0, err
	}
	return int(v.Num), nil
}
