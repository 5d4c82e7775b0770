// Package stats loads the rule statistics that feed the dashboard charts.
//
// Statistics come from a [Source]: a JSON document on disk ([FileSource]),
// a value held in memory ([StaticSource]), or a live aggregation over a
// MongoDB rules collection ([MongoSource]). Every source yields the same
// [Stats] value, whose category order is the order the bar chart ranks.
//
// The JSON form matches what the HTTP service returns from /api/stats:
//
//	{
//	  "categories": {"malware": 12, "trojan": 5},
//	  "severities": {"critical": 2, "low": 2},
//	  "total_rules": 4
//	}
//
// Objects are decoded with tidwall/gjson so the key order of "categories" is
// kept exactly as written.
package stats

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/dashchart/pkg/chart"
)

// Stats is one snapshot of rule statistics.
type Stats struct {
	Categories chart.Dataset
	Severities chart.SeverityCounts
	// TotalRules is the number of active rules. It can exceed the severity
	// total when some rules carry no recognized severity.
	TotalRules int

	// Warnings lists input that was accepted but ignored, such as unknown
	// severity levels.
	Warnings []string
}

// Chart returns the subset the renderers consume.
func (s *Stats) Chart() chart.Stats {
	return chart.Stats{Categories: s.Categories, Severities: s.Severities}
}

// MarshalJSON writes categories as an object in dataset order and severities
// in canonical order.
func (s *Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"categories":{`)
	for i, e := range s.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(itoa(e.Value))
	}
	buf.WriteString(`},"severities":{`)
	first := true
	for _, sev := range chart.Severities {
		v, ok := s.Severities[sev]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(`"` + string(sev) + `":`)
		buf.Write(itoa(v))
	}
	buf.WriteString(`},"total_rules":`)
	buf.Write(itoa(s.TotalRules))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON; see [Parse].
func (s *Stats) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

func itoa(v int) []byte {
	b, _ := json.Marshal(v)
	return b
}
