package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dashchart/pkg/chart"
	"github.com/matzehuels/dashchart/pkg/errors"
)

func TestParsePreservesOrder(t *testing.T) {
	s, err := Parse([]byte(`{
		"categories": {"ransomware": 3, "malware": 12, "trojan": 5},
		"severities": {"low": 2, "critical": 2}
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var labels []string
	for _, e := range s.Categories {
		labels = append(labels, e.Label)
	}
	if got := strings.Join(labels, ","); got != "ransomware,malware,trojan" {
		t.Errorf("order = %s", got)
	}
	if s.Severities[chart.SeverityCritical] != 2 || s.Severities[chart.SeverityLow] != 2 {
		t.Errorf("severities = %v", s.Severities)
	}
	if s.TotalRules != 4 {
		t.Errorf("TotalRules = %d, want 4 (severity total)", s.TotalRules)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCats int
		wantSev  int
		warnings int
	}{
		{name: "empty object", input: `{}`},
		{name: "null sections", input: `{"categories": null, "severities": null}`},
		{name: "duplicate category", input: `{"categories": {"a": 1, "a": 4}}`, wantCats: 1},
		{name: "mixed case severity", input: `{"severities": {"High": 1, "high": 2}}`, wantSev: 3},
		{name: "unknown severity", input: `{"severities": {"urgent": 9, "info": 1}}`, wantSev: 1, warnings: 1},
		{name: "zero counts", input: `{"categories": {"a": 0}, "severities": {"low": 0}}`, wantCats: 1},

		{name: "not json", input: `{categories`, wantErr: true},
		{name: "array", input: `[1, 2]`, wantErr: true},
		{name: "categories array", input: `{"categories": [1]}`, wantErr: true},
		{name: "negative", input: `{"categories": {"a": -1}}`, wantErr: true},
		{name: "fraction", input: `{"severities": {"low": 1.5}}`, wantErr: true},
		{name: "string count", input: `{"categories": {"a": "3"}}`, wantErr: true},
		{name: "empty label", input: `{"categories": {"": 3}}`, wantErr: true},
		{name: "negative total", input: `{"total_rules": -3}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidStats) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStats)
				}
				return
			}
			if len(s.Categories) != tt.wantCats {
				t.Errorf("categories = %d, want %d", len(s.Categories), tt.wantCats)
			}
			if got := s.Severities.Total(); got != tt.wantSev {
				t.Errorf("severity total = %d, want %d", got, tt.wantSev)
			}
			if len(s.Warnings) != tt.warnings {
				t.Errorf("warnings = %v, want %d", s.Warnings, tt.warnings)
			}
		})
	}
}

func TestParseDuplicateKeepsFirstPosition(t *testing.T) {
	s, err := Parse([]byte(`{"categories": {"a": 1, "b": 2, "a": 7}}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Categories[0].Label != "a" || s.Categories[0].Value != 7 {
		t.Errorf("first entry = %+v, want a=7", s.Categories[0])
	}
}

func TestParseExplicitTotal(t *testing.T) {
	s, err := Parse([]byte(`{"severities": {"low": 2}, "total_rules": 10}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalRules != 10 {
		t.Errorf("TotalRules = %d, want 10", s.TotalRules)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	if err := os.WriteFile(path, []byte(`{"categories": {"malware": 1}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Categories) != 1 {
		t.Errorf("categories = %v", s.Categories)
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestStatsJSONRoundTrip(t *testing.T) {
	in := `{"categories":{"trojan":5,"malware":12},"severities":{"critical":2,"low":2},"total_rules":4}`
	s, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("got  %s\nwant %s", out, in)
	}
}
