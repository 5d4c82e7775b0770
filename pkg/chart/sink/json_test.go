package sink

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/dashchart/pkg/chart"
)

func TestJSONCommands(t *testing.T) {
	j := NewJSON(400)
	chart.RenderDonut(j, chart.SeverityCounts{chart.SeverityCritical: 2, chart.SeverityLow: 2})

	data, err := j.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	var got struct {
		Width    float64         `json:"width"`
		Height   float64         `json:"height"`
		Commands []chart.Command `json:"commands"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Width != 400 || got.Height != 220 {
		t.Errorf("size = %vx%v, want 400x220", got.Width, got.Height)
	}
	if len(got.Commands) != len(j.Commands) {
		t.Fatalf("commands = %d, want %d", len(got.Commands), len(j.Commands))
	}
	if got.Commands[0].Op != chart.OpResize || got.Commands[2].Op != chart.OpWedge {
		t.Errorf("unexpected leading ops: %s, %s", got.Commands[0].Op, got.Commands[2].Op)
	}
}

func TestJSONEmpty(t *testing.T) {
	j := NewJSON(400)
	chart.RenderBars(j, nil)
	data, err := j.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := "{\n  \"width\": 0,\n  \"height\": 0,\n  \"commands\": []\n}"
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
