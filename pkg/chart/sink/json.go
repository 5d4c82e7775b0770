package sink

import (
	"encoding/json"

	"github.com/matzehuels/dashchart/pkg/chart"
)

// JSON is a chart.Surface that records draw commands and serializes them.
// Hosts with their own canvas (a browser, a native UI) can replay the list.
type JSON struct {
	*chart.Recorder
}

// NewJSON returns a command-recording surface for the given container width.
func NewJSON(containerWidth float64) *JSON {
	return &JSON{Recorder: chart.NewRecorder(containerWidth)}
}

type commandList struct {
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Commands []chart.Command `json:"commands"`
}

// Bytes returns {"width","height","commands"} as indented JSON. Commands is
// an empty array, never null, when nothing was drawn.
func (j *JSON) Bytes() ([]byte, error) {
	cmds := j.Commands
	if cmds == nil {
		cmds = []chart.Command{}
	}
	return json.MarshalIndent(commandList{Width: j.Width, Height: j.Height, Commands: cmds}, "", "  ")
}
