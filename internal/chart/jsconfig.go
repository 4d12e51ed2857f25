package chart

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"gopkg.in/guregu/null.v4"
)

// JSConfig is a Chart.js line chart configuration, for clients that prefer
// drawing the chart themselves.
type JSConfig struct {
	Type    string    `json:"type"`
	Data    jsData    `json:"data"`
	Options jsOptions `json:"options"`
}

type jsData struct {
	Labels   []string    `json:"labels"`
	Datasets []jsDataset `json:"datasets"`
}

type jsDataset struct {
	Label       string       `json:"label"`
	Data        []null.Float `json:"data"`
	Fill        bool         `json:"fill"`
	BorderColor string       `json:"borderColor"`
	Tension     float64      `json:"tension"`
}

type jsTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type jsOptions struct {
	Responsive          bool `json:"responsive"`
	MaintainAspectRatio bool `json:"maintainAspectRatio"`
	Scales              struct {
		Y struct {
			BeginAtZero bool    `json:"beginAtZero"`
			Max         int     `json:"max"`
			Title       jsTitle `json:"title"`
		} `json:"y"`
	} `json:"scales"`
	Plugins struct {
		Title jsTitle `json:"title"`
	} `json:"plugins"`
}

// NewJSConfig describes m the way the Chart.js line chart expects it.
func NewJSConfig(m Model, opts Options) JSConfig {
	datasets := make([]jsDataset, 0, len(m.Series))
	for _, s := range m.Series {
		datasets = append(datasets, jsDataset{
			Label:       s.Name,
			Data:        s.Values,
			BorderColor: s.Color,
			Tension:     0.1,
		})
	}

	ret := JSConfig{
		Type: "line",
		Data: jsData{Labels: m.Labels, Datasets: datasets},
	}
	ret.Options.Responsive = true
	ret.Options.Scales.Y.BeginAtZero = true
	ret.Options.Scales.Y.Max = 100
	ret.Options.Scales.Y.Title = jsTitle{Display: true, Text: opts.YAxisName}
	ret.Options.Plugins.Title = jsTitle{Display: true, Text: opts.Title}

	return ret
}

// PatchedJSON encodes the config and applies a JSON merge patch (RFC 7386)
// on top of it, an empty patch is a no-op.
func (c JSConfig) PatchedJSON(patch []byte) ([]byte, error) {
	doc, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	if len(patch) == 0 {
		return doc, nil
	}

	patched, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("unable to apply chart patch: %w", err)
	}

	return patched, nil
}
