package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// SurfaceID is the identifier of the element the chart is drawn into.
const SurfaceID = "winrateChart"

// Options controls the look of the rendered chart.
type Options struct {
	Title     string
	YAxisName string
	Width     int
	Height    int
}

// DefaultOptions are the english defaults, callers usually localize the texts.
func DefaultOptions() Options {
	return Options{
		Title:     "DuelScope - Class win rates",
		YAxisName: "Win rate (%)",
		Width:     900,
		Height:    450,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}

	return o
}

// renderSVG draws the model as a line chart with a y axis fixed to [0, 100].
// Nulls are skipped, the line goes straight to the next value and every
// actual value gets a dot.
func renderSVG(m Model, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !m.Plottable() {
		return placeholderSVG(opts, opts.Title), nil
	}

	xTicks := make([]chart.Tick, 0, len(m.Labels))
	for i, v := range m.Labels {
		xTicks = append(xTicks, chart.Tick{Value: float64(i + 1), Label: v})
	}

	yTicks := make([]chart.Tick, 0, 6)
	for v := 0; v <= 100; v += 20 {
		yTicks = append(yTicks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}

	series := make([]chart.Series, 0, len(m.Series))
	for _, s := range m.Series {
		var xs, ys []float64
		for i, v := range s.Values {
			if !v.Valid {
				continue
			}
			xs = append(xs, float64(i+1))
			ys = append(ys, v.Float64)
		}

		if len(xs) == 0 {
			continue
		}

		color := drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#"))
		series = append(series, chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     chart.Style{FillColor: chart.ColorTransparent},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(m.Labels)) + 0.5},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  opts.YAxisName,
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			Ticks: yTicks,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("unable to render chart: %w", err)
	}

	return buf.Bytes(), nil
}

// placeholderSVG is an empty drawing surface with a centered text, go-chart
// refuses to render a chart without any series.
func placeholderSVG(opts Options, text string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(
		&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %[1]d %[2]d">`,
		opts.Width, opts.Height,
	)

	if text != "" {
		fmt.Fprintf(
			&buf,
			`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="16">`,
			opts.Width/2, opts.Height/2,
		)
		_ = xml.EscapeText(&buf, []byte(text))
		buf.WriteString(`</text>`)
	}

	buf.WriteString(`</svg>`)

	return buf.Bytes()
}
