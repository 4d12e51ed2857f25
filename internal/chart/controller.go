package chart

import (
	"context"
	"fmt"
	"log"
	"time"

	"duelscope/pkg/duelapi"
)

// Source gives the win rates the chart is made of, usually over HTTP.
type Source interface {
	GetWinrates(ctx context.Context, q duelapi.Query) ([]duelapi.WinrateRecord, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, q duelapi.Query) ([]duelapi.WinrateRecord, error)

func (f SourceFunc) GetWinrates(ctx context.Context, q duelapi.Query) ([]duelapi.WinrateRecord, error) {
	return f(ctx, q)
}

// FilterInput is the state of the filter form the chart is reloaded with.
type FilterInput struct {
	Mode string
	Date string // YYYY-MM-DD, empty for all data
}

// Reset clears the date filter, the mode is kept.
func (in *FilterInput) Reset() {
	in.Date = ""
}

func (in FilterInput) query() duelapi.Query {
	return duelapi.Query{Mode: in.Mode, Date: in.Date}
}

// Chart is a rendered chart bound to a drawing surface.
// It is owned by whoever asked for it and must be handed back to Render to be
// replaced.
type Chart struct {
	ID    string
	Model Model

	svg       []byte
	destroyed bool
}

// SVG returns the rendered chart, nil once destroyed.
func (c *Chart) SVG() []byte {
	return c.svg
}

// Destroy releases the rendered content.
func (c *Chart) Destroy() {
	c.svg = nil
	c.destroyed = true
}

func (c *Chart) Destroyed() bool {
	return c.destroyed
}

// Controller runs the fetch, build, render pipeline. It holds no chart
// itself and can be shared.
type Controller struct {
	source  Source
	palette Palette
	opts    Options
	render  func(Model, Options) ([]byte, error)
}

func NewController(source Source, palette Palette, opts Options) *Controller {
	if palette == nil {
		palette = RandomPalette{}
	}

	return &Controller{
		source:  source,
		palette: palette,
		opts:    opts.withDefaults(),
		render:  renderSVG,
	}
}

// Fetch retrieves the records matching the filter.
func (c *Controller) Fetch(ctx context.Context, in FilterInput) ([]duelapi.WinrateRecord, error) {
	records, err := c.source.GetWinrates(ctx, in.query())
	if err != nil {
		return nil, fmt.Errorf("unable to fetch winrates: %w", err)
	}

	return records, nil
}

// Build arranges records into a chart model with freshly assigned colors.
func (c *Controller) Build(records []duelapi.WinrateRecord) Model {
	return BuildModel(records, c.palette)
}

// Render draws m into a new Chart and destroys prev, if any. On error prev
// is left untouched.
func (c *Controller) Render(prev *Chart, m Model) (*Chart, error) {
	svg, err := c.render(m, c.opts)
	if err != nil {
		return nil, err
	}

	if prev != nil {
		prev.Destroy()
	}

	return &Chart{ID: SurfaceID, Model: m, svg: svg}, nil
}

// Reload fetches, builds, and renders the chart for the given filter.
// On error prev is left untouched so the caller can keep showing it.
func (c *Controller) Reload(ctx context.Context, prev *Chart, in FilterInput) (*Chart, error) {
	start := time.Now()
	defer func() { log.Printf("info: reloaded chart in %s", time.Since(start)) }()

	records, err := c.Fetch(ctx, in)
	if err != nil {
		return nil, err
	}

	return c.Render(prev, c.Build(records))
}

// ResetAndReload clears the date filter and reloads the chart with all data.
func (c *Controller) ResetAndReload(ctx context.Context, prev *Chart, in *FilterInput) (*Chart, error) {
	in.Reset()
	return c.Reload(ctx, prev, *in)
}

// RenderError returns a placeholder chart showing err, for when Reload fails.
func (c *Controller) RenderError(prev *Chart, err error) *Chart {
	if prev != nil {
		prev.Destroy()
	}

	return &Chart{
		ID:  SurfaceID,
		svg: placeholderSVG(c.opts, err.Error()),
	}
}
