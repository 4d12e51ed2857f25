package chart_test

import (
	"bytes"
	"context"
	"duelscope/internal/chart"
	"duelscope/pkg/duelapi"
	"errors"
	"reflect"
	"testing"
)

type fakeSource struct {
	records []duelapi.WinrateRecord
	err     error
	queries []duelapi.Query
}

func (s *fakeSource) GetWinrates(_ context.Context, q duelapi.Query) ([]duelapi.WinrateRecord, error) {
	s.queries = append(s.queries, q)
	return s.records, s.err
}

func testRecords() []duelapi.WinrateRecord {
	return []duelapi.WinrateRecord{
		{Class1: "A", Class2: "B", Winrate: 60},
		{Class1: "B", Class2: "A", Winrate: 40},
		{Class1: "B", Class2: "C", Winrate: 55},
		{Class1: "C", Class2: "B", Winrate: 45},
	}
}

func TestReload(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	c := chart.NewController(src, nil, chart.DefaultOptions())

	first, err := c.Reload(context.Background(), nil, chart.FilterInput{Mode: "pvp", Date: "2025-01-22"})
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != chart.SurfaceID {
		t.Errorf("unexpected surface %q", first.ID)
	}
	if !bytes.Contains(first.SVG(), []byte("<svg")) {
		t.Errorf("expected an SVG, got %q", first.SVG())
	}
	if len(src.queries) != 1 || src.queries[0] != (duelapi.Query{Mode: "pvp", Date: "2025-01-22"}) {
		t.Errorf("unexpected queries %v", src.queries)
	}

	second, err := c.Reload(context.Background(), first, chart.FilterInput{Mode: "pvp", Date: "2025-01-22"})
	if err != nil {
		t.Fatal(err)
	}

	if !first.Destroyed() || first.SVG() != nil {
		t.Error("expected the previous chart to be destroyed")
	}
	if second.Destroyed() {
		t.Error("the new chart must be alive")
	}

	// Same input, same structure, colors are free to change.
	if !reflect.DeepEqual(first.Model.Labels, second.Model.Labels) {
		t.Errorf("labels differ: %v vs %v", first.Model.Labels, second.Model.Labels)
	}
	for i := range first.Model.Series {
		a, b := first.Model.Series[i], second.Model.Series[i]
		if a.Name != b.Name || !reflect.DeepEqual(a.Values, b.Values) {
			t.Errorf("series #%d differs: %v vs %v", i, a, b)
		}
	}
}

func TestReloadEmpty(t *testing.T) {
	c := chart.NewController(&fakeSource{}, chart.StablePalette{}, chart.DefaultOptions())

	ch, err := c.Reload(context.Background(), nil, chart.FilterInput{})
	if err != nil {
		t.Fatal(err)
	}

	if len(ch.Model.Labels) != 0 || len(ch.Model.Series) != 0 {
		t.Errorf("expected an empty model, got %+v", ch.Model)
	}
	if !bytes.HasPrefix(ch.SVG(), []byte("<svg")) {
		t.Errorf("expected a placeholder SVG, got %q", ch.SVG())
	}
}

func TestReloadFetchError(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	c := chart.NewController(src, nil, chart.DefaultOptions())

	prev, err := c.Reload(context.Background(), nil, chart.FilterInput{})
	if err != nil {
		t.Fatal(err)
	}

	src.err = errors.New("connection refused")
	next, err := c.Reload(context.Background(), prev, chart.FilterInput{})
	if err == nil || next != nil {
		t.Fatalf("expected an error, got %v, %v", next, err)
	}
	if !errors.Is(err, src.err) {
		t.Errorf("expected the source error to be wrapped, got %s", err)
	}
	if prev.Destroyed() {
		t.Error("a failed reload must not destroy the displayed chart")
	}

	fallback := c.RenderError(prev, err)
	if !prev.Destroyed() {
		t.Error("expected the error chart to replace the previous one")
	}
	if !bytes.Contains(fallback.SVG(), []byte("connection refused")) {
		t.Errorf("expected the error in the placeholder, got %q", fallback.SVG())
	}
}

func TestResetAndReload(t *testing.T) {
	src := &fakeSource{records: testRecords()}
	c := chart.NewController(src, nil, chart.DefaultOptions())

	in := &chart.FilterInput{Mode: "pvp", Date: "2025-01-22"}
	ch, err := c.ResetAndReload(context.Background(), nil, in)
	if err != nil {
		t.Fatal(err)
	}

	if in.Date != "" {
		t.Errorf("expected the date filter to be cleared, got %q", in.Date)
	}
	if in.Mode != "pvp" {
		t.Errorf("expected the mode to be kept, got %q", in.Mode)
	}
	if src.queries[0] != (duelapi.Query{Mode: "pvp"}) {
		t.Errorf("expected an unfiltered query, got %v", src.queries[0])
	}
	if len(ch.Model.Labels) != 3 {
		t.Errorf("unexpected labels %v", ch.Model.Labels)
	}
}

func TestRenderSingleClass(t *testing.T) {
	c := chart.NewController(&fakeSource{}, nil, chart.DefaultOptions())
	m := chart.BuildModel([]duelapi.WinrateRecord{{Class1: "A", Class2: "B", Winrate: 10}}, chart.RandomPalette{})

	ch, err := c.Render(nil, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(ch.SVG()) == 0 {
		t.Error("expected a placeholder")
	}
}
