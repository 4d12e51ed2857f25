package chart

import (
	"context"
	"errors"
	"testing"

	"duelscope/pkg/duelapi"
)

func TestReloadRenderErrorKeepsPrevious(t *testing.T) {
	src := SourceFunc(func(context.Context, duelapi.Query) ([]duelapi.WinrateRecord, error) {
		return []duelapi.WinrateRecord{
			{Class1: "A", Class2: "B", Winrate: 60},
			{Class1: "B", Class2: "A", Winrate: 40},
		}, nil
	})
	c := NewController(src, StablePalette{}, DefaultOptions())

	prev, err := c.Reload(context.Background(), nil, FilterInput{})
	if err != nil {
		t.Fatal(err)
	}

	renderErr := errors.New("no font")
	c.render = func(Model, Options) ([]byte, error) { return nil, renderErr }

	next, err := c.Reload(context.Background(), prev, FilterInput{})
	if !errors.Is(err, renderErr) || next != nil {
		t.Fatalf("expected the render error, got %v, %v", next, err)
	}
	if prev.Destroyed() || len(prev.SVG()) == 0 {
		t.Error("a failed render must not destroy the displayed chart")
	}
}
