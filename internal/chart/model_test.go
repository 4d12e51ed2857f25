package chart_test

import (
	"duelscope/internal/chart"
	"duelscope/pkg/duelapi"
	"reflect"
	"testing"

	"gopkg.in/guregu/null.v4"
)

type fixedPalette string

func (p fixedPalette) Color(string) string {
	return string(p)
}

func values(vs ...interface{}) []null.Float {
	ret := make([]null.Float, len(vs))
	for i, v := range vs {
		if v != nil {
			ret[i] = null.FloatFrom(float64(v.(int)))
		}
	}

	return ret
}

func TestBuildModel(t *testing.T) {
	cases := []struct {
		name     string
		records  []duelapi.WinrateRecord
		expected chart.Model
	}{
		{
			name: "symmetric",
			records: []duelapi.WinrateRecord{
				{Class1: "A", Class2: "B", Winrate: 60},
				{Class1: "B", Class2: "A", Winrate: 40},
			},
			expected: chart.Model{
				Labels: []string{"A", "B"},
				Series: []chart.Series{
					{Name: "A", Values: values(nil, 60), Color: "#000000"},
					{Name: "B", Values: values(40, nil), Color: "#000000"},
				},
			},
		},
		{
			name:     "empty",
			records:  nil,
			expected: chart.Model{Labels: []string{}, Series: []chart.Series{}},
		},
		{
			name: "first match wins",
			records: []duelapi.WinrateRecord{
				{Class1: "A", Class2: "B", Winrate: 60},
				{Class1: "A", Class2: "B", Winrate: 99},
			},
			expected: chart.Model{
				Labels: []string{"A"},
				Series: []chart.Series{
					{Name: "A", Values: values(nil), Color: "#000000"},
				},
			},
		},
		{
			name: "missing pairs and first-seen order",
			records: []duelapi.WinrateRecord{
				{Class1: "C", Class2: "A", Winrate: 10},
				{Class1: "A", Class2: "C", Winrate: 90},
				{Class1: "B", Class2: "C", Winrate: 0},
				{Class1: "A", Class2: "A", Winrate: 50},
				{Class1: "A", Class2: "Z", Winrate: 50},
			},
			expected: chart.Model{
				Labels: []string{"C", "A", "B"},
				Series: []chart.Series{
					{Name: "C", Values: values(nil, 10, nil), Color: "#000000"},
					{Name: "A", Values: values(90, nil, nil), Color: "#000000"},
					{Name: "B", Values: values(0, nil, nil), Color: "#000000"},
				},
			},
		},
	}

	for _, v := range cases {
		actual := chart.BuildModel(v.records, fixedPalette("#000000"))
		if !reflect.DeepEqual(actual, v.expected) {
			t.Errorf("%s: expected %+v\ngot %+v", v.name, v.expected, actual)
		}
	}
}

func TestBuildModelDuplicateOpponentKeepsFirst(t *testing.T) {
	m := chart.BuildModel([]duelapi.WinrateRecord{
		{Class1: "A", Class2: "B", Winrate: 60},
		{Class1: "A", Class2: "B", Winrate: 99},
		{Class1: "B", Class2: "A", Winrate: 40},
	}, fixedPalette("#000000"))

	if v := m.Series[0].Values[1]; !v.Valid || v.Float64 != 60 {
		t.Errorf("expected A vs B to be 60, got %v", v)
	}
}

func TestBuildModelProperties(t *testing.T) {
	records := []duelapi.WinrateRecord{
		{Class1: "D", Class2: "E", Winrate: 12.5},
		{Class1: "E", Class2: "D", Winrate: 87.5},
		{Class1: "F", Class2: "D", Winrate: 33},
		{Class1: "D", Class2: "F", Winrate: 67},
		{Class1: "E", Class2: "E", Winrate: 50},
		{Class1: "D", Class2: "E", Winrate: 1},
	}

	m := chart.BuildModel(records, chart.RandomPalette{})

	if len(m.Series) != len(m.Labels) {
		t.Fatalf("expected one series per label, got %d/%d", len(m.Series), len(m.Labels))
	}

	for i, s := range m.Series {
		if s.Name != m.Labels[i] {
			t.Errorf("series #%d is named %s, expected %s", i, s.Name, m.Labels[i])
		}

		if s.Values[i].Valid {
			t.Errorf("expected null self matchup for %s", s.Name)
		}

		for j, col := range m.Labels {
			if i == j {
				continue
			}

			var expected null.Float
			for _, r := range records {
				if r.Class1 == s.Name && r.Class2 == col {
					expected = null.FloatFrom(r.Winrate)
					break
				}
			}

			if s.Values[j] != expected {
				t.Errorf("%s vs %s: expected %v got %v", s.Name, col, expected, s.Values[j])
			}
		}
	}
}

func TestModelPlottable(t *testing.T) {
	single := chart.BuildModel([]duelapi.WinrateRecord{
		{Class1: "A", Class2: "A", Winrate: 50},
	}, fixedPalette("#000000"))
	if single.Plottable() {
		t.Error("a lone self matchup has nothing to plot")
	}

	pair := chart.BuildModel([]duelapi.WinrateRecord{
		{Class1: "A", Class2: "B", Winrate: 50},
		{Class1: "B", Class2: "A", Winrate: 50},
	}, fixedPalette("#000000"))
	if !pair.Plottable() {
		t.Error("expected a plottable model")
	}
}
