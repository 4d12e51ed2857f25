// Package chart turns pairwise win rates into a line chart: one line per
// class, one point per opponent.
package chart

import (
	"duelscope/pkg/duelapi"

	"gopkg.in/guregu/null.v4"
)

// Series is one plotted line: the win rates of the class Name against every
// label of the Model, null where there is nothing to plot.
type Series struct {
	Name   string       `json:"name"`
	Values []null.Float `json:"values"`
	Color  string       `json:"color"`
}

// Model is what gets drawn, Labels are used both as the x axis and as the
// list of series.
type Model struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// BuildModel arranges records in a matrix indexed by the distinct Class1
// values in order of first appearance.
// Self matchups and missing pairs are null, when a pair appears more than
// once the first record wins.
func BuildModel(records []duelapi.WinrateRecord, palette Palette) Model {
	labels := make([]string, 0)
	seen := map[string]struct{}{}
	for _, v := range records {
		if _, ok := seen[v.Class1]; ok {
			continue
		}
		seen[v.Class1] = struct{}{}
		labels = append(labels, v.Class1)
	}

	series := make([]Series, 0, len(labels))
	for _, row := range labels {
		var rowRecords []duelapi.WinrateRecord
		for _, v := range records {
			if v.Class1 == row {
				rowRecords = append(rowRecords, v)
			}
		}

		values := make([]null.Float, len(labels))
		for i, col := range labels {
			if row == col {
				continue
			}

			for _, v := range rowRecords {
				if v.Class2 == col {
					values[i] = null.FloatFrom(v.Winrate)
					break
				}
			}
		}

		series = append(series, Series{
			Name:   row,
			Values: values,
			Color:  palette.Color(row),
		})
	}

	return Model{Labels: labels, Series: series}
}

// Plottable returns true if at least one value can be drawn.
func (m Model) Plottable() bool {
	for _, s := range m.Series {
		for _, v := range s.Values {
			if v.Valid {
				return true
			}
		}
	}

	return false
}
