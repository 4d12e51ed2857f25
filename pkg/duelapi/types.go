package duelapi

import (
	"net/url"
	"strconv"
)

// WinrateRecord is the win rate of Class1 against Class2, in percent.
type WinrateRecord struct {
	Class1  string  `json:"class1"`
	Class2  string  `json:"class2"`
	Winrate float64 `json:"winrate"`
}

// ClassStat is the overall win rate of a single class.
type ClassStat struct {
	ClassName string  `json:"class_name"`
	Winrate   float64 `json:"winrate"`
	Matches   int     `json:"matches"`
}

// Stats is the payload of StatsPath.
type Stats struct {
	Stats        []ClassStat `json:"stats"`
	TotalMatches int         `json:"total_matches"`
}

// Query holds the optional server-side filters. Empty fields are not sent.
type Query struct {
	Mode string
	Date string // YYYY-MM-DD
	// Level is only sent when positive.
	Level int
}

// Values returns the query as URL parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Mode != "" {
		v.Set("mode", q.Mode)
	}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	if q.Level > 0 {
		v.Set("level", strconv.Itoa(q.Level))
	}

	return v
}
