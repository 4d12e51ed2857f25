package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"duelscope/internal/back"
	"duelscope/internal/chart"
	"duelscope/internal/util"

	"gopkg.in/guregu/null.v4"
)

const dateParamLen = len("2006-01-02")

// parseFilter reads every filter query parameter, including the date.
func (s *Server) parseFilter(r *http.Request) (back.Filter, error) {
	f, in, err := s.parseChartRequest(r)
	if err != nil {
		return back.Filter{}, err
	}

	if err := s.applyDate(&f, in.Date); err != nil {
		return back.Filter{}, err
	}

	return f, nil
}

// parseChartRequest splits the query between the base filter and the chart
// filter input, the date is left to the chart controller so it can be reset.
func (s *Server) parseChartRequest(r *http.Request) (back.Filter, chart.FilterInput, error) {
	q := r.URL.Query()

	f := back.Filter{Mode: q.Get("mode")}
	if f.Mode == "" {
		f.Mode = s.config.DefaultMode
	}
	if _, ok := s.config.GameModes[f.Mode]; !ok {
		return back.Filter{}, chart.FilterInput{}, util.ErrPublic(fmt.Sprintf("unknown mode %q", f.Mode))
	}

	if str := q.Get("start_date"); str != "" {
		t, err := util.ParseDateBound(str, s.loc, false)
		if err != nil {
			return back.Filter{}, chart.FilterInput{}, err
		}
		f.Start = t
	}

	if str := q.Get("end_date"); str != "" {
		t, err := util.ParseDateBound(str, s.loc, true)
		if err != nil {
			return back.Filter{}, chart.FilterInput{}, err
		}
		f.End = t
	}

	if str := q.Get("level"); str != "" {
		level, err := strconv.Atoi(str)
		if err != nil {
			return back.Filter{}, chart.FilterInput{}, util.ErrPublic(fmt.Sprintf("invalid level %q", str))
		}
		f.Level = null.IntFrom(int64(level))
	}

	if str := q.Get("last_matches"); str != "" {
		n, err := strconv.Atoi(str)
		if err != nil || n < 0 {
			return back.Filter{}, chart.FilterInput{}, util.ErrPublic(fmt.Sprintf("invalid match count %q", str))
		}
		f.LastMatches = n
	}

	f.LatestOnly = q.Get("latest_only") == "true"

	return f, chart.FilterInput{Mode: f.Mode, Date: q.Get("date")}, nil
}

// applyDate restricts f to a single day, an empty date is a no-op.
func (s *Server) applyDate(f *back.Filter, date string) error {
	if date == "" {
		return nil
	}

	if len(date) != dateParamLen {
		return util.ErrPublic(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	start, err := util.ParseDateBound(date, s.loc, false)
	if err != nil {
		return err
	}

	f.Start = start
	f.End = start.AddDate(0, 0, 1).Add(-time.Second)

	return nil
}
