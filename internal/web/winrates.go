package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"duelscope/internal/back"
	"duelscope/internal/chart"
	"duelscope/internal/util"
	"duelscope/pkg/duelapi"
)

func (s *Server) getWinrates(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	records, err := s.back.GetWinrates(r.Context(), f)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.json(w, http.StatusOK, records)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	stats, err := s.back.GetClassStats(r.Context(), f)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.json(w, http.StatusOK, stats)
}

func (s *Server) getRatings(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	ratings, err := s.back.GetClassRatings(r.Context(), f)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}
	log.Printf("info: computed %d class ratings in %s", len(ratings), time.Since(start))

	s.cache(w, "public", 5*time.Minute)
	s.json(w, http.StatusOK, ratings)
}

// winrateSource feeds the chart controller from the local database, the
// date of the chart query is applied on top of base.
func (s *Server) winrateSource(base back.Filter) chart.Source {
	return chart.SourceFunc(func(ctx context.Context, q duelapi.Query) ([]duelapi.WinrateRecord, error) {
		f := base
		if q.Mode != "" {
			f.Mode = q.Mode
		}

		if err := s.applyDate(&f, q.Date); err != nil {
			return nil, err
		}

		return s.back.GetWinrates(ctx, f)
	})
}

func (s *Server) chartOptions(locale string) chart.Options {
	opts := chart.DefaultOptions()
	opts.Title = s.translate(locale, opts.Title)
	opts.YAxisName = s.translate(locale, opts.YAxisName)

	return opts
}

func (s *Server) chartController(r *http.Request, base back.Filter) *chart.Controller {
	return chart.NewController(s.winrateSource(base), s.palette, s.chartOptions(requestLocale(r)))
}

// publicChartError hides internal failures behind a generic message.
func (s *Server) publicChartError(locale string, err error) error {
	if util.IsPublic(err) {
		return err
	}

	return errors.New(s.translate(locale, "Unable to load win rates."))
}

func (s *Server) getChartSVG(w http.ResponseWriter, r *http.Request) {
	base, in, err := s.parseChartRequest(r)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	ctrl := s.chartController(r, base)
	code := http.StatusOK

	ch, err := ctrl.Reload(r.Context(), nil, in)
	if err != nil {
		code = http.StatusInternalServerError
		if util.IsPublic(err) {
			code = http.StatusBadRequest
		}
		log.Printf("warning: unable to render chart: %s", err)
		ch = ctrl.RenderError(nil, s.publicChartError(requestLocale(r), err))
	}

	s.raw(w, code, "image/svg+xml", ch.SVG())
}

func (s *Server) getChartJSON(w http.ResponseWriter, r *http.Request) {
	base, in, err := s.parseChartRequest(r)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	ctrl := s.chartController(r, base)
	records, err := ctrl.Fetch(r.Context(), in)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	cfg := chart.NewJSConfig(ctrl.Build(records), s.chartOptions(requestLocale(r)))
	body, err := cfg.PatchedJSON(s.config.ChartPatch)
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.raw(w, http.StatusOK, "application/json", body)
}

type modeOption struct {
	Key, Name string
	Selected  bool
}

func (s *Server) modeOptions(selected string) []modeOption {
	ret := make([]modeOption, 0, len(s.config.GameModes))
	for k, name := range s.config.GameModes {
		ret = append(ret, modeOption{Key: k, Name: name, Selected: k == selected})
	}

	sort.Slice(ret, func(i, j int) bool { return ret[i].Key < ret[j].Key })
	return ret
}
