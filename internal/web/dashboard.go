package web

import (
	"html/template"
	"log"
	"net/http"

	"duelscope/internal/chart"
	"duelscope/pkg/duelapi"
)

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	base, in, err := s.parseChartRequest(r)
	if err != nil {
		s.error(w, err, http.StatusBadRequest)
		return
	}

	locale := requestLocale(r)
	ctrl := s.chartController(r, base)

	var ch *chart.Chart
	if r.URL.Query().Get("all") != "" {
		ch, err = ctrl.ResetAndReload(r.Context(), nil, &in)
	} else {
		ch, err = ctrl.Reload(r.Context(), nil, in)
	}

	var stats duelapi.Stats
	if err != nil {
		log.Printf("warning: unable to render chart: %s", err)
		ch = ctrl.RenderError(nil, s.publicChartError(locale, err))
	} else {
		// The class table only covers the latest log unless told otherwise.
		f := base
		if r.URL.Query().Get("latest_only") == "" {
			f.LatestOnly = true
		}
		if err := s.applyDate(&f, in.Date); err != nil {
			s.error(w, err, http.StatusBadRequest)
			return
		}

		stats, err = s.back.GetClassStats(r.Context(), f)
		if err != nil {
			s.error(w, err, http.StatusInternalServerError)
			return
		}
	}

	s.html(w, http.StatusOK, "dashboard.html", struct {
		Locale  string
		Title   string
		Intro   string
		Modes   []modeOption
		Filter  chart.FilterInput
		ChartID string
		Chart   template.HTML
		Stats   duelapi.Stats
	}{
		Locale:  locale,
		Title:   s.chartOptions(locale).Title,
		Intro:   s.config.Intro,
		Modes:   s.modeOptions(in.Mode),
		Filter:  in,
		ChartID: ch.ID,
		Chart:   template.HTML(ch.SVG()), // nolint:gosec
		Stats:   stats,
	})
}
