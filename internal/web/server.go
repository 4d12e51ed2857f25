package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"duelscope/internal/back"
	"duelscope/internal/chart"
	"duelscope/internal/config"
	"duelscope/internal/util"
	"duelscope/pkg/duelapi"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/leonelquinteros/gotext"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(s.localizer)

	r.Get("/", s.dashboard)
	r.Get("/chart.svg", s.getChartSVG)
	r.Get("/chart.json", s.getChartJSON)

	r.Get(duelapi.WinratesPath, s.getWinrates)
	r.Get(duelapi.StatsPath, s.getStats)
	r.Get("/api/ratings", s.getRatings)

	return r
}

type Server struct {
	http   *http.Server
	back   *back.Back
	config *config.Config

	loc       *time.Location
	palette   chart.Palette
	locales   map[string]*gotext.Locale
	templates map[string]*template.Template
}

func NewServer(b *back.Back, conf *config.Config) (*Server, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, err
	}

	var palette chart.Palette = chart.RandomPalette{}
	if conf.StableColors {
		palette = chart.StablePalette{}
	}

	s := &Server{
		back:    b,
		config:  conf,
		loc:     loc,
		palette: palette,
		locales: loadLocales(conf.ResourcesDir),
	}

	s.templates, err = s.loadTemplates(conf.ResourcesDir)
	if err != nil {
		return nil, fmt.Errorf("unable to load templates: %w", err)
	}

	s.http = &http.Server{
		Addr:         conf.ListenAddr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Printf("info: starting HTTP server on %s", s.http.Addr)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

func (s *Server) json(w http.ResponseWriter, code int, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		log.Printf("error: unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.raw(w, code, "application/json", response)
}

func (s *Server) raw(w http.ResponseWriter, code int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

func (s *Server) html(w http.ResponseWriter, code int, name string, data interface{}) {
	tpl, ok := s.templates[name]
	if !ok {
		log.Printf("error: unknown template %s", name)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if err := tpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("error: unable to render template %s: %s", name, err)
	}
}

// error logs err and replies with code, errors meant for the user are sent
// as-is with a 400 status.
func (s *Server) error(w http.ResponseWriter, err error, code int) {
	if util.IsPublic(err) {
		log.Printf("warning: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("error: %s", err)
	w.WriteHeader(code)
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}
