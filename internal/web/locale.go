package web

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

const defaultLocale = "en"

// Ordered as in supportedTags, the first one is the fallback.
var (
	supportedLocales = []string{defaultLocale, "zh"}
	supportedTags    = []language.Tag{language.English, language.Chinese}
	localeMatcher    = language.NewMatcher(supportedTags)
)

type ctxKey int

const ctxKeyLocale ctxKey = iota

func loadLocales(baseDir string) map[string]*gotext.Locale {
	dir := filepath.Join(baseDir, "locales")
	ret := make(map[string]*gotext.Locale, len(supportedLocales))

	for _, name := range supportedLocales {
		l := gotext.NewLocale(dir, name)
		l.AddDomain("default")
		ret[name] = l
	}

	log.Printf("debug: loaded %d locales from %s", len(ret), dir)
	return ret
}

// negotiateLocale picks the catalog to use from the "lang" query parameter,
// then the Accept-Language header.
func negotiateLocale(r *http.Request) string {
	_, index := language.MatchStrings(
		localeMatcher,
		r.URL.Query().Get("lang"),
		r.Header.Get("Accept-Language"),
	)

	if index < 0 || index >= len(supportedLocales) {
		return defaultLocale
	}

	return supportedLocales[index]
}

func (s *Server) localizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxKeyLocale, negotiateLocale(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLocale(r *http.Request) string {
	locale, ok := r.Context().Value(ctxKeyLocale).(string)
	if !ok {
		return defaultLocale
	}

	return locale
}

func (s *Server) translate(locale, str string) string {
	l, ok := s.locales[locale]
	if !ok {
		return str
	}

	return l.Get(str)
}
