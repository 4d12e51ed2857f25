package web

import (
	"encoding/hex"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"duelscope/internal/util"

	"github.com/russross/blackfriday/v2"
)

func (s *Server) loadTemplates(baseDir string) (map[string]*template.Template, error) {
	layouts, err := filepath.Glob(filepath.Join(baseDir, "templates/layouts/*.html"))
	if err != nil {
		return nil, err
	}

	includes, err := filepath.Glob(filepath.Join(baseDir, "templates/includes/*.html"))
	if err != nil {
		return nil, err
	}

	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layout found in %s", baseDir)
	}

	ret := make(map[string]*template.Template, len(layouts))
	for _, layout := range layouts {
		tpl, err := template.New("").
			Funcs(s.getTemplateFuncMap()).
			ParseFiles(append(includes, layout)...)
		if err != nil {
			return nil, err
		}

		key := strings.TrimPrefix(layout, filepath.Join(baseDir, "templates/layouts")+"/")
		ret[key] = tpl
	}

	return ret, nil
}

func (s *Server) getTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t": s.translate,

		"tf": func(locale string, str string, args ...interface{}) string {
			return fmt.Sprintf(s.translate(locale, str), args...)
		},

		"markdown": func(str string) template.HTML {
			return template.HTML(blackfriday.Run([]byte(str))) // nolint:gosec
		},

		"winrate":      tplWinrate,
		"winrateColor": tplWinrateColor,
		"date":         util.Date,
	}
}

func tplWinrate(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// tplWinrateColor maps a 0-100 win rate to a cell background going from red
// (0%) through white (50%) to green (100%).
func tplWinrateColor(winrate float64) template.CSS {
	r := (winrate - 50) / 50
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	white := [3]float64{1, 1, 1}
	target := [3]float64{0.45, 0.85, 0.45}
	if r < 0 {
		target = [3]float64{0.95, 0.45, 0.45}
		r = -r
	}

	return template.CSS(lerpColor(white, target, r))
}

func lerpColor(a, b [3]float64, r float64) string {
	lerp := func(v0, v1, r float64) float64 {
		return v0*(1-r) + v1*r
	}

	return "#" + hex.EncodeToString([]byte{
		byte(lerp(a[0], b[0], r) * 255.0),
		byte(lerp(a[1], b[1], r) * 255.0),
		byte(lerp(a[2], b[2], r) * 255.0),
	})
}
