package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	webui "github.com/rimandagantarianto-gif/siarumahsakitrimanda/web"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/web/templates/layouts"
)

// pageData is the root value for every page template.
type pageData struct {
	Layout layouts.AppLayoutData
	Data   any
}

type renderer struct {
	templates *template.Template
}

func newRenderer() (*renderer, error) {
	funcMap := template.FuncMap{
		"idr":     core.FormatIDR,
		"percent": core.FormatPercent,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(webui.Templates, "templates/layouts/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{templates: tpl}, nil
}

// render executes a named page into a buffer first so a template failure
// never leaves a half-written response.
func (v *renderer) render(w http.ResponseWriter, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
