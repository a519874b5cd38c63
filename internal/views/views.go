package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Engine renders the storefront pages. It implements fiber.Views; every
// page is parsed together with the shared layout.
type Engine struct {
	fs        fs.FS
	funcs     template.FuncMap
	templates map[string]*template.Template
}

// New returns an engine over the embedded templates.
func New() *Engine {
	return &Engine{
		fs: templateFS,
		funcs: template.FuncMap{
			"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
			"date":  formatDate,
		},
	}
}

// Load parses every page template.
func (e *Engine) Load() error {
	pages, err := fs.Glob(e.fs, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		tmpl, err := template.New(name).Funcs(e.funcs).ParseFS(e.fs, layoutFile, page)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	e.templates = templates
	return nil
}

// Render executes the named page inside the layout. Layout arguments are
// ignored; every page shares the same layout.
func (e *Engine) Render(out io.Writer, name string, binding interface{}, _ ...string) error {
	if e.templates == nil {
		if err := e.Load(); err != nil {
			return err
		}
	}
	tmpl, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %s does not exist", name)
	}
	return tmpl.ExecuteTemplate(out, "layout", binding)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}
