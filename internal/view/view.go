// Package view renders the passenger-facing HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page data passed to the templates.
type (
	IndexPage struct {
		Airports []models.Airport
	}

	FlightsPage struct {
		Airports   []models.Airport
		Params     service.SearchParams
		Passengers int
		Results    []service.FlightResult
		Error      string
	}

	TicketsPage struct {
		Tickets []models.Ticket
	}

	BaggagePage struct {
		PNR     string
		Weight  string
		Policy  models.BaggagePolicy
		Baggage *models.Baggage
		Error   string
	}

	TrackPage struct {
		Tracking *service.BaggageTracking
	}

	ErrorPage struct {
		Code    int
		Message string
	}
)

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New(brand string) (*Renderer, error) {
	funcs := template.FuncMap{
		"brand": func() string { return brand },
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"clock": func(t *time.Time) string {
			if t == nil {
				return "--:--"
			}
			return t.UTC().Format("15:04")
		},
		"date": func(t *time.Time) string {
			if t == nil {
				return "N/A"
			}
			return t.UTC().Format("02 Jan 2006")
		},
		"selected": func(id uint, raw string) bool { return fmt.Sprint(id) == raw },
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		t, err := template.New(path.Base(file)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[path.Base(file)] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
