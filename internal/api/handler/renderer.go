package handler

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const dashboardTemplate = "dashboard.html"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded page templates for echo.Context.Render.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. It panics on a malformed
// template, which can only happen at build time.
func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("").ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
