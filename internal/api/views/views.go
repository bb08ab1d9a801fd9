// Package views renders the site pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page templates
const (
	PageHome     = "home.html"
	PageAbout    = "about.html"
	PageContact  = "contact.html"
	PageContent  = "content.html"
	PageProperty = "property.html"
	PageError    = "error.html"
)

var pages = []string{PageHome, PageAbout, PageContact, PageContent, PageProperty, PageError}

// Renderer is a gin HTMLRender holding one template set per page, each
// made of the layout, the partials and the page itself.
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses every page template.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender. Unknown names render the error page.
func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates[PageError]
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

// Static returns the embedded stylesheets and scripts.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
