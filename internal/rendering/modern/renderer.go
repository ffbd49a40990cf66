// Package modern renders the two-column template: a colored sidebar with
// identity, contact and skills next to a main column of experience.
package modern

import (
	"embed"
	"html/template"

	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

//go:embed template.html
var templateFS embed.FS

// Renderer implements rendering.Renderer for the modern template
type Renderer struct {
	tmpl *template.Template
}

var _ rendering.Renderer = (*Renderer)(nil)

// New parses the embedded template
func New() (*Renderer, error) {
	tmpl, err := rendering.ParseTemplate(templateFS, "template.html", rendering.BaseFuncs())
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// ID implements rendering.Renderer
func (r *Renderer) ID() types.TemplateID {
	return types.TemplateModern
}

// RenderHTML returns the complete HTML document
func (r *Renderer) RenderHTML(data *types.CompleteCVData, cfg style.Config) (string, error) {
	v, err := buildView(data, cfg)
	if err != nil {
		return "", err
	}
	return rendering.Execute(r.tmpl, v)
}

// RenderDocument returns the document tree with the same sections as RenderHTML
func (r *Renderer) RenderDocument(data *types.CompleteCVData, cfg style.Config) (*docmodel.Document, error) {
	v, err := buildView(data, cfg)
	if err != nil {
		return nil, err
	}
	return buildDocument(v, cfg), nil
}
