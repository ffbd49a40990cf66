// Package catalog is the lookup table from template id to renderer.
package catalog

import (
	"fmt"

	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/rendering/classic"
	"github.com/jonathan/cv-generator/internal/rendering/creative"
	"github.com/jonathan/cv-generator/internal/rendering/frank"
	"github.com/jonathan/cv-generator/internal/rendering/modern"
	"github.com/jonathan/cv-generator/internal/types"
)

// Catalog holds one parsed renderer per template. It is read-only after New
// and safe for concurrent use.
type Catalog struct {
	renderers map[types.TemplateID]rendering.Renderer
}

// New parses every embedded template
func New() (*Catalog, error) {
	c := &Catalog{renderers: make(map[types.TemplateID]rendering.Renderer)}

	m, err := modern.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load modern template: %w", err)
	}
	cl, err := classic.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load classic template: %w", err)
	}
	cr, err := creative.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load creative template: %w", err)
	}
	fr, err := frank.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load frank-digital template: %w", err)
	}

	for _, r := range []rendering.Renderer{m, cl, cr, fr} {
		c.renderers[r.ID()] = r
	}
	return c, nil
}

// Get returns the renderer for id
func (c *Catalog) Get(id types.TemplateID) (rendering.Renderer, error) {
	r, ok := c.renderers[id]
	if !ok {
		return nil, &types.UnknownTemplateError{ID: string(id)}
	}
	return r, nil
}

// IDs returns the catalog's template ids in catalog order
func (c *Catalog) IDs() []types.TemplateID {
	out := make([]types.TemplateID, 0, len(c.renderers))
	for _, id := range types.AllTemplates() {
		if _, ok := c.renderers[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
