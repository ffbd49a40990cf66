// Package rendering holds the contract shared by the template renderers and
// the helpers they use to build HTML and document output.
package rendering

import (
	"fmt"

	"github.com/jonathan/cv-generator/internal/types"
)

// TemplateError represents an error parsing or executing an HTML template
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Renderer outputs named in a RenderError
const (
	OutputHTML     = "html"
	OutputDocument = "document"
)

// RenderError records which template and output a renderer failure came
// from. The cause keeps its own type, so a DataShapeError or
// ValidationError stays reachable through errors.As.
type RenderError struct {
	Template types.TemplateID
	Output   string
	Cause    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s %s: %v", e.Template, e.Output, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// WrapRender attaches the template and output to a renderer failure. A nil
// err stays nil.
func WrapRender(id types.TemplateID, output string, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Template: id, Output: output, Cause: err}
}
