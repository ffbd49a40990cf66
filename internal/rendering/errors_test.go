package rendering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-generator/internal/types"
)

func TestWrapRender(t *testing.T) {
	assert.NoError(t, WrapRender(types.TemplateModern, OutputHTML, nil))

	cause := &types.DataShapeError{Section: "roles", Index: 2, Message: "bad role"}
	err := WrapRender(types.TemplateModern, OutputDocument, cause)

	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, types.TemplateModern, rerr.Template)
	assert.Equal(t, OutputDocument, rerr.Output)
	assert.Equal(t, "render error: modern document: data shape error: roles[2]: bad role", err.Error())

	var shape *types.DataShapeError
	require.ErrorAs(t, err, &shape)
	assert.Same(t, cause, shape)
}

func TestTemplateError(t *testing.T) {
	err := &TemplateError{Template: "template.html", Message: "failed to execute template", Cause: errors.New("boom")}
	assert.Equal(t, "template error: template.html: failed to execute template: boom", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "boom")
}
