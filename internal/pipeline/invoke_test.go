package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-generator/internal/docx"
	"github.com/jonathan/cv-generator/internal/pdf"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/schemas"
	"github.com/jonathan/cv-generator/internal/types"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &types.ValidationError{Field: "personalInfo.name", Message: "is required"}, CodeValidation},
		{"schema", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "(root)", Message: "x"}}}, CodeValidation},
		{"unknown template", &types.UnknownTemplateError{ID: "x"}, CodeUnknownTmpl},
		{"unknown format", &types.UnknownFormatError{ID: "x"}, CodeUnknownFormat},
		{"shape", &types.DataShapeError{Section: "competencies", Index: 0, Message: "x"}, CodeDataShape},
		{"pdf", &pdf.RenderError{Stage: pdf.StagePrint}, CodePDFRender},
		{"docx", &docx.SerializeError{Part: "zip"}, CodeDOCXSerialize},
		{"wrapped in stage", &StageError{Stage: StageEncoded, Cause: &pdf.RenderError{Stage: pdf.StageVerify}}, CodePDFRender},
		{"wrapped with fmt", fmt.Errorf("outer: %w", &types.UnknownFormatError{ID: "x"}), CodeUnknownFormat},
		{"render wrapping shape", &rendering.RenderError{Template: types.TemplateModern, Output: rendering.OutputHTML, Cause: &types.DataShapeError{Section: "roles", Index: 0}}, CodeDataShape},
		{"render wrapping template", &rendering.RenderError{Template: types.TemplateClassic, Output: rendering.OutputHTML, Cause: &rendering.TemplateError{Template: "template.html", Message: "failed to execute template"}}, CodeInternal},
		{"other", errors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestInvoke(t *testing.T) {
	g := newGenerator(t, Options{})

	resp := g.Invoke(context.Background(), &types.Request{CompleteCVData: *types.MinimalCV(), Template: "creative", Format: "docx"})
	require.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.GeneratedAt)
	_, payload := decode(t, resp.Data)
	assert.True(t, bytes.HasPrefix(payload, []byte("PK")))
}

func TestInvoke_DefaultAlias(t *testing.T) {
	g := newGenerator(t, Options{})

	resp := g.Invoke(context.Background(), &types.Request{CompleteCVData: *types.SampleCV(), Template: "default", Format: "HTML"})
	require.True(t, resp.Success)
	_, payload := decode(t, resp.Data)
	assert.Contains(t, string(payload), `data-section="closing"`, "default is the full-featured template")
}

func TestInvoke_Errors(t *testing.T) {
	g := newGenerator(t, Options{})

	tests := []struct {
		name string
		req  types.Request
		code string
	}{
		{"unknown template", types.Request{CompleteCVData: *types.MinimalCV(), Template: "brutalist", Format: "html"}, CodeUnknownTmpl},
		{"missing template", types.Request{CompleteCVData: *types.MinimalCV(), Format: "html"}, CodeUnknownTmpl},
		{"unknown format", types.Request{CompleteCVData: *types.MinimalCV(), Template: "modern", Format: "rtf"}, CodeUnknownFormat},
		{"missing name", types.Request{Template: "modern", Format: "html"}, CodeValidation},
		{"no pdf backend", types.Request{CompleteCVData: *types.MinimalCV(), Template: "modern", Format: "pdf"}, CodePDFRender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := g.Invoke(context.Background(), &tt.req)
			assert.False(t, resp.Success)
			assert.Empty(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestInvokeJSON(t *testing.T) {
	g := newGenerator(t, Options{})

	resp := g.InvokeJSON(context.Background(), []byte(`{
		"personalInfo": {"name": "Jane Smith", "title": "UX Designer"},
		"competencies": [
			{"category": "Front-end", "skills": ["CSS", "HTML"]},
			{"category": "Design", "skills": [{"name": "Figma", "level": "expert"}]}
		],
		"styling": {"primaryColor": "#123456", "accentColor": null},
		"template": "modern",
		"format": "html"
	}`))
	require.True(t, resp.Success, "%+v", resp.Error)
	_, payload := decode(t, resp.Data)
	html := string(payload)
	assert.Contains(t, html, "CSS")
	assert.Contains(t, html, "HTML")
	assert.Contains(t, html, "Figma")
	assert.Contains(t, html, "#123456")
}

func TestInvokeJSON_Errors(t *testing.T) {
	g := newGenerator(t, Options{})

	tests := []struct {
		name    string
		payload string
		code    string
	}{
		{"not json", `{"personalInfo":`, CodeValidation},
		{"missing title", `{"personalInfo": {"name": "Jane"}, "template": "modern", "format": "html"}`, CodeValidation},
		{"bad skill shape", `{"personalInfo": {"name": "Jane", "title": "UX"}, "competencies": [{"category": "X", "skills": [42]}], "template": "modern", "format": "html"}`, CodeDataShape},
		{"skill object without name", `{"personalInfo": {"name": "Jane", "title": "UX"}, "competencies": [{"category": "X", "skills": [{"level": "expert"}]}], "template": "classic", "format": "docx"}`, CodeDataShape},
		{"category skill as string", `{"personalInfo": {"name": "Jane", "title": "UX"}, "competencyCategories": [{"name": "X", "skills": ["CSS"]}], "template": "modern", "format": "html"}`, CodeDataShape},
		{"employment position as number", `{"personalInfo": {"name": "Jane", "title": "UX"}, "employment": [{"position": 5}], "template": "classic", "format": "html"}`, CodeDataShape},
		{"role skills as objects", `{"personalInfo": {"name": "Jane", "title": "UX"}, "roles": [{"skills": [{"name": "x"}]}], "template": "frank-digital", "format": "html"}`, CodeDataShape},
		{"personal info name as number", `{"personalInfo": {"name": 5, "title": "UX"}, "template": "modern", "format": "html"}`, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := g.InvokeJSON(context.Background(), []byte(tt.payload))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestDecodeRequest_ShapeErrorLocation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		section string
		index   int
	}{
		{"category skill as string", `{"personalInfo": {"name": "Jane", "title": "UX"}, "competencyCategories": [{"name": "A", "skills": [{"name": "Go", "level": "expert"}]}, {"name": "B", "skills": ["CSS"]}]}`, "competencyCategories", 1},
		{"employment position as number", `{"personalInfo": {"name": "Jane", "title": "UX"}, "employment": [{"position": 5}]}`, "employment", -1},
		{"education degree as bool", `{"personalInfo": {"name": "Jane", "title": "UX"}, "education": [{"degree": true}]}`, "education", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.payload))
			var shape *types.DataShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tt.section, shape.Section)
			assert.Equal(t, tt.index, shape.Index)
		})
	}
}

func TestResponse_JSONShape(t *testing.T) {
	g := newGenerator(t, Options{})

	ok, err := json.Marshal(g.Invoke(context.Background(), &types.Request{CompleteCVData: *types.MinimalCV(), Template: "classic", Format: "html"}))
	require.NoError(t, err)
	var okBody map[string]any
	require.NoError(t, json.Unmarshal(ok, &okBody))
	assert.Equal(t, true, okBody["success"])
	assert.Contains(t, okBody["data"], "data:text/html;base64,")
	assert.NotContains(t, okBody, "error")

	failed, err := json.Marshal(g.Invoke(context.Background(), &types.Request{Template: "classic", Format: "html"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"validation error: personalInfo.name: is required"}}`, string(failed))
}

func TestInvokeBatch(t *testing.T) {
	g := newGenerator(t, Options{PDF: &fakePDF{}})
	req := &types.Request{CompleteCVData: *types.SampleCV(), Format: "pdf"}

	resp := g.InvokeBatch(context.Background(), req, BatchFormats, nil)
	require.True(t, resp.Success)
	formats, ok := resp.Data.(*FormatsBatch)
	require.True(t, ok)
	assert.Equal(t, types.TemplateFrankDigital, formats.Template)
	assert.Equal(t, 3, formats.Summary.Total)

	resp = g.InvokeBatch(context.Background(), req, BatchMatrix, nil)
	require.True(t, resp.Success)
	matrix, ok := resp.Data.(*MatrixBatch)
	require.True(t, ok)
	assert.Equal(t, 12, matrix.Summary.Total)
}

func TestInvokeBatch_Errors(t *testing.T) {
	g := newGenerator(t, Options{})

	resp := g.InvokeBatch(context.Background(), &types.Request{CompleteCVData: *types.MinimalCV(), Template: "nope"}, BatchFormats, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeUnknownTmpl, resp.Error.Code)

	resp = g.InvokeBatch(context.Background(), &types.Request{}, BatchMatrix, nil)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidation, resp.Error.Code)

	resp = g.InvokeBatch(context.Background(), &types.Request{CompleteCVData: *types.MinimalCV()}, BatchMode("diagonal"), nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidation, resp.Error.Code)
}
