package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-generator/internal/db"
	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/pdf"
	"github.com/jonathan/cv-generator/internal/pipeline"
	"github.com/jonathan/cv-generator/internal/types"
)

type stubPDF struct{}

func (stubPDF) Render(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.7\n"), nil
}

type stubProfiles struct {
	profiles map[uuid.UUID]*db.Profile
	err      error
}

func (s *stubProfiles) GetProfile(_ context.Context, id uuid.UUID) (*db.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrProfileNotFound, id)
	}
	return p, nil
}

func newTestServer(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	if deps.Generator == nil {
		g, err := pipeline.New(pipeline.Options{PDF: stubPDF{}, Metrics: deps.Metrics})
		require.NoError(t, err)
		deps.Generator = g
	}
	return New(Config{Addr: ":0"}, deps).Handler()
}

func requestBody(t *testing.T, template, format string) []byte {
	t.Helper()
	body, err := json.Marshal(types.Request{CompleteCVData: *types.SampleCV(), Template: template, Format: format})
	require.NoError(t, err)
	return body
}

func post(h http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"", http.StatusOK},
		{pipeline.CodeValidation, http.StatusBadRequest},
		{pipeline.CodeUnknownTmpl, http.StatusNotFound},
		{pipeline.CodeUnknownFormat, http.StatusNotFound},
		{CodeNotFound, http.StatusNotFound},
		{pipeline.CodeDataShape, http.StatusUnprocessableEntity},
		{pipeline.CodePDFRender, http.StatusBadGateway},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{pipeline.CodeDOCXSerialize, http.StatusInternalServerError},
		{pipeline.CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForCode(tt.code))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("%w: x", db.ErrProfileNotFound)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&types.ValidationError{Field: "personalInfo.name", Message: "is required"}))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&pdf.RenderError{Stage: pdf.StagePrint}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestHandleGenerate(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := post(h, "/generate", requestBody(t, "modern", "html"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp pipeline.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Data, "data:text/html;base64,"))
	assert.NotNil(t, resp.GeneratedAt)
}

func TestHandleGenerate_Errors(t *testing.T) {
	h := newTestServer(t, Deps{})

	tests := []struct {
		name   string
		body   []byte
		status int
		code   string
	}{
		{"malformed json", []byte(`{"personalInfo":`), http.StatusBadRequest, pipeline.CodeValidation},
		{"missing name", []byte(`{"personalInfo": {"title": "UX"}, "template": "modern", "format": "html"}`), http.StatusBadRequest, pipeline.CodeValidation},
		{"unknown template", requestBody(t, "brutalist", "html"), http.StatusNotFound, pipeline.CodeUnknownTmpl},
		{"unknown format", requestBody(t, "modern", "rtf"), http.StatusNotFound, pipeline.CodeUnknownFormat},
		{"bad skill shape", []byte(`{"personalInfo": {"name": "Jane", "title": "UX"}, "competencies": [{"category": "X", "skills": [42]}], "template": "modern", "format": "html"}`), http.StatusUnprocessableEntity, pipeline.CodeDataShape},
		{"wrong type in optional section", []byte(`{"personalInfo": {"name": "Jane", "title": "UX"}, "employment": [{"position": 5}], "template": "modern", "format": "html"}`), http.StatusUnprocessableEntity, pipeline.CodeDataShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, "/generate", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp pipeline.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleGenerate_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleGenerateFormats(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := post(h, "/generate/formats", requestBody(t, "classic", ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool                  `json:"success"`
		Data    pipeline.FormatsBatch `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, types.TemplateClassic, resp.Data.Template)
	assert.Len(t, resp.Data.Results, 3)
	assert.Equal(t, 3, resp.Data.Summary.Successful)
}

func TestHandleGenerateAll(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := post(h, "/generate/all", requestBody(t, "", ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool                 `json:"success"`
		Data    pipeline.MatrixBatch `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Results, 4)
	assert.Equal(t, pipeline.Summary{Total: 12, Successful: 12, Failed: 0, SuccessRate: 100}, resp.Data.Summary)
}

func TestHandleGenerateAll_ValidationFailsWholeBatch(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := post(h, "/generate/all", []byte(`{"personalInfo": {"name": "", "title": "UX"}}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestHandleGenerateAllStream(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := post(h, "/generate/all/stream", requestBody(t, "", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	var events []string
	var last string
	scanner := bufio.NewScanner(rec.Body)
	scanner.Buffer(make([]byte, 0, 1<<20), 16<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, name)
		}
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			last = data
		}
	}
	require.NoError(t, scanner.Err())
	require.Len(t, events, 13)
	for _, e := range events[:12] {
		assert.Equal(t, "cell", e)
	}
	assert.Equal(t, "complete", events[12])

	var summary pipeline.Summary
	require.NoError(t, json.Unmarshal([]byte(last), &summary))
	assert.Equal(t, 12, summary.Total)
}

func TestHandleGenerateAllStream_ValidationError(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := post(h, "/generate/all/stream", []byte(`{"personalInfo": {"title": "UX"}}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandleGenerateProfile(t *testing.T) {
	id := uuid.New()
	profiles := &stubProfiles{profiles: map[uuid.UUID]*db.Profile{
		id: {ID: id, Name: "jane", Data: types.SampleCV()},
	}}
	h := newTestServer(t, Deps{Profiles: profiles})

	rec := post(h, "/profiles/"+id.String()+"/generate", []byte(`{"template": "creative", "format": "docx"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp pipeline.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Data, "data:application/vnd.openxmlformats-officedocument.wordprocessingml.document;base64,"))

	rec = post(h, "/profiles/"+id.String()+"/generate", []byte(`{"template": "modern", "mode": "formats"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"summary"`)
}

func TestHandleGenerateProfile_Errors(t *testing.T) {
	id := uuid.New()
	empty := uuid.New()
	profiles := &stubProfiles{profiles: map[uuid.UUID]*db.Profile{
		id:    {ID: id, Data: types.SampleCV()},
		empty: {ID: empty},
	}}

	tests := []struct {
		name   string
		deps   Deps
		path   string
		body   string
		status int
		code   string
	}{
		{"no store", Deps{}, "/profiles/" + id.String() + "/generate", `{}`, http.StatusServiceUnavailable, CodeUnavailable},
		{"bad id", Deps{Profiles: profiles}, "/profiles/not-a-uuid/generate", `{}`, http.StatusBadRequest, pipeline.CodeValidation},
		{"missing", Deps{Profiles: profiles}, "/profiles/" + uuid.New().String() + "/generate", `{}`, http.StatusNotFound, CodeNotFound},
		{"no data", Deps{Profiles: profiles}, "/profiles/" + empty.String() + "/generate", `{}`, http.StatusUnprocessableEntity, pipeline.CodeValidation},
		{"bad body", Deps{Profiles: profiles}, "/profiles/" + id.String() + "/generate", `{"template":`, http.StatusBadRequest, pipeline.CodeValidation},
		{"bad mode", Deps{Profiles: profiles}, "/profiles/" + id.String() + "/generate", `{"mode": "diagonal"}`, http.StatusBadRequest, pipeline.CodeValidation},
		{"unknown template", Deps{Profiles: profiles}, "/profiles/" + id.String() + "/generate", `{"template": "nope", "format": "html"}`, http.StatusNotFound, pipeline.CodeUnknownTmpl},
		{"store failure", Deps{Profiles: &stubProfiles{err: errors.New("connection refused")}}, "/profiles/" + id.String() + "/generate", `{}`, http.StatusInternalServerError, pipeline.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.deps)
			rec := post(h, tt.path, []byte(tt.body))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp pipeline.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleTemplates(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Templates []pipeline.TemplateInfo `json:"templates"`
		Formats   []types.Format          `json:"formats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 4)
	assert.Equal(t, types.AllFormats(), resp.Formats)
	for _, tmpl := range resp.Templates {
		assert.True(t, strings.HasPrefix(tmpl.Primary, "#"), tmpl.ID)
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t, Deps{
		Checks:   map[string]HealthCheck{"redis": func(context.Context) error { return nil }},
		PDFState: func() string { return "closed" },
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"redis":"ok"},"pdf_breaker":"closed"}`, rec.Body.String())
}

func TestHandleHealth_Degraded(t *testing.T) {
	h := newTestServer(t, Deps{
		Checks: map[string]HealthCheck{
			"redis":    func(context.Context) error { return nil },
			"database": func(context.Context) error { return errors.New("connection refused") },
		},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"redis":"ok","database":"connection refused"}}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	h := newTestServer(t, Deps{Metrics: metrics})

	rec := post(h, "/generate", requestBody(t, "frank-digital", "html"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cvgen_generations_total")
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	h := newTestServer(t, Deps{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
