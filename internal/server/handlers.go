package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/db"
	"github.com/jonathan/cv-generator/internal/pipeline"
	"github.com/jonathan/cv-generator/internal/types"
)

// ProfileGenerateRequest selects what to render from a stored profile.
// Mode "formats" or "all" runs a batch instead of a single cell.
type ProfileGenerateRequest struct {
	Template string `json:"template"`
	Format   string `json:"format"`
	Mode     string `json:"mode,omitempty"`
}

// readRequest reads the body and decodes it as a generation request. Any
// failure is written to w and reported as nil.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) *types.Request {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, pipeline.CodeValidation, "request body too large")
		return nil
	}
	req, err := pipeline.DecodeRequest(body)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), pipeline.ErrorCode(err), err.Error())
		return nil
	}
	return req
}

func (s *Server) writeResponse(w http.ResponseWriter, resp pipeline.Response) {
	status := http.StatusOK
	if resp.Error != nil {
		status = StatusForCode(resp.Error.Code)
	}
	s.jsonResponse(w, status, resp)
}

func (s *Server) writeBatchResponse(w http.ResponseWriter, resp pipeline.BatchResponse) {
	status := http.StatusOK
	if resp.Error != nil {
		status = StatusForCode(resp.Error.Code)
	}
	s.jsonResponse(w, status, resp)
}

// handleGenerate renders one (template, format) cell
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req := s.readRequest(w, r)
	if req == nil {
		return
	}
	s.writeResponse(w, s.deps.Generator.Invoke(r.Context(), req))
}

// handleGenerateFormats renders every format of the request's template
func (s *Server) handleGenerateFormats(w http.ResponseWriter, r *http.Request) {
	req := s.readRequest(w, r)
	if req == nil {
		return
	}
	s.writeBatchResponse(w, s.deps.Generator.InvokeBatch(r.Context(), req, pipeline.BatchFormats, nil))
}

// handleGenerateAll renders the full template by format matrix
func (s *Server) handleGenerateAll(w http.ResponseWriter, r *http.Request) {
	req := s.readRequest(w, r)
	if req == nil {
		return
	}
	s.writeBatchResponse(w, s.deps.Generator.InvokeBatch(r.Context(), req, pipeline.BatchMatrix, nil))
}

// handleGenerateAllStream runs the matrix and streams one SSE event per
// finished cell, then the summary
func (s *Server) handleGenerateAllStream(w http.ResponseWriter, r *http.Request) {
	req := s.readRequest(w, r)
	if req == nil {
		return
	}
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, pipeline.CodeInternal, err.Error())
		return
	}

	resp := s.deps.Generator.InvokeBatch(r.Context(), req, pipeline.BatchMatrix, func(e pipeline.ProgressEvent) {
		if err := sse.WriteEvent("cell", e); err != nil {
			s.logger.Warn("failed to write SSE event", zap.Error(err))
		}
	})
	if resp.Error != nil {
		sse.WriteError(resp.Error)
		return
	}
	if batch, ok := resp.Data.(*pipeline.MatrixBatch); ok {
		sse.WriteComplete(batch.Summary)
	}
}

// handleGenerateProfile renders a stored profile
func (s *Server) handleGenerateProfile(w http.ResponseWriter, r *http.Request) {
	if s.deps.Profiles == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, CodeUnavailable, "profile store is not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, pipeline.CodeValidation, "invalid profile id")
		return
	}

	var body ProfileGenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, pipeline.CodeValidation, "invalid request body: "+err.Error())
		return
	}

	profile, err := s.deps.Profiles.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProfileNotFound) {
			s.errorResponse(w, http.StatusNotFound, CodeNotFound, err.Error())
			return
		}
		s.logger.Error("failed to load profile", zap.String("profile_id", id.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, pipeline.CodeInternal, "failed to load profile")
		return
	}
	if profile.Data == nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, pipeline.CodeValidation, "profile has no CV data")
		return
	}

	ctx := pipeline.WithRequestInfo(r.Context(), pipeline.RequestInfo{RequestID: uuid.New(), ProfileID: &id})
	req := &types.Request{CompleteCVData: *profile.Data, Template: body.Template, Format: body.Format}

	switch pipeline.BatchMode(body.Mode) {
	case "":
		s.writeResponse(w, s.deps.Generator.Invoke(ctx, req))
	case pipeline.BatchFormats, pipeline.BatchMatrix:
		s.writeBatchResponse(w, s.deps.Generator.InvokeBatch(ctx, req, pipeline.BatchMode(body.Mode), nil))
	default:
		s.errorResponse(w, http.StatusBadRequest, pipeline.CodeValidation, "unknown mode: "+body.Mode)
	}
}

// handleTemplates lists the template catalog
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": s.deps.Generator.Templates(),
		"formats":   types.AllFormats(),
	})
}

// handleHealth returns server health status. Any failing check turns the
// response into a 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(s.deps.Checks))
	for name, check := range s.deps.Checks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	resp := map[string]any{"status": status}
	if len(checks) > 0 {
		resp["checks"] = checks
	}
	if s.deps.PDFState != nil {
		resp["pdf_breaker"] = s.deps.PDFState()
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	s.jsonResponse(w, code, resp)
}
