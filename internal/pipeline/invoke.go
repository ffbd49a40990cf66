package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/cv-generator/internal/schemas"
	"github.com/jonathan/cv-generator/internal/types"
)

// ErrorBody is the error member of a Response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(err error) *ErrorBody {
	return &ErrorBody{Code: ErrorCode(err), Message: message(err)}
}

// Response is the single-generation envelope returned at the invocation
// boundary
type Response struct {
	Success     bool       `json:"success"`
	Data        string     `json:"data,omitempty"`
	Warning     string     `json:"warning,omitempty"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	Error       *ErrorBody `json:"error,omitempty"`
}

// BatchResponse wraps a batch outcome. Success reports whether the batch
// ran; individual cells carry their own success flag.
type BatchResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// BatchMode selects the axes a batch fans out over
type BatchMode string

const (
	BatchFormats BatchMode = "formats" // every format for the request's template
	BatchMatrix  BatchMode = "all"     // every template and every format
)

// DecodeRequest checks payload against the request schema and decodes it.
// Malformed optional sections surface as DataShapeError.
func DecodeRequest(payload []byte) (*types.Request, error) {
	if err := schemas.ValidateRequest(payload); err != nil {
		return nil, err
	}
	var req types.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		if IsShapeError(err) {
			return nil, err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if section, ok := types.OptionalSection(typeErr.Field); ok {
				return nil, &types.DataShapeError{
					Section: section,
					Index:   -1,
					Message: fmt.Sprintf("%s: cannot use %s as %s", typeErr.Field, typeErr.Value, typeErr.Type),
				}
			}
		}
		return nil, &types.ValidationError{Field: "(root)", Message: err.Error()}
	}
	return &req, nil
}

// IsShapeError reports whether err is a DataShapeError
func IsShapeError(err error) bool {
	return ErrorCode(err) == CodeDataShape
}

// Invoke runs a single generation for req and wraps the outcome
func (g *Generator) Invoke(ctx context.Context, req *types.Request) Response {
	template, err := types.ParseTemplateID(req.Template)
	if err != nil {
		return Response{Error: errorBody(err)}
	}
	format, err := types.ParseFormat(req.Format)
	if err != nil {
		return Response{Error: errorBody(err)}
	}

	res, err := g.GenerateOne(ctx, &req.CompleteCVData, template, format)
	if err != nil {
		return Response{Error: errorBody(err)}
	}
	return Response{Success: true, Data: res.FileURL, Warning: res.Warning, GeneratedAt: res.GeneratedAt}
}

// InvokeJSON decodes payload and runs Invoke
func (g *Generator) InvokeJSON(ctx context.Context, payload []byte) Response {
	req, err := DecodeRequest(payload)
	if err != nil {
		return Response{Error: errorBody(err)}
	}
	return g.Invoke(ctx, req)
}

// InvokeBatch runs a batch for req. In BatchFormats mode the request's
// template is used, defaulting to frank-digital; req.Format is ignored in
// both modes.
func (g *Generator) InvokeBatch(ctx context.Context, req *types.Request, mode BatchMode, onProgress ProgressCallback) BatchResponse {
	switch mode {
	case BatchFormats:
		name := req.Template
		if name == "" {
			name = string(types.TemplateFrankDigital)
		}
		template, err := types.ParseTemplateID(name)
		if err != nil {
			return BatchResponse{Error: errorBody(err)}
		}
		batch, err := g.GenerateAllFormats(ctx, &req.CompleteCVData, template, onProgress)
		if err != nil {
			return BatchResponse{Error: errorBody(err)}
		}
		return BatchResponse{Success: true, Data: batch}

	case BatchMatrix:
		batch, err := g.GenerateAllTemplatesAllFormats(ctx, &req.CompleteCVData, onProgress)
		if err != nil {
			return BatchResponse{Error: errorBody(err)}
		}
		return BatchResponse{Success: true, Data: batch}
	}
	return BatchResponse{Error: &ErrorBody{Code: CodeValidation, Message: "unknown batch mode: " + string(mode)}}
}
