package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/cv-generator/internal/db"
	"github.com/jonathan/cv-generator/internal/pipeline"
)

// Error codes the HTTP layer adds to the pipeline's
const (
	CodeNotFound    = "NOT_FOUND"
	CodeUnavailable = "UNAVAILABLE"
)

// StatusForCode returns the HTTP status for a wire error code
func StatusForCode(code string) int {
	switch code {
	case "":
		return http.StatusOK
	case pipeline.CodeValidation:
		return http.StatusBadRequest
	case pipeline.CodeUnknownTmpl, pipeline.CodeUnknownFormat, CodeNotFound:
		return http.StatusNotFound
	case pipeline.CodeDataShape:
		return http.StatusUnprocessableEntity
	case pipeline.CodePDFRender:
		return http.StatusBadGateway
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrProfileNotFound) {
		return http.StatusNotFound
	}
	return StatusForCode(pipeline.ErrorCode(err))
}
