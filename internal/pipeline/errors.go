package pipeline

import (
	"errors"

	"github.com/jonathan/cv-generator/internal/docx"
	"github.com/jonathan/cv-generator/internal/pdf"
	"github.com/jonathan/cv-generator/internal/schemas"
	"github.com/jonathan/cv-generator/internal/types"
)

// Error codes reported at the invocation boundary
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnknownTmpl   = "UNKNOWN_TEMPLATE"
	CodeUnknownFormat = "UNKNOWN_FORMAT"
	CodeDataShape     = "DATA_SHAPE_ERROR"
	CodePDFRender     = "PDF_RENDER_ERROR"
	CodeDOCXSerialize = "DOCX_SERIALIZE_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// errNoPDFRenderer is the cause reported when a generator has no browser pool
var errNoPDFRenderer = errors.New("no PDF renderer configured")

// ErrorCode maps an error from any stage to its wire code. A nil error has
// no code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var (
		validation  *types.ValidationError
		schemaErr   *schemas.ValidationError
		unknownTmpl *types.UnknownTemplateError
		unknownFmt  *types.UnknownFormatError
		shape       *types.DataShapeError
		pdfErr      *pdf.RenderError
		docxErr     *docx.SerializeError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &schemaErr):
		return CodeValidation
	case errors.As(err, &unknownTmpl):
		return CodeUnknownTmpl
	case errors.As(err, &unknownFmt):
		return CodeUnknownFormat
	case errors.As(err, &shape):
		return CodeDataShape
	case errors.As(err, &pdfErr):
		return CodePDFRender
	case errors.As(err, &docxErr):
		return CodeDOCXSerialize
	}
	return CodeInternal
}

// FailedStage returns the stage recorded on err, or "" when err did not
// come from a generation
func FailedStage(err error) Stage {
	var serr *StageError
	if errors.As(err, &serr) {
		return serr.Stage
	}
	return ""
}

// message strips the stage wrapper so callers see the underlying cause
func message(err error) string {
	var serr *StageError
	if errors.As(err, &serr) && serr.Cause != nil {
		return serr.Cause.Error()
	}
	return err.Error()
}
