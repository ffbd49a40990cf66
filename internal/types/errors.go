package types

import "fmt"

// ValidationError reports a missing or invalid mandatory field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// DataShapeError reports optional section data that cannot be coerced into
// the expected shape. Index is the element position within the section, or
// -1 when the whole section is malformed.
type DataShapeError struct {
	Section string
	Index   int
	Message string
	Cause   error
}

func (e *DataShapeError) Error() string {
	loc := e.Section
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Section, e.Index)
	}
	if e.Cause != nil {
		return fmt.Sprintf("data shape error: %s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("data shape error: %s: %s", loc, e.Message)
}

func (e *DataShapeError) Unwrap() error {
	return e.Cause
}

// UnknownTemplateError is returned for template ids outside the catalog
type UnknownTemplateError struct {
	ID string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template: %q", e.ID)
}

// UnknownFormatError is returned for format ids other than html, pdf and docx
type UnknownFormatError struct {
	ID string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format: %q", e.ID)
}
