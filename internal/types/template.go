package types

import "strings"

// TemplateID identifies one of the fixed catalog of CV templates
type TemplateID string

const (
	TemplateModern       TemplateID = "modern"
	TemplateClassic      TemplateID = "classic"
	TemplateCreative     TemplateID = "creative"
	TemplateFrankDigital TemplateID = "frank-digital"

	// templateDefaultAlias names the full-featured template
	templateDefaultAlias = "default"
)

// AllTemplates lists every template in catalog order
func AllTemplates() []TemplateID {
	return []TemplateID{TemplateModern, TemplateClassic, TemplateCreative, TemplateFrankDigital}
}

// ParseTemplateID resolves a template identifier. "default" is accepted as
// an alias of frank-digital. Matching is case-insensitive.
func ParseTemplateID(s string) (TemplateID, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	if id == templateDefaultAlias {
		return TemplateFrankDigital, nil
	}
	for _, t := range AllTemplates() {
		if string(t) == id {
			return t, nil
		}
	}
	return "", &UnknownTemplateError{ID: s}
}

// Format identifies an output encoding
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// AllFormats lists every format in the order batches attempt them
func AllFormats() []Format {
	return []Format{FormatHTML, FormatPDF, FormatDOCX}
}

// ParseFormat resolves a format identifier, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatHTML, FormatPDF, FormatDOCX:
		return f, nil
	}
	return "", &UnknownFormatError{ID: s}
}
