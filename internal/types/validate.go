package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New()

// Validate enforces the mandatory-field gate: personalInfo.name and
// personalInfo.title must be non-blank. Optional sections are not inspected
// here; malformed optional data is reported by renderers as DataShapeError.
func (d *CompleteCVData) Validate() error {
	if d == nil {
		return &ValidationError{Field: "personalInfo", Message: "is required"}
	}
	trimmed := PersonalInfo{
		Name:  strings.TrimSpace(d.PersonalInfo.Name),
		Title: strings.TrimSpace(d.PersonalInfo.Title),
	}
	if err := validate.Struct(trimmed); err != nil {
		return toValidationError("personalInfo", err)
	}
	return nil
}

// CheckRatedSkill validates a rated skill. When levelRequired is set, as for
// competencyCategories, a missing level is a shape error.
func CheckRatedSkill(section string, index int, s RatedSkill, levelRequired bool) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		msg := err.Error()
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg = fmt.Sprintf("skill %s failed %q", jsonName(verrs[0].Field()), verrs[0].Tag())
		}
		return &DataShapeError{Section: section, Index: index, Message: msg}
	}
	if levelRequired && s.Level == "" {
		return &DataShapeError{Section: section, Index: index, Message: fmt.Sprintf("skill %q has no level", s.Name)}
	}
	return nil
}

func toValidationError(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "is invalid"
		if fe.Tag() == "required" {
			msg = "is required"
		}
		return &ValidationError{Field: prefix + "." + jsonName(fe.Field()), Message: msg}
	}
	return &ValidationError{Field: prefix, Message: err.Error()}
}

// jsonName lower-cases the first letter of a Go field name
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
