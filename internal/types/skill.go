package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillLevel is the proficiency attached to a rated skill
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Valid reports whether the level is one of the known proficiency levels
func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// Rank returns 1-4 for known levels and 0 otherwise. Renderers use it to
// draw proficiency bars.
func (l SkillLevel) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	}
	return 0
}

// Skill is the tagged union of the two accepted competency skill shapes:
// SkillName (a bare string) or RatedSkill (an object with a name).
type Skill interface {
	skill()
	// Label is the display name common to both shapes
	Label() string
}

// SkillName is a skill given only by name
type SkillName string

func (SkillName) skill() {}

// Label implements Skill
func (s SkillName) Label() string { return string(s) }

// RatedSkill is a skill with an optional level and years of experience
type RatedSkill struct {
	Name              string     `json:"name" validate:"required"`
	Level             SkillLevel `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience *int       `json:"yearsOfExperience,omitempty" validate:"omitempty,min=0"`
}

func (RatedSkill) skill() {}

// Label implements Skill
func (s RatedSkill) Label() string { return s.Name }

// Skills is a list of competency skills. It decodes from a JSON array whose
// elements are strings, objects with a "name" member, or a mix of both.
type Skills []Skill

// UnmarshalJSON decodes each element into the matching Skill variant.
// Any element that is neither a string nor an object with a non-empty
// name yields a DataShapeError.
func (s *Skills) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DataShapeError{Section: "competencies", Index: -1, Message: "skills must be an array", Cause: err}
	}

	out := make(Skills, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 {
			return &DataShapeError{Section: "competencies", Index: i, Message: "empty skill"}
		}
		switch elem[0] {
		case '"':
			var name string
			if err := json.Unmarshal(elem, &name); err != nil {
				return &DataShapeError{Section: "competencies", Index: i, Message: "invalid skill name", Cause: err}
			}
			out = append(out, SkillName(name))
		case '{':
			var rated RatedSkill
			if err := json.Unmarshal(elem, &rated); err != nil {
				return &DataShapeError{Section: "competencies", Index: i, Message: "invalid skill object", Cause: err}
			}
			if rated.Name == "" {
				return &DataShapeError{Section: "competencies", Index: i, Message: "skill object has no name"}
			}
			out = append(out, rated)
		default:
			return &DataShapeError{
				Section: "competencies",
				Index:   i,
				Message: fmt.Sprintf("skill must be a string or an object with a name, got %s", elem),
			}
		}
	}

	*s = out
	return nil
}

// CompetencyCategories is the strict competency section. Every element
// must decode as a CompetencyCategory whose skills are objects.
type CompetencyCategories []CompetencyCategory

// UnmarshalJSON reports any element of the wrong shape as a DataShapeError
// carrying the category position
func (c *CompetencyCategories) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DataShapeError{Section: "competencyCategories", Index: -1, Message: "competencyCategories must be an array", Cause: err}
	}

	out := make(CompetencyCategories, 0, len(raw))
	for i, elem := range raw {
		var cat CompetencyCategory
		if err := json.Unmarshal(elem, &cat); err != nil {
			return &DataShapeError{
				Section: "competencyCategories",
				Index:   i,
				Message: "category must be an object whose skills are objects with a name and level",
				Cause:   err,
			}
		}
		out = append(out, cat)
	}

	*c = out
	return nil
}

// MarshalJSON encodes names as strings and rated skills as objects
func (s Skills) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(s))
	for _, sk := range s {
		switch v := sk.(type) {
		case SkillName:
			out = append(out, string(v))
		case RatedSkill:
			out = append(out, v)
		default:
			return nil, fmt.Errorf("unsupported skill type %T", sk)
		}
	}
	return json.Marshal(out)
}
