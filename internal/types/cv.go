// Package types defines the data structures shared across the CV generation pipeline.
package types

import "strings"

// CompleteCVData is the root input of every generation request.
// Only PersonalInfo.Name and PersonalInfo.Title are mandatory; every other
// section is optional and is skipped entirely by renderers when absent.
type CompleteCVData struct {
	PersonalInfo         PersonalInfo         `json:"personalInfo"`
	Summary              *Summary             `json:"summary,omitempty"`
	Roles                []Role               `json:"roles,omitempty"`
	Projects             []Project            `json:"projects,omitempty"`
	Employment           []Employment         `json:"employment,omitempty"`
	Education            []Education          `json:"education,omitempty"`
	Certifications       []Certification      `json:"certifications,omitempty"`
	Courses              []Course             `json:"courses,omitempty"`
	Competencies         []Competency         `json:"competencies,omitempty"`
	CompetencyCategories CompetencyCategories `json:"competencyCategories,omitempty"`
	Languages            []Language           `json:"languages,omitempty"`
	Closing              *Closing             `json:"closing,omitempty"`
	Styling              *Styling             `json:"styling,omitempty"`
}

// OptionalSection returns the top-level optional section a dotted JSON
// field path falls under. Paths inside personalInfo, or outside the
// document, report false.
func OptionalSection(field string) (string, bool) {
	section, _, _ := strings.Cut(field, ".")
	switch section {
	case "summary", "roles", "projects", "employment", "education",
		"certifications", "courses", "competencies", "competencyCategories",
		"languages", "closing", "styling":
		return section, true
	}
	return "", false
}

// PersonalInfo holds the identity block rendered in every template header
type PersonalInfo struct {
	Name         string `json:"name" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"` // data URI or http(s) URL
	LinkedIn     string `json:"linkedIn,omitempty"`
	GitHub       string `json:"github,omitempty"`
	Website      string `json:"website,omitempty"`
}

// Summary is the profile section
type Summary struct {
	Introduction    string   `json:"introduction"`
	Highlights      []string `json:"highlights,omitempty"`
	KeyStrengths    []string `json:"keyStrengths,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	CareerObjective string   `json:"careerObjective,omitempty"`
}

// Points returns the summary bullet list. Highlights and KeyStrengths are
// synonyms; Highlights wins when both are supplied.
func (s *Summary) Points() []string {
	if s == nil {
		return nil
	}
	if len(s.Highlights) > 0 {
		return s.Highlights
	}
	return s.KeyStrengths
}

// IsEmpty reports whether the summary carries no renderable content
func (s *Summary) IsEmpty() bool {
	return s == nil || (s.Introduction == "" && len(s.Points()) == 0 &&
		len(s.Specialties) == 0 && s.CareerObjective == "")
}

// Role is an entry of the role taxonomy, distinct from employment history
type Role struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills,omitempty"`
}

// Project is a portfolio entry
type Project struct {
	Period       string   `json:"period"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Employment is a position held at a company
type Employment struct {
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is a degree entry
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Period         string `json:"period"`
	Specialization string `json:"specialization,omitempty"`
}

// Certification is a professional certification
type Certification struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Year        string `json:"year"`
	Description string `json:"description,omitempty"`
}

// Course is a completed training course
type Course struct {
	Name           string `json:"name"`
	Provider       string `json:"provider"`
	CompletionDate string `json:"completionDate"`
	Duration       string `json:"duration,omitempty"`
	CredentialID   string `json:"credentialId,omitempty"`
	URL            string `json:"url,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Competency groups skills under a category. Skills may be supplied either
// as plain names or as rated objects; see Skills.
type Competency struct {
	Category string `json:"category"`
	Skills   Skills `json:"skills"`
}

// CompetencyCategory is the strict variant of Competency: every skill must
// carry a level.
type CompetencyCategory struct {
	Name   string       `json:"name"`
	Skills []RatedSkill `json:"skills"`
}

// Language is a spoken language entry
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Closing is the call-to-action section at the end of the full template
type Closing struct {
	Text    string         `json:"text"`
	Contact ClosingContact `json:"contact"`
}

// ClosingContact is the contact block of the closing section
type ClosingContact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Company  string `json:"company,omitempty"`
}

// HasContent reports whether the closing section has anything to render
func (c *Closing) HasContent() bool {
	if c == nil {
		return false
	}
	return c.Text != "" || c.Contact != (ClosingContact{})
}

// Styling holds caller style overrides. A field that is absent from the
// JSON payload is left unset and never clobbers the template default;
// an explicit null or empty string overrides the default with a blank.
type Styling struct {
	PrimaryColor   Optional[string] `json:"primaryColor,omitzero"`
	AccentColor    Optional[string] `json:"accentColor,omitzero"`
	HighlightColor Optional[string] `json:"highlightColor,omitzero"`
	FontFamily     Optional[string] `json:"fontFamily,omitzero"`
	FontSize       Optional[string] `json:"fontSize,omitzero"`
	Spacing        Optional[string] `json:"spacing,omitzero"`
	Layout         Optional[string] `json:"layout,omitzero"`
	ColorScheme    Optional[string] `json:"colorScheme,omitzero"`
}

// Request is the flat payload accepted at the invocation boundary: the CV
// data with the requested template and format alongside.
type Request struct {
	CompleteCVData
	Template string `json:"template,omitempty"`
	Format   string `json:"format,omitempty"`
}
