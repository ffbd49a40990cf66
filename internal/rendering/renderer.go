package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

// Section identifiers shared by the HTML data-section attribute and
// docmodel.Paragraph.Section
const (
	SectionHeader               = "header"
	SectionContact              = "contact"
	SectionSummary              = "summary"
	SectionRoles                = "roles"
	SectionProjects             = "projects"
	SectionEmployment           = "employment"
	SectionEducation            = "education"
	SectionCertifications       = "certifications"
	SectionCourses              = "courses"
	SectionCompetencies         = "competencies"
	SectionCompetencyCategories = "competency-categories"
	SectionLanguages            = "languages"
	SectionClosing              = "closing"
)

// Renderer is implemented once per template. Both methods are pure
// functions of their arguments and must produce the same section set in
// the same order.
type Renderer interface {
	ID() types.TemplateID
	RenderHTML(data *types.CompleteCVData, cfg style.Config) (string, error)
	RenderDocument(data *types.CompleteCVData, cfg style.Config) (*docmodel.Document, error)
}

// RequireMandatory rejects data without a name or title before any output
// is produced
func RequireMandatory(data *types.CompleteCVData) error {
	return data.Validate()
}

// CheckCompetencyCategories enforces the strict skill shape of
// competencyCategories: every skill needs a name and a level.
func CheckCompetencyCategories(cats []types.CompetencyCategory) error {
	for i, cat := range cats {
		if strings.TrimSpace(cat.Name) == "" {
			return &types.DataShapeError{Section: "competencyCategories", Index: i, Message: "category has no name"}
		}
		for _, s := range cat.Skills {
			if err := types.CheckRatedSkill("competencyCategories", i, s, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// BaseFuncs returns the template functions every renderer starts from
func BaseFuncs() template.FuncMap {
	return template.FuncMap{
		"join": func(items []string) string { return strings.Join(items, ", ") },
		"add":  func(a, b int) int { return a + b },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"percent": func(rank int) int { return rank * 25 },
	}
}

// ParseTemplate parses an embedded HTML template with the given functions
func ParseTemplate(fsys fs.FS, name string, funcs template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, name)
	if err != nil {
		return nil, &TemplateError{
			Template: name,
			Message:  "failed to parse template",
			Cause:    err,
		}
	}
	return tmpl, nil
}

// Execute runs tmpl against view and returns the document as a string
func Execute(tmpl *template.Template, view any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", &TemplateError{
			Template: tmpl.Name(),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}
	return buf.String(), nil
}

// CSSVars renders the resolved style as CSS custom properties. Every value
// has been validated by style.Resolve, so the result is trusted CSS.
func CSSVars(cfg style.Config) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "--primary: %s; ", cfg.Primary.CSS())
	fmt.Fprintf(&b, "--accent: %s; ", cfg.Accent.CSS())
	fmt.Fprintf(&b, "--highlight: %s; ", cfg.Highlight.CSS())
	fmt.Fprintf(&b, "--primary-soft: %s; ", cfg.Primary.CSSAlpha(0.12))
	fmt.Fprintf(&b, "--font-family: %s; ", cfg.FontStack())
	fmt.Fprintf(&b, "--font-size: %s; ", cfg.CSSFontSize())
	fmt.Fprintf(&b, "--gap: %s; ", cfg.CSSGap(1))
	fmt.Fprintf(&b, "--gap-sm: %s;", cfg.CSSGap(0.5))
	return template.CSS(b.String())
}
