package classic

import (
	"strings"

	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
)

func buildDocument(v *view, cfg style.Config) *docmodel.Document {
	body := cfg.BodyHalfPoints()
	small := body - 2
	b := docmodel.NewBuilder(v.Name, cfg.PrimaryFont(), body)

	b.Section(rendering.SectionHeader).
		Add(docmodel.Paragraph{
			Heading: 1,
			Align:   docmodel.AlignCenter,
			Runs:    []docmodel.Run{{Text: v.Name, Size: cfg.ScaledHalfPoints(2.1), Color: cfg.Primary}},
		}).
		Add(docmodel.Paragraph{
			Align:      docmodel.AlignCenter,
			Runs:       []docmodel.Run{{Text: v.Role, Italic: true, Color: cfg.Accent}},
			SpaceAfter: cfg.Twips(60),
		})

	if len(v.Contact) > 0 {
		b.Section(rendering.SectionContact)
		runs := make([]docmodel.Run, 0, len(v.Contact)*2)
		for i, c := range v.Contact {
			if i > 0 {
				runs = append(runs, docmodel.Run{Text: " · ", Color: cfg.Accent, Size: small})
			}
			runs = append(runs, docmodel.Run{Text: c, Color: cfg.Accent, Size: small})
		}
		b.Add(docmodel.Paragraph{Align: docmodel.AlignCenter, Runs: runs, BorderBottom: cfg.Primary, SpaceAfter: cfg.Twips(120)})
	}

	if s := v.Summary; s != nil {
		b.Section(rendering.SectionSummary)
		heading(b, cfg, "Professional Summary")
		if s.Intro != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Intro}}, SpaceAfter: cfg.Twips(80)})
		}
		for _, p := range s.Points {
			b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: p}}})
		}
		if s.Specialties != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: "Specialties: ", Bold: true}, {Text: s.Specialties}}})
		}
		if s.Objective != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Objective, Italic: true}}})
		}
	}

	rows(b, cfg, rendering.SectionEmployment, "Professional Experience", v.Employment)
	rows(b, cfg, rendering.SectionProjects, "Selected Projects", v.Projects)
	rows(b, cfg, rendering.SectionEducation, "Education", v.Education)
	rows(b, cfg, rendering.SectionCertifications, "Certifications", v.Certifications)
	rows(b, cfg, rendering.SectionCourses, "Courses", v.Courses)

	skillLines(b, cfg, rendering.SectionCompetencies, "Competencies", v.Competencies)
	skillLines(b, cfg, rendering.SectionCompetencyCategories, "Areas of Expertise", v.Categories)

	if len(v.Languages) > 0 {
		b.Section(rendering.SectionLanguages)
		heading(b, cfg, "Languages")
		b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: strings.Join(v.Languages, ", ")}}})
	}

	return b.Document()
}

func heading(b *docmodel.Builder, cfg style.Config, text string) {
	b.Add(docmodel.Paragraph{
		Heading:      2,
		Runs:         []docmodel.Run{{Text: text, Bold: true, Size: cfg.ScaledHalfPoints(1.05), Color: cfg.Primary}},
		SpaceBefore:  cfg.Twips(240),
		SpaceAfter:   cfg.Twips(100),
		BorderBottom: cfg.Accent,
	})
}

// rows renders the date column as a leading run since DOCX paragraphs
// carry no table cells in this model
func rows(b *docmodel.Builder, cfg style.Config, id, title string, items []row) {
	if len(items) == 0 {
		return
	}
	b.Section(id)
	heading(b, cfg, title)
	for _, r := range items {
		runs := []docmodel.Run{}
		if r.When != "" {
			runs = append(runs, docmodel.Run{Text: r.When + "  ", Color: cfg.Accent, Size: cfg.BodyHalfPoints() - 2})
		}
		runs = append(runs, docmodel.Run{Text: r.Heading, Bold: true})
		if r.Detail != "" {
			runs = append(runs, docmodel.Run{Text: ", "}, docmodel.Run{Text: r.Detail, Italic: true})
		}
		b.Add(docmodel.Paragraph{Runs: runs, SpaceBefore: cfg.Twips(80)})
		if r.Body != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: r.Body}}, Indent: 720})
		}
		for _, n := range r.Notes {
			b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: n}}, Indent: 720})
		}
	}
}

func skillLines(b *docmodel.Builder, cfg style.Config, id, title string, lines []skillLine) {
	if len(lines) == 0 {
		return
	}
	b.Section(id)
	heading(b, cfg, title)
	for _, l := range lines {
		runs := []docmodel.Run{}
		if l.Category != "" {
			runs = append(runs, docmodel.Run{Text: l.Category + ": ", Bold: true})
		}
		runs = append(runs, docmodel.Run{Text: l.Skills})
		b.Add(docmodel.Paragraph{Runs: runs})
	}
}
