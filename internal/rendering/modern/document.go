package modern

import (
	"strings"

	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
)

// buildDocument lays the sidebar sections out first, mirroring the DOM order
// of the HTML output, since DOCX has no column flow.
func buildDocument(v *view, cfg style.Config) *docmodel.Document {
	body := cfg.BodyHalfPoints()
	b := docmodel.NewBuilder(v.Name, cfg.PrimaryFont(), body)

	b.Section(rendering.SectionHeader).
		Add(docmodel.Paragraph{
			Heading:    1,
			Runs:       []docmodel.Run{{Text: v.Name, Bold: true, Size: cfg.ScaledHalfPoints(2.2), Color: cfg.Primary}},
			SpaceAfter: cfg.Twips(40),
		}).
		Add(docmodel.Paragraph{
			Runs:         []docmodel.Run{{Text: v.Role, Size: cfg.ScaledHalfPoints(1.2), Color: cfg.Accent}},
			SpaceAfter:   cfg.Twips(200),
			BorderBottom: cfg.Primary,
		})

	if len(v.Contact) > 0 {
		b.Section(rendering.SectionContact)
		heading(b, cfg, "Contact")
		for _, c := range v.Contact {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{
				{Text: c.Label + " ", Bold: true, Color: cfg.Accent, Size: body - 2},
				{Text: c.Text},
			}})
		}
	}

	if len(v.Competencies) > 0 {
		b.Section(rendering.SectionCompetencies)
		heading(b, cfg, "Skills")
		skillGroups(b, cfg, v.Competencies)
	}

	if len(v.Categories) > 0 {
		b.Section(rendering.SectionCompetencyCategories)
		heading(b, cfg, "Expertise")
		skillGroups(b, cfg, v.Categories)
	}

	if len(v.Languages) > 0 {
		b.Section(rendering.SectionLanguages)
		heading(b, cfg, "Languages")
		for _, l := range v.Languages {
			runs := []docmodel.Run{{Text: l.Name, Bold: true}}
			if l.Level != "" {
				runs = append(runs, docmodel.Run{Text: " " + l.Level, Color: cfg.Accent})
			}
			b.Add(docmodel.Paragraph{Runs: runs})
		}
	}

	if s := v.Summary; s != nil {
		b.Section(rendering.SectionSummary)
		heading(b, cfg, "Profile")
		if s.Intro != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Intro}}, SpaceAfter: cfg.Twips(80)})
		}
		for _, p := range s.Points {
			b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: p}}})
		}
		if len(s.Specialties) > 0 {
			b.Add(chips(cfg, s.Specialties))
		}
		if s.Objective != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Objective, Italic: true, Color: cfg.Accent}}})
		}
	}

	if len(v.Roles) > 0 {
		b.Section(rendering.SectionRoles)
		heading(b, cfg, "Roles")
		for _, r := range v.Roles {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: r.Title, Bold: true}}})
			if len(r.Skills) > 0 {
				b.Add(chips(cfg, r.Skills))
			}
		}
	}

	entrySection(b, cfg, rendering.SectionEmployment, "Experience", v.Employment)
	entrySection(b, cfg, rendering.SectionProjects, "Projects", v.Projects)
	entrySection(b, cfg, rendering.SectionEducation, "Education", v.Education)
	entrySection(b, cfg, rendering.SectionCertifications, "Certifications", v.Certifications)
	entrySection(b, cfg, rendering.SectionCourses, "Courses", v.Courses)

	return b.Document()
}

func heading(b *docmodel.Builder, cfg style.Config, text string) {
	b.Add(docmodel.Paragraph{
		Heading:      2,
		Runs:         []docmodel.Run{{Text: text, Bold: true, Size: cfg.ScaledHalfPoints(1.15), Color: cfg.Primary}},
		SpaceBefore:  cfg.Twips(240),
		SpaceAfter:   cfg.Twips(80),
		BorderBottom: cfg.Highlight,
	})
}

func chips(cfg style.Config, items []string) docmodel.Paragraph {
	return docmodel.Paragraph{
		Runs:       []docmodel.Run{{Text: strings.Join(items, " · "), Size: cfg.BodyHalfPoints() - 2, Color: cfg.Accent}},
		SpaceAfter: cfg.Twips(60),
	}
}

func skillGroups(b *docmodel.Builder, cfg style.Config, groups []skillGroup) {
	for _, g := range groups {
		if g.Name != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: g.Name, Bold: true}}, SpaceBefore: cfg.Twips(60)})
		}
		for _, s := range g.Skills {
			runs := []docmodel.Run{{Text: s.Name}}
			if c := s.Caption(); c != "" {
				runs = append(runs, docmodel.Run{Text: " " + c, Color: cfg.Accent, Size: cfg.BodyHalfPoints() - 2})
			}
			b.Add(docmodel.Paragraph{Bullet: true, Runs: runs})
		}
	}
}

func entrySection(b *docmodel.Builder, cfg style.Config, id, title string, entries []entry) {
	if len(entries) == 0 {
		return
	}
	b.Section(id)
	heading(b, cfg, title)
	for _, e := range entries {
		runs := []docmodel.Run{{Text: e.Title, Bold: true}}
		if e.Period != "" {
			runs = append(runs, docmodel.Run{Text: "  " + e.Period, Color: cfg.Accent, Size: cfg.BodyHalfPoints() - 2})
		}
		b.Add(docmodel.Paragraph{Runs: runs, SpaceBefore: cfg.Twips(100)})
		if e.Subtitle != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: e.Subtitle, Bold: true, Color: cfg.Accent}}})
		}
		if e.Description != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: e.Description}}})
		}
		if len(e.Tags) > 0 {
			b.Add(chips(cfg, e.Tags))
		}
		for _, bl := range e.Bullets {
			b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: bl}}})
		}
	}
}
