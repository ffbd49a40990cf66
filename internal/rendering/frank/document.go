package frank

import (
	"strings"

	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
)

// docWriter carries the builder and resolved sizes through the section writers
type docWriter struct {
	b     *docmodel.Builder
	cfg   style.Config
	body  int
	small int
}

func buildDocument(v *view, cfg style.Config) *docmodel.Document {
	body := cfg.BodyHalfPoints()
	w := &docWriter{
		b:     docmodel.NewBuilder(v.Name, cfg.PrimaryFont(), body),
		cfg:   cfg,
		body:  body,
		small: body - 2,
	}

	w.header(v)
	if len(v.Contact) > 0 {
		w.b.Section(rendering.SectionContact).Add(w.fields(v.Contact, cfg.Highlight))
	}
	w.summary(v.Summary)
	w.roles(v.Roles)
	w.blocks(rendering.SectionProjects, "Projects", v.Projects)
	w.blocks(rendering.SectionEmployment, "Employment", v.Employment)
	w.blocks(rendering.SectionEducation, "Education", v.Education)
	w.blocks(rendering.SectionCertifications, "Certifications", v.Certifications)
	w.blocks(rendering.SectionCourses, "Courses", v.Courses)
	w.skills(rendering.SectionCompetencies, "Competencies", v.Competencies)
	w.skills(rendering.SectionCompetencyCategories, "Competency Areas", v.Categories)
	w.languages(v.Languages)
	w.closing(v.Closing)

	return w.b.Document()
}

func (w *docWriter) header(v *view) {
	w.b.Section(rendering.SectionHeader).
		Add(docmodel.Paragraph{
			Runs: []docmodel.Run{
				{Text: v.Brand, Bold: true, Size: w.small, Color: w.cfg.Primary},
				{Text: "  Curriculum Vitae", Size: w.small},
			},
			Shading:    w.cfg.Accent,
			SpaceAfter: w.cfg.Twips(200),
		}).
		Add(docmodel.Paragraph{
			Heading: 1,
			Runs:    []docmodel.Run{{Text: v.Name, Bold: true, Size: w.cfg.ScaledHalfPoints(2.3), Color: w.cfg.Accent}},
		}).
		Add(docmodel.Paragraph{
			Runs:         []docmodel.Run{{Text: v.Role, Bold: true, Size: w.cfg.ScaledHalfPoints(1.1), Color: w.cfg.Primary}},
			BorderBottom: w.cfg.Primary,
			SpaceAfter:   w.cfg.Twips(160),
		})
}

func (w *docWriter) heading(text string) {
	w.b.Add(docmodel.Paragraph{
		Heading: 2,
		Runs: []docmodel.Run{
			{Text: "■ ", Color: w.cfg.Primary, Size: w.cfg.ScaledHalfPoints(1.1)},
			{Text: text, Bold: true, Size: w.cfg.ScaledHalfPoints(1.1), Color: w.cfg.Accent},
		},
		SpaceBefore:  w.cfg.Twips(280),
		SpaceAfter:   w.cfg.Twips(100),
		BorderBottom: w.cfg.Highlight,
	})
}

func (w *docWriter) fields(fs []field, shading style.Color) docmodel.Paragraph {
	runs := make([]docmodel.Run, 0, len(fs)*2)
	for i, f := range fs {
		key := f.Key + " "
		if i > 0 {
			key = "   " + key
		}
		runs = append(runs,
			docmodel.Run{Text: key, Bold: true, Color: w.cfg.Primary, Size: w.small},
			docmodel.Run{Text: f.Value, Size: w.small},
		)
	}
	return docmodel.Paragraph{Runs: runs, Shading: shading, SpaceAfter: w.cfg.Twips(120)}
}

func (w *docWriter) summary(s *summary) {
	if s == nil {
		return
	}
	w.b.Section(rendering.SectionSummary)
	w.heading("Profile")
	if s.Introduction != "" {
		w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Introduction, Size: w.cfg.ScaledHalfPoints(1.05)}}})
	}
	for _, h := range s.Highlights {
		w.b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: h}}})
	}
	if len(s.Specialties) > 0 {
		w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: strings.Join(s.Specialties, " · "), Bold: true, Size: w.small}}})
	}
	if s.Objective != "" {
		w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Objective, Italic: true}}, Indent: 240})
	}
}

func (w *docWriter) roles(roles []roleBlock) {
	if len(roles) == 0 {
		return
	}
	w.b.Section(rendering.SectionRoles)
	w.heading("Roles")
	for _, r := range roles {
		w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: r.Title, Bold: true}}, SpaceBefore: w.cfg.Twips(60)})
		if len(r.Skills) > 0 {
			w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: strings.Join(r.Skills, ", "), Size: w.small}}})
		}
	}
}

func (w *docWriter) blocks(id, title string, items []block) {
	if len(items) == 0 {
		return
	}
	w.b.Section(id)
	w.heading(title)
	for _, bl := range items {
		if bl.Label != "" {
			w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: bl.Label, Size: w.small - 2, Color: w.cfg.Primary}}, SpaceBefore: w.cfg.Twips(100)})
		}
		head := []docmodel.Run{{Text: bl.Title, Bold: true}}
		if bl.Period != "" {
			head = append(head, docmodel.Run{Text: "  " + bl.Period, Size: w.small})
		}
		para := docmodel.Paragraph{Runs: head}
		if bl.Label == "" {
			para.SpaceBefore = w.cfg.Twips(100)
		}
		w.b.Add(para)
		if bl.Org != "" {
			w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: bl.Org, Bold: true, Color: w.cfg.Primary}}})
		}
		if bl.Description != "" {
			w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: bl.Description}}})
		}
		if len(bl.Technologies) > 0 {
			w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: strings.Join(bl.Technologies, " · "), Size: w.small, Color: w.cfg.Accent}}})
		}
		for _, a := range bl.Achievements {
			w.b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: a}}})
		}
		if len(bl.Extra) > 0 {
			w.b.Add(w.fields(bl.Extra, style.Color{}))
		}
	}
}

func (w *docWriter) skills(id, title string, sets []skillSet) {
	if len(sets) == 0 {
		return
	}
	w.b.Section(id)
	w.heading(title)
	for _, set := range sets {
		if set.Name != "" {
			w.b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: set.Name, Bold: true, Color: w.cfg.Primary}}, SpaceBefore: w.cfg.Twips(80)})
		}
		for _, s := range set.Skills {
			runs := []docmodel.Run{{Text: s.Name}}
			if s.Years != "" {
				runs = append(runs, docmodel.Run{Text: " " + s.Years, Size: w.small, Italic: true})
			}
			if s.Rank > 0 {
				runs = append(runs,
					docmodel.Run{Text: " " + s.Level, Size: w.small},
					docmodel.Run{Text: " " + strings.Repeat("■", s.Rank), Color: w.cfg.Primary, Size: w.small},
					docmodel.Run{Text: strings.Repeat("■", 4-s.Rank), Color: w.cfg.Highlight, Size: w.small},
				)
			}
			w.b.Add(docmodel.Paragraph{Bullet: true, Runs: runs})
		}
	}
}

func (w *docWriter) languages(langs []field) {
	if len(langs) == 0 {
		return
	}
	w.b.Section(rendering.SectionLanguages)
	w.heading("Languages")
	for _, l := range langs {
		runs := []docmodel.Run{{Text: l.Key, Bold: true}}
		if l.Value != "" {
			runs = append(runs, docmodel.Run{Text: " " + l.Value, Size: w.small})
		}
		w.b.Add(docmodel.Paragraph{Runs: runs})
	}
}

func (w *docWriter) closing(c *closing) {
	if c == nil {
		return
	}
	w.b.Section(rendering.SectionClosing)
	w.heading("Let's Talk")
	if c.Text != "" {
		w.b.Add(docmodel.Paragraph{
			Runs:    []docmodel.Run{{Text: c.Text, Bold: true, Size: w.cfg.ScaledHalfPoints(1.2), Color: w.cfg.Primary}},
			Shading: w.cfg.Highlight,
		})
	}
	if len(c.Contact) > 0 {
		w.b.Add(w.fields(c.Contact, w.cfg.Highlight))
	}
}
