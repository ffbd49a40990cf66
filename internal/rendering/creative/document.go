package creative

import (
	"strings"

	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
)

func buildDocument(v *view, cfg style.Config) *docmodel.Document {
	body := cfg.BodyHalfPoints()
	b := docmodel.NewBuilder(v.Name, cfg.PrimaryFont(), body)

	// The hero band becomes a shaded title block
	b.Section(rendering.SectionHeader).
		Add(docmodel.Paragraph{
			Heading:     1,
			Runs:        []docmodel.Run{{Text: v.Name, Bold: true, Size: cfg.ScaledHalfPoints(2.4), Color: cfg.Primary}},
			Shading:     cfg.Highlight,
			SpaceBefore: cfg.Twips(120),
		}).
		Add(docmodel.Paragraph{
			Runs:       []docmodel.Run{{Text: v.Role, Bold: true, Size: cfg.ScaledHalfPoints(1.2), Color: cfg.Accent}},
			Shading:    cfg.Highlight,
			SpaceAfter: cfg.Twips(160),
		})

	if len(v.Links) > 0 {
		texts := make([]string, 0, len(v.Links))
		for _, l := range v.Links {
			texts = append(texts, l.Text)
		}
		b.Section(rendering.SectionContact).Add(docmodel.Paragraph{
			Runs:       []docmodel.Run{{Text: strings.Join(texts, "  |  "), Size: body - 2, Color: cfg.Primary, Bold: true}},
			SpaceAfter: cfg.Twips(160),
		})
	}

	if s := v.Summary; s != nil {
		b.Section(rendering.SectionSummary)
		if s.Intro != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Intro}}, Indent: 240, BorderBottom: cfg.Accent})
		}
		for _, p := range s.Points {
			b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: p}}})
		}
		if len(s.Tags) > 0 {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: strings.Join(s.Tags, " · "), Bold: true, Color: cfg.Accent}}})
		}
		if s.Objective != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: s.Objective, Italic: true, Color: cfg.Accent}}})
		}
	}

	clouds(b, cfg, rendering.SectionCompetencies, "Toolbox", v.Competencies)
	clouds(b, cfg, rendering.SectionCompetencyCategories, "Superpowers", v.Categories)

	if len(v.Languages) > 0 {
		b.Section(rendering.SectionLanguages)
		heading(b, cfg, "Languages")
		for _, l := range v.Languages {
			runs := []docmodel.Run{{Text: l.Left, Bold: true}}
			if l.Right != "" {
				runs = append(runs, docmodel.Run{Text: " " + l.Right, Color: cfg.Accent})
			}
			b.Add(docmodel.Paragraph{Runs: runs})
		}
	}

	clouds(b, cfg, rendering.SectionRoles, "Hats I Wear", v.Roles)

	cards(b, cfg, rendering.SectionProjects, "Featured Work", v.Projects)
	cards(b, cfg, rendering.SectionEmployment, "Experience", v.Employment)
	cards(b, cfg, rendering.SectionEducation, "Education", v.Education)
	cards(b, cfg, rendering.SectionCertifications, "Certifications", v.Certs)

	return b.Document()
}

func heading(b *docmodel.Builder, cfg style.Config, text string) {
	b.Add(docmodel.Paragraph{
		Heading:     2,
		Runs:        []docmodel.Run{{Text: text, Bold: true, Size: cfg.ScaledHalfPoints(1.1), Color: cfg.Accent}},
		SpaceBefore: cfg.Twips(280),
		SpaceAfter:  cfg.Twips(80),
	})
}

func clouds(b *docmodel.Builder, cfg style.Config, id, title string, groups []cloud) {
	if len(groups) == 0 {
		return
	}
	b.Section(id)
	heading(b, cfg, title)
	for _, g := range groups {
		if g.Title != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: g.Title, Bold: true, Color: cfg.Primary}}, SpaceBefore: cfg.Twips(60)})
		}
		if len(g.Tags) == 0 {
			continue
		}
		runs := make([]docmodel.Run, 0, len(g.Tags)*2)
		for i, t := range g.Tags {
			if i > 0 {
				runs = append(runs, docmodel.Run{Text: "  ·  ", Color: cfg.Highlight})
			}
			runs = append(runs, docmodel.Run{Text: t.Text})
			if t.Dots > 0 {
				runs = append(runs, docmodel.Run{Text: " " + strings.Repeat("●", t.Dots), Color: cfg.Accent, Size: cfg.BodyHalfPoints() - 4})
			}
			if t.Note != "" {
				runs = append(runs, docmodel.Run{Text: " " + t.Note, Italic: true, Size: cfg.BodyHalfPoints() - 2})
			}
		}
		b.Add(docmodel.Paragraph{Runs: runs})
	}
}

func cards(b *docmodel.Builder, cfg style.Config, id, title string, items []card) {
	if len(items) == 0 {
		return
	}
	b.Section(id)
	heading(b, cfg, title)
	for _, c := range items {
		if c.Kicker != "" {
			b.Add(docmodel.Paragraph{
				Runs:        []docmodel.Run{{Text: c.Kicker, Bold: true, Size: cfg.BodyHalfPoints() - 4, Color: cfg.Accent}},
				SpaceBefore: cfg.Twips(120),
			})
		}
		runs := []docmodel.Run{{Text: c.Title, Bold: true, Size: cfg.ScaledHalfPoints(1.05)}}
		if c.Meta != "" {
			runs = append(runs, docmodel.Run{Text: "   " + c.Meta, Color: cfg.Primary, Size: cfg.BodyHalfPoints() - 2})
		}
		b.Add(docmodel.Paragraph{Runs: runs, BorderBottom: cfg.Primary})
		if c.Text != "" {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: c.Text}}})
		}
		if len(c.Stack) > 0 {
			b.Add(docmodel.Paragraph{Runs: []docmodel.Run{{Text: strings.Join(c.Stack, " / "), Color: cfg.Primary, Size: cfg.BodyHalfPoints() - 2}}})
		}
		for _, w := range c.Wins {
			b.Add(docmodel.Paragraph{Bullet: true, Runs: []docmodel.Run{{Text: w}}})
		}
	}
}
