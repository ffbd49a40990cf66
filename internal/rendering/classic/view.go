package classic

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

type view struct {
	Vars   template.CSS
	Layout string
	Name   string
	Role   string

	Contact        []string
	Summary        *summary
	Employment     []row
	Projects       []row
	Education      []row
	Certifications []row
	Courses        []row
	Competencies   []skillLine
	Categories     []skillLine
	Languages      []string
}

type summary struct {
	Intro       string
	Points      []string
	Specialties string
	Objective   string
}

// row is one line of the date/content table used by every history section
type row struct {
	When    string
	Heading string
	Detail  string
	Body    string
	Notes   []string
}

// skillLine is a category followed by its comma-separated skills
type skillLine struct {
	Category string
	Skills   string
}

func buildView(data *types.CompleteCVData, cfg style.Config) (*view, error) {
	if err := rendering.RequireMandatory(data); err != nil {
		return nil, err
	}
	if err := rendering.CheckCompetencyCategories(data.CompetencyCategories); err != nil {
		return nil, err
	}

	pi := data.PersonalInfo
	v := &view{
		Vars:   rendering.CSSVars(cfg),
		Layout: cfg.Layout,
		Name:   rendering.NormalizeText(pi.Name),
		Role:   rendering.NormalizeText(pi.Title),
	}

	for _, s := range []string{pi.Email, pi.Phone, pi.Location} {
		if s = rendering.NormalizeText(s); s != "" {
			v.Contact = append(v.Contact, s)
		}
	}
	for _, s := range []string{pi.LinkedIn, pi.GitHub, pi.Website} {
		if s = rendering.NormalizeText(s); s != "" {
			v.Contact = append(v.Contact, rendering.DisplayLink(s))
		}
	}

	if !data.Summary.IsEmpty() {
		s := &summary{
			Intro:       rendering.NormalizeText(data.Summary.Introduction),
			Points:      rendering.NormalizeAll(data.Summary.Points()),
			Specialties: strings.Join(rendering.NormalizeAll(data.Summary.Specialties), ", "),
			Objective:   rendering.NormalizeText(data.Summary.CareerObjective),
		}
		if s.Intro != "" || len(s.Points) > 0 || s.Specialties != "" || s.Objective != "" {
			v.Summary = s
		}
	}

	for _, e := range data.Employment {
		r := row{
			When:    rendering.NormalizeText(e.Period),
			Heading: rendering.NormalizeText(e.Position),
			Detail:  rendering.NormalizeText(e.Company),
			Body:    rendering.NormalizeText(e.Description),
			Notes:   rendering.NormalizeAll(e.Achievements),
		}
		if tech := rendering.NormalizeAll(e.Technologies); len(tech) > 0 {
			r.Notes = append(r.Notes, "Technologies: "+strings.Join(tech, ", "))
		}
		if r.Heading != "" || r.Detail != "" {
			v.Employment = append(v.Employment, r)
		}
	}

	for _, p := range data.Projects {
		r := row{
			When:    rendering.NormalizeText(p.Period),
			Heading: rendering.NormalizeText(p.Title),
			Detail:  rendering.NormalizeText(p.Type),
			Body:    rendering.NormalizeText(p.Description),
			Notes:   rendering.NormalizeAll(p.Achievements),
		}
		if tech := rendering.NormalizeAll(p.Technologies); len(tech) > 0 {
			r.Notes = append(r.Notes, "Technologies: "+strings.Join(tech, ", "))
		}
		if r.Heading != "" {
			v.Projects = append(v.Projects, r)
		}
	}

	for _, e := range data.Education {
		r := row{
			When:    rendering.NormalizeText(e.Period),
			Heading: rendering.NormalizeText(e.Degree),
			Detail:  rendering.NormalizeText(e.Institution),
			Body:    rendering.NormalizeText(e.Specialization),
		}
		if r.Heading != "" || r.Detail != "" {
			v.Education = append(v.Education, r)
		}
	}

	for _, c := range data.Certifications {
		r := row{
			When:    rendering.NormalizeText(c.Year),
			Heading: rendering.NormalizeText(c.Title),
			Detail:  rendering.NormalizeText(c.Issuer),
			Body:    rendering.NormalizeText(c.Description),
		}
		if r.Heading != "" {
			v.Certifications = append(v.Certifications, r)
		}
	}

	for _, c := range data.Courses {
		r := row{
			When:    rendering.NormalizeText(c.CompletionDate),
			Heading: rendering.NormalizeText(c.Name),
			Detail:  rendering.NormalizeText(c.Provider),
			Body:    rendering.NormalizeText(c.Description),
		}
		var meta []string
		if d := rendering.NormalizeText(c.Duration); d != "" {
			meta = append(meta, d)
		}
		if id := rendering.NormalizeText(c.CredentialID); id != "" {
			meta = append(meta, "Credential "+id)
		}
		if len(meta) > 0 {
			r.Notes = append(r.Notes, strings.Join(meta, " | "))
		}
		if r.Heading != "" {
			v.Courses = append(v.Courses, r)
		}
	}

	for i, c := range data.Competencies {
		var names []string
		for _, s := range c.Skills {
			switch sk := s.(type) {
			case types.SkillName:
				if n := rendering.NormalizeText(string(sk)); n != "" {
					names = append(names, n)
				}
			case types.RatedSkill:
				if err := types.CheckRatedSkill("competencies", i, sk, false); err != nil {
					return nil, err
				}
				names = append(names, skillLabel(sk))
			default:
				return nil, &types.DataShapeError{Section: "competencies", Index: i, Message: fmt.Sprintf("unsupported skill value %T", s)}
			}
		}
		if len(names) > 0 {
			v.Competencies = append(v.Competencies, skillLine{Category: rendering.NormalizeText(c.Category), Skills: strings.Join(names, ", ")})
		}
	}

	for _, c := range data.CompetencyCategories {
		names := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			names = append(names, skillLabel(s))
		}
		if len(names) > 0 {
			v.Categories = append(v.Categories, skillLine{Category: rendering.NormalizeText(c.Name), Skills: strings.Join(names, ", ")})
		}
	}

	for _, l := range data.Languages {
		name := rendering.NormalizeText(l.Language)
		if name == "" {
			continue
		}
		if p := rendering.NormalizeText(l.Proficiency); p != "" {
			name += " (" + p + ")"
		}
		v.Languages = append(v.Languages, name)
	}

	return v, nil
}

// skillLabel prints a rated skill as "Name (level, N years)"
func skillLabel(s types.RatedSkill) string {
	name := rendering.NormalizeText(s.Name)
	var meta []string
	if s.Level != "" {
		meta = append(meta, string(s.Level))
	}
	if s.YearsOfExperience != nil && *s.YearsOfExperience > 0 {
		meta = append(meta, fmt.Sprintf("%d years", *s.YearsOfExperience))
	}
	if len(meta) == 0 {
		return name
	}
	return name + " (" + strings.Join(meta, ", ") + ")"
}
