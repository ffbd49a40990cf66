package frank

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

// defaultBrand is printed in the branding bar when the closing section
// names no company
const defaultBrand = "Frank Digital"

type view struct {
	Vars     template.CSS
	Layout   string
	Scheme   string
	Brand    string
	Name     string
	Role     string
	Photo    template.URL
	HasPhoto bool

	Contact        []field
	Summary        *summary
	Roles          []roleBlock
	Projects       []block
	Employment     []block
	Education      []block
	Certifications []block
	Courses        []block
	Competencies   []skillSet
	Categories     []skillSet
	Languages      []field
	Closing        *closing
}

type field struct {
	Key     string
	Value   string
	Href    template.URL
	HasHref bool
}

type summary struct {
	Introduction string
	Highlights   []string
	Specialties  []string
	Objective    string
}

type roleBlock struct {
	Title  string
	Skills []string
}

type block struct {
	Title        string
	Org          string
	Period       string
	Label        string
	Description  string
	Technologies []string
	Achievements []string
	Extra        []field
}

type skillSet struct {
	Name   string
	Skills []skillItem
}

type skillItem struct {
	Name  string
	Level string
	Rank  int
	Years string
}

type closing struct {
	Text    string
	Contact []field
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
		Scheme: cfg.ColorScheme,
		Brand:  defaultBrand,
		Name:   rendering.NormalizeText(pi.Name),
		Role:   rendering.NormalizeText(pi.Title),
	}
	if data.Closing != nil {
		if c := rendering.NormalizeText(data.Closing.Contact.Company); c != "" {
			v.Brand = c
		}
	}
	v.Photo, v.HasPhoto = rendering.SafeImageURL(pi.ProfileImage)
	v.Contact = contactFields(pi.Email, pi.Phone, pi.Location)
	for _, l := range []struct{ key, raw string }{
		{"LinkedIn", pi.LinkedIn},
		{"GitHub", pi.GitHub},
		{"Website", pi.Website},
	} {
		if raw := rendering.NormalizeText(l.raw); raw != "" {
			href, ok := rendering.SafeLink(raw)
			v.Contact = append(v.Contact, field{Key: l.key, Value: rendering.DisplayLink(raw), Href: href, HasHref: ok})
		}
	}

	if !data.Summary.IsEmpty() {
		s := &summary{
			Introduction: rendering.NormalizeText(data.Summary.Introduction),
			Highlights:   rendering.NormalizeAll(data.Summary.Points()),
			Specialties:  rendering.NormalizeAll(data.Summary.Specialties),
			Objective:    rendering.NormalizeText(data.Summary.CareerObjective),
		}
		if s.Introduction != "" || len(s.Highlights) > 0 || len(s.Specialties) > 0 || s.Objective != "" {
			v.Summary = s
		}
	}

	for _, r := range data.Roles {
		if t := rendering.NormalizeText(r.Title); t != "" {
			v.Roles = append(v.Roles, roleBlock{Title: t, Skills: rendering.NormalizeAll(r.Skills)})
		}
	}

	for _, p := range data.Projects {
		bl := block{
			Title:        rendering.NormalizeText(p.Title),
			Period:       rendering.NormalizeText(p.Period),
			Label:        rendering.NormalizeText(p.Type),
			Description:  rendering.NormalizeText(p.Description),
			Technologies: rendering.NormalizeAll(p.Technologies),
			Achievements: rendering.NormalizeAll(p.Achievements),
		}
		if bl.Title != "" {
			v.Projects = append(v.Projects, bl)
		}
	}

	for _, e := range data.Employment {
		bl := block{
			Title:        rendering.NormalizeText(e.Position),
			Org:          rendering.NormalizeText(e.Company),
			Period:       rendering.NormalizeText(e.Period),
			Description:  rendering.NormalizeText(e.Description),
			Technologies: rendering.NormalizeAll(e.Technologies),
			Achievements: rendering.NormalizeAll(e.Achievements),
		}
		if bl.Title != "" || bl.Org != "" {
			v.Employment = append(v.Employment, bl)
		}
	}

	for _, e := range data.Education {
		bl := block{
			Title:       rendering.NormalizeText(e.Degree),
			Org:         rendering.NormalizeText(e.Institution),
			Period:      rendering.NormalizeText(e.Period),
			Description: rendering.NormalizeText(e.Specialization),
		}
		if bl.Title != "" || bl.Org != "" {
			v.Education = append(v.Education, bl)
		}
	}

	for _, c := range data.Certifications {
		bl := block{
			Title:       rendering.NormalizeText(c.Title),
			Org:         rendering.NormalizeText(c.Issuer),
			Period:      rendering.NormalizeText(c.Year),
			Description: rendering.NormalizeText(c.Description),
		}
		if bl.Title != "" {
			v.Certifications = append(v.Certifications, bl)
		}
	}

	for _, c := range data.Courses {
		bl := block{
			Title:       rendering.NormalizeText(c.Name),
			Org:         rendering.NormalizeText(c.Provider),
			Period:      rendering.NormalizeText(c.CompletionDate),
			Description: rendering.NormalizeText(c.Description),
		}
		if d := rendering.NormalizeText(c.Duration); d != "" {
			bl.Extra = append(bl.Extra, field{Key: "Duration", Value: d})
		}
		if id := rendering.NormalizeText(c.CredentialID); id != "" {
			bl.Extra = append(bl.Extra, field{Key: "Credential", Value: id})
		}
		if u := rendering.NormalizeText(c.URL); u != "" {
			href, ok := rendering.SafeLink(u)
			bl.Extra = append(bl.Extra, field{Key: "Verify", Value: rendering.DisplayLink(u), Href: href, HasHref: ok})
		}
		if bl.Title != "" {
			v.Courses = append(v.Courses, bl)
		}
	}

	for i, c := range data.Competencies {
		set := skillSet{Name: rendering.NormalizeText(c.Category)}
		for _, s := range c.Skills {
			switch sk := s.(type) {
			case types.SkillName:
				if n := rendering.NormalizeText(string(sk)); n != "" {
					set.Skills = append(set.Skills, skillItem{Name: n})
				}
			case types.RatedSkill:
				if err := types.CheckRatedSkill("competencies", i, sk, false); err != nil {
					return nil, err
				}
				set.Skills = append(set.Skills, toSkillItem(sk))
			default:
				return nil, &types.DataShapeError{Section: "competencies", Index: i, Message: fmt.Sprintf("unsupported skill value %T", s)}
			}
		}
		if len(set.Skills) > 0 {
			v.Competencies = append(v.Competencies, set)
		}
	}

	for _, c := range data.CompetencyCategories {
		set := skillSet{Name: rendering.NormalizeText(c.Name)}
		for _, s := range c.Skills {
			set.Skills = append(set.Skills, toSkillItem(s))
		}
		if len(set.Skills) > 0 {
			v.Categories = append(v.Categories, set)
		}
	}

	for _, l := range data.Languages {
		if n := rendering.NormalizeText(l.Language); n != "" {
			v.Languages = append(v.Languages, field{Key: n, Value: rendering.NormalizeText(l.Proficiency)})
		}
	}

	if data.Closing.HasContent() {
		c := data.Closing
		cl := &closing{
			Text:    rendering.NormalizeText(c.Text),
			Contact: contactFields(c.Contact.Email, c.Contact.Phone, c.Contact.Location),
		}
		if co := rendering.NormalizeText(c.Contact.Company); co != "" {
			cl.Contact = append(cl.Contact, field{Key: "Company", Value: co})
		}
		if cl.Text != "" || len(cl.Contact) > 0 {
			v.Closing = cl
		}
	}

	return v, nil
}

func contactFields(email, phone, location string) []field {
	var out []field
	if e := rendering.NormalizeText(email); e != "" {
		href, ok := rendering.SafeLink("mailto:" + e)
		out = append(out, field{Key: "Email", Value: e, Href: href, HasHref: ok})
	}
	if p := rendering.NormalizeText(phone); p != "" {
		out = append(out, field{Key: "Phone", Value: p})
	}
	if l := rendering.NormalizeText(location); l != "" {
		out = append(out, field{Key: "Location", Value: l})
	}
	return out
}

func toSkillItem(s types.RatedSkill) skillItem {
	it := skillItem{
		Name:  rendering.NormalizeText(s.Name),
		Level: capitalize(string(s.Level)),
		Rank:  s.Level.Rank(),
	}
	if s.YearsOfExperience != nil {
		switch y := *s.YearsOfExperience; {
		case y == 1:
			it.Years = "1 year"
		case y > 1:
			it.Years = fmt.Sprintf("%d years", y)
		}
	}
	return it
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
