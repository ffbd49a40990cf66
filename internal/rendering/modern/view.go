package modern

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

// view is the normalized data both outputs are built from. Empty slices and
// nil pointers mean the section is omitted.
type view struct {
	Vars     template.CSS
	Layout   string
	Name     string
	Role     string
	Photo    template.URL
	HasPhoto bool

	Contact        []contactItem
	Competencies   []skillGroup
	Categories     []skillGroup
	Languages      []language
	Summary        *summary
	Roles          []roleItem
	Employment     []entry
	Projects       []entry
	Education      []entry
	Certifications []entry
	Courses        []entry
}

type contactItem struct {
	Label   string
	Text    string
	Href    template.URL
	HasHref bool
}

type skill struct {
	Name  string
	Level string
	Rank  int
	Years int
}

// Caption is the secondary text printed after a rated skill
func (s skill) Caption() string {
	switch {
	case s.Level != "" && s.Years > 0:
		return fmt.Sprintf("%s, %d yrs", s.Level, s.Years)
	case s.Level != "":
		return s.Level
	case s.Years > 0:
		return fmt.Sprintf("%d yrs", s.Years)
	}
	return ""
}

type skillGroup struct {
	Name   string
	Skills []skill
}

type language struct {
	Name  string
	Level string
}

type summary struct {
	Intro       string
	Points      []string
	Specialties []string
	Objective   string
}

type roleItem struct {
	Title  string
	Skills []string
}

type entry struct {
	Title       string
	Subtitle    string
	Period      string
	Description string
	Tags        []string
	Bullets     []string
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
	v.Photo, v.HasPhoto = rendering.SafeImageURL(pi.ProfileImage)

	v.Contact = contactItems(pi)

	comps, err := competencyGroups(data.Competencies)
	if err != nil {
		return nil, err
	}
	v.Competencies = comps
	v.Categories = categoryGroups(data.CompetencyCategories)

	for _, l := range data.Languages {
		name := rendering.NormalizeText(l.Language)
		if name == "" {
			continue
		}
		v.Languages = append(v.Languages, language{Name: name, Level: rendering.NormalizeText(l.Proficiency)})
	}

	if !data.Summary.IsEmpty() {
		s := &summary{
			Intro:       rendering.NormalizeText(data.Summary.Introduction),
			Points:      rendering.NormalizeAll(data.Summary.Points()),
			Specialties: rendering.NormalizeAll(data.Summary.Specialties),
			Objective:   rendering.NormalizeText(data.Summary.CareerObjective),
		}
		if s.Intro != "" || len(s.Points) > 0 || len(s.Specialties) > 0 || s.Objective != "" {
			v.Summary = s
		}
	}

	for _, r := range data.Roles {
		title := rendering.NormalizeText(r.Title)
		if title == "" {
			continue
		}
		v.Roles = append(v.Roles, roleItem{Title: title, Skills: rendering.NormalizeAll(r.Skills)})
	}

	for _, e := range data.Employment {
		it := entry{
			Title:       rendering.NormalizeText(e.Position),
			Subtitle:    rendering.NormalizeText(e.Company),
			Period:      rendering.NormalizeText(e.Period),
			Description: rendering.NormalizeText(e.Description),
			Tags:        rendering.NormalizeAll(e.Technologies),
			Bullets:     rendering.NormalizeAll(e.Achievements),
		}
		if it.Title != "" || it.Subtitle != "" {
			v.Employment = append(v.Employment, it)
		}
	}

	for _, p := range data.Projects {
		it := entry{
			Title:       rendering.NormalizeText(p.Title),
			Subtitle:    rendering.NormalizeText(p.Type),
			Period:      rendering.NormalizeText(p.Period),
			Description: rendering.NormalizeText(p.Description),
			Tags:        rendering.NormalizeAll(p.Technologies),
			Bullets:     rendering.NormalizeAll(p.Achievements),
		}
		if it.Title != "" {
			v.Projects = append(v.Projects, it)
		}
	}

	for _, e := range data.Education {
		it := entry{
			Title:       rendering.NormalizeText(e.Degree),
			Subtitle:    rendering.NormalizeText(e.Institution),
			Period:      rendering.NormalizeText(e.Period),
			Description: rendering.NormalizeText(e.Specialization),
		}
		if it.Title != "" || it.Subtitle != "" {
			v.Education = append(v.Education, it)
		}
	}

	for _, c := range data.Certifications {
		it := entry{
			Title:       rendering.NormalizeText(c.Title),
			Subtitle:    rendering.NormalizeText(c.Issuer),
			Period:      rendering.NormalizeText(c.Year),
			Description: rendering.NormalizeText(c.Description),
		}
		if it.Title != "" {
			v.Certifications = append(v.Certifications, it)
		}
	}

	for _, c := range data.Courses {
		it := entry{
			Title:       rendering.NormalizeText(c.Name),
			Subtitle:    rendering.NormalizeText(c.Provider),
			Period:      rendering.NormalizeText(c.CompletionDate),
			Description: rendering.NormalizeText(c.Description),
		}
		if d := rendering.NormalizeText(c.Duration); d != "" {
			it.Tags = append(it.Tags, d)
		}
		if id := rendering.NormalizeText(c.CredentialID); id != "" {
			it.Tags = append(it.Tags, "ID "+id)
		}
		if it.Title != "" {
			v.Courses = append(v.Courses, it)
		}
	}

	return v, nil
}

func contactItems(pi types.PersonalInfo) []contactItem {
	var items []contactItem
	if email := rendering.NormalizeText(pi.Email); email != "" {
		href, ok := rendering.SafeLink("mailto:" + email)
		items = append(items, contactItem{Label: "Email", Text: email, Href: href, HasHref: ok})
	}
	if phone := rendering.NormalizeText(pi.Phone); phone != "" {
		items = append(items, contactItem{Label: "Phone", Text: phone})
	}
	if loc := rendering.NormalizeText(pi.Location); loc != "" {
		items = append(items, contactItem{Label: "Location", Text: loc})
	}
	for _, l := range []struct{ label, raw string }{
		{"LinkedIn", pi.LinkedIn},
		{"GitHub", pi.GitHub},
		{"Website", pi.Website},
	} {
		raw := rendering.NormalizeText(l.raw)
		if raw == "" {
			continue
		}
		href, ok := rendering.SafeLink(raw)
		items = append(items, contactItem{Label: l.label, Text: rendering.DisplayLink(raw), Href: href, HasHref: ok})
	}
	return items
}

func competencyGroups(comps []types.Competency) ([]skillGroup, error) {
	var groups []skillGroup
	for i, c := range comps {
		g := skillGroup{Name: rendering.NormalizeText(c.Category)}
		for _, s := range c.Skills {
			switch sk := s.(type) {
			case types.SkillName:
				if name := rendering.NormalizeText(string(sk)); name != "" {
					g.Skills = append(g.Skills, skill{Name: name})
				}
			case types.RatedSkill:
				if err := types.CheckRatedSkill("competencies", i, sk, false); err != nil {
					return nil, err
				}
				g.Skills = append(g.Skills, ratedSkill(sk))
			default:
				return nil, &types.DataShapeError{
					Section: "competencies",
					Index:   i,
					Message: fmt.Sprintf("unsupported skill value %T", s),
				}
			}
		}
		if len(g.Skills) > 0 {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

func categoryGroups(cats []types.CompetencyCategory) []skillGroup {
	var groups []skillGroup
	for _, c := range cats {
		g := skillGroup{Name: rendering.NormalizeText(c.Name)}
		for _, s := range c.Skills {
			g.Skills = append(g.Skills, ratedSkill(s))
		}
		if len(g.Skills) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

func ratedSkill(s types.RatedSkill) skill {
	out := skill{
		Name:  rendering.NormalizeText(s.Name),
		Level: strings.ToLower(string(s.Level)),
		Rank:  s.Level.Rank(),
	}
	if s.YearsOfExperience != nil {
		out.Years = *s.YearsOfExperience
	}
	return out
}
