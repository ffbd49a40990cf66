package creative

import (
	"fmt"
	"html/template"

	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

type view struct {
	Vars     template.CSS
	Layout   string
	Name     string
	Role     string
	Initials string
	Photo    template.URL
	HasPhoto bool

	Links        []link
	Summary      *summary
	Competencies []cloud
	Categories   []cloud
	Languages    []pair
	Roles        []cloud
	Projects     []card
	Employment   []card
	Education    []card
	Certs        []card
}

type link struct {
	Text    string
	Href    template.URL
	HasHref bool
}

type summary struct {
	Intro     string
	Points    []string
	Tags      []string
	Objective string
}

// cloud is a titled group of tags. Dots is 0 for unrated tags.
type cloud struct {
	Title string
	Tags  []tag
}

type tag struct {
	Text string
	Dots int
	Note string
}

type pair struct {
	Left  string
	Right string
}

type card struct {
	Kicker string
	Title  string
	Meta   string
	Text   string
	Stack  []string
	Wins   []string
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
	v.Initials = initials(v.Name)
	v.Photo, v.HasPhoto = rendering.SafeImageURL(pi.ProfileImage)

	if email := rendering.NormalizeText(pi.Email); email != "" {
		href, ok := rendering.SafeLink("mailto:" + email)
		v.Links = append(v.Links, link{Text: email, Href: href, HasHref: ok})
	}
	for _, s := range []string{pi.Phone, pi.Location} {
		if s = rendering.NormalizeText(s); s != "" {
			v.Links = append(v.Links, link{Text: s})
		}
	}
	for _, s := range []string{pi.Website, pi.GitHub, pi.LinkedIn} {
		if s = rendering.NormalizeText(s); s != "" {
			href, ok := rendering.SafeLink(s)
			v.Links = append(v.Links, link{Text: rendering.DisplayLink(s), Href: href, HasHref: ok})
		}
	}

	if !data.Summary.IsEmpty() {
		s := &summary{
			Intro:     rendering.NormalizeText(data.Summary.Introduction),
			Points:    rendering.NormalizeAll(data.Summary.Points()),
			Tags:      rendering.NormalizeAll(data.Summary.Specialties),
			Objective: rendering.NormalizeText(data.Summary.CareerObjective),
		}
		if s.Intro != "" || len(s.Points) > 0 || len(s.Tags) > 0 || s.Objective != "" {
			v.Summary = s
		}
	}

	for i, c := range data.Competencies {
		cl := cloud{Title: rendering.NormalizeText(c.Category)}
		for _, s := range c.Skills {
			switch sk := s.(type) {
			case types.RatedSkill:
				if err := types.CheckRatedSkill("competencies", i, sk, false); err != nil {
					return nil, err
				}
				cl.Tags = append(cl.Tags, ratedTag(sk))
			case types.SkillName:
				if n := rendering.NormalizeText(string(sk)); n != "" {
					cl.Tags = append(cl.Tags, tag{Text: n})
				}
			default:
				return nil, &types.DataShapeError{Section: "competencies", Index: i, Message: fmt.Sprintf("unsupported skill value %T", s)}
			}
		}
		if len(cl.Tags) > 0 {
			v.Competencies = append(v.Competencies, cl)
		}
	}

	for _, c := range data.CompetencyCategories {
		cl := cloud{Title: rendering.NormalizeText(c.Name)}
		for _, s := range c.Skills {
			cl.Tags = append(cl.Tags, ratedTag(s))
		}
		if len(cl.Tags) > 0 {
			v.Categories = append(v.Categories, cl)
		}
	}

	for _, l := range data.Languages {
		if n := rendering.NormalizeText(l.Language); n != "" {
			v.Languages = append(v.Languages, pair{Left: n, Right: rendering.NormalizeText(l.Proficiency)})
		}
	}

	for _, r := range data.Roles {
		title := rendering.NormalizeText(r.Title)
		if title == "" {
			continue
		}
		cl := cloud{Title: title}
		for _, s := range rendering.NormalizeAll(r.Skills) {
			cl.Tags = append(cl.Tags, tag{Text: s})
		}
		v.Roles = append(v.Roles, cl)
	}

	for _, p := range data.Projects {
		c := card{
			Kicker: rendering.NormalizeText(p.Type),
			Title:  rendering.NormalizeText(p.Title),
			Meta:   rendering.NormalizeText(p.Period),
			Text:   rendering.NormalizeText(p.Description),
			Stack:  rendering.NormalizeAll(p.Technologies),
			Wins:   rendering.NormalizeAll(p.Achievements),
		}
		if c.Title != "" {
			v.Projects = append(v.Projects, c)
		}
	}

	for _, e := range data.Employment {
		c := card{
			Kicker: rendering.NormalizeText(e.Company),
			Title:  rendering.NormalizeText(e.Position),
			Meta:   rendering.NormalizeText(e.Period),
			Text:   rendering.NormalizeText(e.Description),
			Stack:  rendering.NormalizeAll(e.Technologies),
			Wins:   rendering.NormalizeAll(e.Achievements),
		}
		if c.Title != "" || c.Kicker != "" {
			v.Employment = append(v.Employment, c)
		}
	}

	for _, e := range data.Education {
		c := card{
			Kicker: rendering.NormalizeText(e.Institution),
			Title:  rendering.NormalizeText(e.Degree),
			Meta:   rendering.NormalizeText(e.Period),
			Text:   rendering.NormalizeText(e.Specialization),
		}
		if c.Title != "" || c.Kicker != "" {
			v.Education = append(v.Education, c)
		}
	}

	for _, ce := range data.Certifications {
		c := card{
			Kicker: rendering.NormalizeText(ce.Issuer),
			Title:  rendering.NormalizeText(ce.Title),
			Meta:   rendering.NormalizeText(ce.Year),
			Text:   rendering.NormalizeText(ce.Description),
		}
		if c.Title != "" {
			v.Certs = append(v.Certs, c)
		}
	}

	return v, nil
}

func ratedTag(s types.RatedSkill) tag {
	t := tag{Text: rendering.NormalizeText(s.Name), Dots: s.Level.Rank()}
	if s.YearsOfExperience != nil && *s.YearsOfExperience > 0 {
		t.Note = fmt.Sprintf("%d+ yrs", *s.YearsOfExperience)
	}
	return t
}

// initials returns up to two leading letters used when no photo is given
func initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' || r == '-' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}
