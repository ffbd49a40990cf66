package types

// SampleCV returns a fully populated CV exercising every section and both
// competency skill shapes. It backs the CLI sample command and tests.
func SampleCV() *CompleteCVData {
	years := func(n int) *int { return &n }
	return &CompleteCVData{
		PersonalInfo: PersonalInfo{
			Name:     "Jane Smith",
			Title:    "Senior UX Designer",
			Email:    "jane.smith@example.com",
			Phone:    "+1 555 0100",
			Location: "Lisbon, Portugal",
			LinkedIn: "https://www.linkedin.com/in/janesmith",
			GitHub:   "https://github.com/janesmith",
			Website:  "https://janesmith.design",
		},
		Summary: &Summary{
			Introduction: "Designer with ten years of experience shipping research-driven products.",
			Highlights: []string{
				"Led the redesign of a checkout flow used by 2M monthly customers",
				"Built and mentored a team of six designers",
			},
			Specialties:     []string{"Design systems", "User research", "Accessibility"},
			CareerObjective: "Grow a product design practice at a mission-driven company.",
		},
		Roles: []Role{
			{Title: "Product Designer", Skills: []string{"Figma", "Prototyping"}},
			{Title: "Design Lead", Skills: []string{"Hiring", "Critique"}},
		},
		Projects: []Project{
			{
				Period:       "2023",
				Type:         "Open source",
				Title:        "Tokens Studio",
				Description:  "Design-token pipeline bridging Figma and CSS.",
				Technologies: []string{"TypeScript", "Style Dictionary"},
				Achievements: []string{"Adopted by 40 teams"},
			},
		},
		Employment: []Employment{
			{
				Position:     "Senior UX Designer",
				Company:      "Acme Corp",
				Period:       "2019 - Present",
				Description:  "Own the end-to-end experience of the payments product.",
				Technologies: []string{"Figma", "Maze"},
				Achievements: []string{"Raised conversion by 12%", "Shipped a WCAG 2.1 AA audit"},
			},
			{
				Position:    "UX Designer",
				Company:     "Globex",
				Period:      "2015 - 2019",
				Description: "Designed internal tools for logistics operators.",
			},
		},
		Education: []Education{
			{Degree: "MSc Human-Computer Interaction", Institution: "University of Lisbon", Period: "2013 - 2015", Specialization: "Interaction design"},
		},
		Certifications: []Certification{
			{Title: "Certified Usability Analyst", Issuer: "HFI", Year: "2018", Description: "Usability methods and metrics."},
		},
		Courses: []Course{
			{Name: "Advanced Design Systems", Provider: "Coursera", CompletionDate: "2022-06", Duration: "6 weeks", CredentialID: "ADS-1234", URL: "https://coursera.org/verify/ADS-1234"},
		},
		Competencies: []Competency{
			{Category: "Design", Skills: Skills{SkillName("Figma"), SkillName("Sketch")}},
			{Category: "Frontend", Skills: Skills{
				RatedSkill{Name: "CSS", Level: LevelExpert, YearsOfExperience: years(9)},
				RatedSkill{Name: "HTML", Level: LevelAdvanced},
			}},
		},
		CompetencyCategories: []CompetencyCategory{
			{Name: "Research", Skills: []RatedSkill{
				{Name: "Usability testing", Level: LevelExpert, YearsOfExperience: years(8)},
				{Name: "Surveys", Level: LevelIntermediate},
			}},
		},
		Languages: []Language{
			{Language: "English", Proficiency: "Native"},
			{Language: "Portuguese", Proficiency: "Professional"},
		},
		Closing: &Closing{
			Text: "Let's build something people love to use.",
			Contact: ClosingContact{
				Email:    "jane.smith@example.com",
				Phone:    "+1 555 0100",
				Location: "Lisbon, Portugal",
				Company:  "Frank Digital",
			},
		},
	}
}

// MinimalCV returns a CV carrying only the mandatory fields
func MinimalCV() *CompleteCVData {
	return &CompleteCVData{PersonalInfo: PersonalInfo{Name: "Jane Smith", Title: "UX Designer"}}
}
