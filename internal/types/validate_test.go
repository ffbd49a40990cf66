package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteCVData_Validate(t *testing.T) {
	tests := []struct {
		name      string
		info      PersonalInfo
		wantField string
	}{
		{name: "valid", info: PersonalInfo{Name: "Jane", Title: "Designer"}},
		{name: "missing name", info: PersonalInfo{Title: "Designer"}, wantField: "personalInfo.name"},
		{name: "missing title", info: PersonalInfo{Name: "Jane"}, wantField: "personalInfo.title"},
		{name: "blank name", info: PersonalInfo{Name: "   ", Title: "Designer"}, wantField: "personalInfo.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &CompleteCVData{PersonalInfo: tt.info}
			err := data.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, "is required", vErr.Message)
		})
	}
}

func TestCompleteCVData_Validate_Nil(t *testing.T) {
	var data *CompleteCVData
	var vErr *ValidationError
	assert.ErrorAs(t, data.Validate(), &vErr)
}

func TestCheckRatedSkill(t *testing.T) {
	neg := -1

	assert.NoError(t, CheckRatedSkill("competencyCategories", 0, RatedSkill{Name: "Go", Level: LevelExpert}, true))
	assert.NoError(t, CheckRatedSkill("competencies", 0, RatedSkill{Name: "Go"}, false))

	var shapeErr *DataShapeError
	err := CheckRatedSkill("competencyCategories", 2, RatedSkill{Name: "Go"}, true)
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Index)
	assert.Contains(t, err.Error(), "has no level")

	err = CheckRatedSkill("competencies", 1, RatedSkill{Name: "Go", Level: "guru"}, false)
	require.ErrorAs(t, err, &shapeErr)
	assert.Contains(t, err.Error(), "level")

	err = CheckRatedSkill("competencies", 1, RatedSkill{Name: "Go", YearsOfExperience: &neg}, false)
	assert.ErrorAs(t, err, &shapeErr)

	err = CheckRatedSkill("competencies", 0, RatedSkill{}, false)
	assert.ErrorAs(t, err, &shapeErr)
}

func TestParseTemplateID(t *testing.T) {
	tests := []struct {
		input string
		want  TemplateID
	}{
		{"modern", TemplateModern},
		{"Classic", TemplateClassic},
		{" creative ", TemplateCreative},
		{"frank-digital", TemplateFrankDigital},
		{"default", TemplateFrankDigital},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTemplateID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTemplateID("brutalist")
	var unknown *UnknownTemplateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "brutalist", unknown.ID)
}

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, got)

	_, err = ParseFormat("odt")
	var unknown *UnknownFormatError
	assert.ErrorAs(t, err, &unknown)
}

func TestSkillLevel(t *testing.T) {
	assert.True(t, LevelAdvanced.Valid())
	assert.False(t, SkillLevel("").Valid())
	assert.Equal(t, 4, LevelExpert.Rank())
	assert.Equal(t, 0, SkillLevel("guru").Rank())
}

func TestDataShapeError_Message(t *testing.T) {
	err := &DataShapeError{Section: "competencies", Index: 3, Message: "bad"}
	assert.Equal(t, "data shape error: competencies[3]: bad", err.Error())

	err = &DataShapeError{Section: "competencies", Index: -1, Message: "bad"}
	assert.Equal(t, "data shape error: competencies: bad", err.Error())
}
