package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/cv-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	entries, err := files.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		t.Run(e.Name(), func(t *testing.T) {
			_, err := load(e.Name())
			assert.NoError(t, err)
		})
	}
}

func TestValidateRequest_Sample(t *testing.T) {
	req := types.Request{CompleteCVData: *types.SampleCV(), Template: "modern", Format: "pdf"}
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NoError(t, ValidateRequest(payload))
}

func TestValidateRequest_Minimal(t *testing.T) {
	assert.NoError(t, ValidateRequest([]byte(`{"personalInfo":{"name":"Jane","title":"UX"}}`)))
}

func TestValidateRequest_NullStylingValues(t *testing.T) {
	payload := `{"personalInfo":{"name":"Jane","title":"UX"},"styling":{"primaryColor":null,"fontSize":"11pt"}}`
	assert.NoError(t, ValidateRequest([]byte(payload)))
}

func TestValidateRequest_Failures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"missing personalInfo", `{"template":"modern"}`, "(root)"},
		{"missing title", `{"personalInfo":{"name":"Jane"}}`, "personalInfo"},
		{"name wrong type", `{"personalInfo":{"name":42,"title":"UX"}}`, "personalInfo.name"},
		{"employment not an array", `{"personalInfo":{"name":"J","title":"T"},"employment":{}}`, "employment"},
		{"styling value wrong type", `{"personalInfo":{"name":"J","title":"T"},"styling":{"primaryColor":7}}`, "styling.primaryColor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest([]byte(tt.payload))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Errors)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateRequest_MalformedSkillsPassThrough(t *testing.T) {
	// Skill shape errors are reported by the decoder with section context
	payload := `{"personalInfo":{"name":"J","title":"T"},"competencies":[{"category":"X","skills":[42]}]}`
	assert.NoError(t, ValidateRequest([]byte(payload)))
}

func TestValidateRequest_InvalidJSON(t *testing.T) {
	err := ValidateRequest([]byte(`{"personalInfo":`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors[0].Message, "invalid JSON")
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	err := ValidateBytes("missing.schema.json", []byte(`{}`))
	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "missing.schema.json", lerr.Path)
}
