package style

import (
	"testing"

	"github.com/jonathan/cv-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		css     string
		docx    string
		wantErr bool
	}{
		{input: "#2563EB", css: "#2563eb", docx: "2563EB"},
		{input: "ff0000", css: "#ff0000", docx: "FF0000"},
		{input: "#abc", css: "#aabbcc", docx: "AABBCC"},
		{input: "", css: "inherit", docx: "auto"},
		{input: "red", wantErr: true},
		{input: "#12345", wantErr: true},
		{input: "#gggggg", wantErr: true},
		{input: "#fff;}body{", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.css, c.CSS())
			assert.Equal(t, tt.docx, c.DOCX())
		})
	}
}

func TestColor_CSSAlpha(t *testing.T) {
	assert.Equal(t, "rgba(37, 99, 235, 0.50)", MustColor("#2563eb").CSSAlpha(0.5))
	assert.Equal(t, "transparent", Color{}.CSSAlpha(0.5))
}

func TestResolve_NoOverrides(t *testing.T) {
	for _, id := range types.AllTemplates() {
		t.Run(string(id), func(t *testing.T) {
			cfg, err := Resolve(id, nil)
			require.NoError(t, err)

			def, err := Defaults(id)
			require.NoError(t, err)
			assert.Equal(t, def, cfg)
			assert.False(t, cfg.Primary.IsBlank())
			assert.False(t, cfg.Accent.IsBlank())
			assert.NotEmpty(t, cfg.FontFamily)
			assert.NotEmpty(t, cfg.Layout)
		})
	}
}

func TestResolve_OverridePrecedence(t *testing.T) {
	def, err := Defaults(types.TemplateModern)
	require.NoError(t, err)

	t.Run("override wins", func(t *testing.T) {
		cfg, err := Resolve(types.TemplateModern, &types.Styling{PrimaryColor: types.Some("#ff0000")})
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", cfg.Primary.CSS())
		assert.Equal(t, def.Accent, cfg.Accent)
	})

	t.Run("unset keeps default", func(t *testing.T) {
		cfg, err := Resolve(types.TemplateModern, &types.Styling{})
		require.NoError(t, err)
		assert.Equal(t, def, cfg)
	})

	t.Run("null is a literal blank", func(t *testing.T) {
		cfg, err := Resolve(types.TemplateModern, &types.Styling{
			PrimaryColor: types.Null[string](),
			FontFamily:   types.Some(""),
		})
		require.NoError(t, err)
		assert.True(t, cfg.Primary.IsBlank())
		assert.Equal(t, "inherit", cfg.Primary.CSS())
		assert.Equal(t, "inherit", cfg.FontStack())
	})

	t.Run("all fields", func(t *testing.T) {
		cfg, err := Resolve(types.TemplateClassic, &types.Styling{
			AccentColor:    types.Some("#00ff00"),
			HighlightColor: types.Some("#0000ff"),
			FontFamily:     types.Some("'Fira Sans', sans-serif"),
			FontSize:       types.Some("12pt"),
			Spacing:        types.Some("compact"),
			Layout:         types.Some("two-column"),
			ColorScheme:    types.Some("dark"),
		})
		require.NoError(t, err)
		assert.Equal(t, "00FF00", cfg.Accent.DOCX())
		assert.Equal(t, "#0000ff", cfg.Highlight.CSS())
		assert.Equal(t, "Fira Sans", cfg.PrimaryFont())
		assert.Equal(t, 24, cfg.BodyHalfPoints())
		assert.Equal(t, 0.75, cfg.Gap())
		assert.Equal(t, "two-column", cfg.Layout)
		assert.Equal(t, "dark", cfg.ColorScheme)
	})
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		styling types.Styling
		field   string
	}{
		{"bad color", types.Styling{PrimaryColor: types.Some("blue")}, "styling.primaryColor"},
		{"css injection in font", types.Styling{FontFamily: types.Some("Arial; } body { display:none")}, "styling.fontFamily"},
		{"bad font size", types.Styling{FontSize: types.Some("huge")}, "styling.fontSize"},
		{"bad spacing", types.Styling{Spacing: types.Some("airy")}, "styling.spacing"},
		{"bad layout", types.Styling{Layout: types.Some("<script>")}, "styling.layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(types.TemplateModern, &tt.styling)
			var vErr *types.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestResolve_UnknownTemplate(t *testing.T) {
	_, err := Resolve("brutalist", nil)
	var unknown *types.UnknownTemplateError
	assert.ErrorAs(t, err, &unknown)
}

func TestConfig_BodyHalfPoints(t *testing.T) {
	assert.Equal(t, 21, Config{TemplateID: types.TemplateModern, FontSize: "10.5pt"}.BodyHalfPoints())
	assert.Equal(t, 24, Config{TemplateID: types.TemplateModern, FontSize: "16px"}.BodyHalfPoints())
	assert.Equal(t, 22, Config{TemplateID: types.TemplateClassic, FontSize: "1.2em"}.BodyHalfPoints(), "relative sizes fall back")
	assert.Equal(t, 22, Config{TemplateID: types.TemplateClassic}.BodyHalfPoints())
	assert.Equal(t, 42, Config{TemplateID: types.TemplateModern}.ScaledHalfPoints(2))
}

func TestConfig_Gap(t *testing.T) {
	assert.Equal(t, "1.35rem", Config{Spacing: SpacingRelaxed}.CSSGap(1))
	assert.Equal(t, 150, Config{Spacing: SpacingCompact}.Twips(200))
	assert.Equal(t, 200, Config{}.Twips(200))
}
