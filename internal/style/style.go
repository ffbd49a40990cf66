package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/cv-generator/internal/types"
)

// Spacing presets accepted in overrides
const (
	SpacingCompact = "compact"
	SpacingNormal  = "normal"
	SpacingRelaxed = "relaxed"
)

// Config is the effective style of one render call. It is built by Resolve
// and discarded when the call returns.
type Config struct {
	TemplateID  types.TemplateID
	Primary     Color
	Accent      Color
	Highlight   Color
	FontFamily  string
	FontSize    string
	Spacing     string
	Layout      string
	ColorScheme string
}

var (
	fontFamilyPattern = regexp.MustCompile(`^[A-Za-z0-9 ,'"\-]+$`)
	fontSizePattern   = regexp.MustCompile(`^(\d+(?:\.\d+)?)(pt|px|em|rem)$`)
	tokenPattern      = regexp.MustCompile(`^[a-z0-9\-]+$`)
)

// defaults holds exactly one row per template. Rows are copied on read.
var defaults = map[types.TemplateID]Config{
	types.TemplateModern: {
		TemplateID:  types.TemplateModern,
		Primary:     MustColor("#2563eb"),
		Accent:      MustColor("#1e40af"),
		Highlight:   MustColor("#dbeafe"),
		FontFamily:  "Inter, 'Segoe UI', Arial, sans-serif",
		FontSize:    "10.5pt",
		Spacing:     SpacingNormal,
		Layout:      "sidebar-left",
		ColorScheme: "light",
	},
	types.TemplateClassic: {
		TemplateID:  types.TemplateClassic,
		Primary:     MustColor("#1f2937"),
		Accent:      MustColor("#6b7280"),
		Highlight:   MustColor("#f3f4f6"),
		FontFamily:  "Georgia, 'Times New Roman', serif",
		FontSize:    "11pt",
		Spacing:     SpacingNormal,
		Layout:      "single-column",
		ColorScheme: "light",
	},
	types.TemplateCreative: {
		TemplateID:  types.TemplateCreative,
		Primary:     MustColor("#7c3aed"),
		Accent:      MustColor("#ec4899"),
		Highlight:   MustColor("#fde68a"),
		FontFamily:  "Poppins, 'Helvetica Neue', Arial, sans-serif",
		FontSize:    "10.5pt",
		Spacing:     SpacingNormal,
		Layout:      "asymmetric",
		ColorScheme: "vibrant",
	},
	types.TemplateFrankDigital: {
		TemplateID:  types.TemplateFrankDigital,
		Primary:     MustColor("#ff6b35"),
		Accent:      MustColor("#1a1a2e"),
		Highlight:   MustColor("#ffe8dd"),
		FontFamily:  "Montserrat, Arial, sans-serif",
		FontSize:    "10.5pt",
		Spacing:     SpacingNormal,
		Layout:      "full",
		ColorScheme: "brand",
	},
}

// Defaults returns the default style row for a template
func Defaults(id types.TemplateID) (Config, error) {
	cfg, ok := defaults[id]
	if !ok {
		return Config{}, &types.UnknownTemplateError{ID: string(id)}
	}
	return cfg, nil
}

// Resolve overlays the set members of overrides on the template defaults.
// Members that were never sent keep the default; members sent as null or
// empty string become blank. Malformed values yield a ValidationError.
func Resolve(id types.TemplateID, overrides *types.Styling) (Config, error) {
	cfg, err := Defaults(id)
	if err != nil {
		return Config{}, err
	}
	if overrides == nil {
		return cfg, nil
	}

	if err := overlayColor(&cfg.Primary, overrides.PrimaryColor, "primaryColor"); err != nil {
		return Config{}, err
	}
	if err := overlayColor(&cfg.Accent, overrides.AccentColor, "accentColor"); err != nil {
		return Config{}, err
	}
	if err := overlayColor(&cfg.Highlight, overrides.HighlightColor, "highlightColor"); err != nil {
		return Config{}, err
	}
	if err := overlayString(&cfg.FontFamily, overrides.FontFamily, "fontFamily", fontFamilyPattern.MatchString); err != nil {
		return Config{}, err
	}
	if err := overlayString(&cfg.FontSize, overrides.FontSize, "fontSize", fontSizePattern.MatchString); err != nil {
		return Config{}, err
	}
	if err := overlayString(&cfg.Spacing, overrides.Spacing, "spacing", validSpacing); err != nil {
		return Config{}, err
	}
	if err := overlayString(&cfg.Layout, overrides.Layout, "layout", tokenPattern.MatchString); err != nil {
		return Config{}, err
	}
	if err := overlayString(&cfg.ColorScheme, overrides.ColorScheme, "colorScheme", tokenPattern.MatchString); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayColor(dst *Color, o types.Optional[string], field string) error {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return &types.ValidationError{Field: "styling." + field, Message: err.Error()}
	}
	*dst = c
	return nil
}

func overlayString(dst *string, o types.Optional[string], field string, valid func(string) bool) error {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v != "" && !valid(v) {
		return &types.ValidationError{Field: "styling." + field, Message: fmt.Sprintf("invalid value %q", v)}
	}
	*dst = v
	return nil
}

func validSpacing(s string) bool {
	switch s {
	case SpacingCompact, SpacingNormal, SpacingRelaxed:
		return true
	}
	return false
}

// FontStack returns the CSS font-family value
func (c Config) FontStack() string {
	if c.FontFamily == "" {
		return "inherit"
	}
	return c.FontFamily
}

// CSSFontSize returns the CSS font-size value
func (c Config) CSSFontSize() string {
	if c.FontSize == "" {
		return "inherit"
	}
	return c.FontSize
}

// PrimaryFont returns the first family of the font stack without quotes,
// as DOCX run fonts name a single face.
func (c Config) PrimaryFont() string {
	first, _, _ := strings.Cut(c.FontFamily, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// BodyHalfPoints returns the body font size in DOCX half-points. Blank or
// relative sizes fall back to the template default.
func (c Config) BodyHalfPoints() int {
	if hp, ok := halfPoints(c.FontSize); ok {
		return hp
	}
	if d, ok := defaults[c.TemplateID]; ok {
		if hp, ok := halfPoints(d.FontSize); ok {
			return hp
		}
	}
	return 21
}

// ScaledHalfPoints returns the body size scaled by factor, for headings
func (c Config) ScaledHalfPoints(factor float64) int {
	return int(math.Round(float64(c.BodyHalfPoints()) * factor))
}

func halfPoints(size string) (int, bool) {
	m := fontSizePattern.FindStringSubmatch(size)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	switch m[2] {
	case "pt":
		return int(math.Round(v * 2)), true
	case "px":
		return int(math.Round(v * 0.75 * 2)), true
	}
	return 0, false
}

// Gap returns the spacing multiplier applied to vertical rhythm
func (c Config) Gap() float64 {
	switch c.Spacing {
	case SpacingCompact:
		return 0.75
	case SpacingRelaxed:
		return 1.35
	}
	return 1
}

// CSSGap returns base scaled by Gap as a CSS length in rem
func (c Config) CSSGap(base float64) string {
	return strconv.FormatFloat(base*c.Gap(), 'f', 2, 64) + "rem"
}

// Twips returns base twips scaled by Gap, for DOCX paragraph spacing
func (c Config) Twips(base int) int {
	return int(math.Round(float64(base) * c.Gap()))
}
