// Package style resolves the effective styling of a render request by
// overlaying caller overrides on a template's default palette and typography.
package style

import (
	"fmt"
	"strings"
)

// Color is a validated RGB hex triplet. The zero Color is blank: CSS renders
// it as inherit and DOCX as auto.
type Color struct {
	hex string // lower-case rrggbb without the leading hash
}

// ParseColor accepts #rgb, #rrggbb, rgb and rrggbb. A blank string yields the
// blank Color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, nil
	}
	h := strings.ToLower(strings.TrimPrefix(s, "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("color %q is not a hex triplet", s)
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Color{}, fmt.Errorf("color %q is not a hex triplet", s)
		}
	}
	return Color{hex: h}, nil
}

// MustColor is ParseColor for compile-time constants
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsBlank reports whether the color carries no value
func (c Color) IsBlank() bool { return c.hex == "" }

// CSS returns the color as a CSS value
func (c Color) CSS() string {
	if c.hex == "" {
		return "inherit"
	}
	return "#" + c.hex
}

// DOCX returns the color in the w:color val form (RRGGBB, or auto)
func (c Color) DOCX() string {
	if c.hex == "" {
		return "auto"
	}
	return strings.ToUpper(c.hex)
}

// String returns #rrggbb, or the empty string when blank
func (c Color) String() string {
	if c.hex == "" {
		return ""
	}
	return "#" + c.hex
}

// CSSAlpha returns the color as an rgba() value with the given opacity,
// for tints. Blank colors yield transparent.
func (c Color) CSSAlpha(alpha float64) string {
	if c.hex == "" {
		return "transparent"
	}
	var r, g, b int
	_, _ = fmt.Sscanf(c.hex, "%02x%02x%02x", &r, &g, &b)
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, alpha)
}
