package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText_EmptyString(t *testing.T) {
	assert.Equal(t, "", NormalizeText(""))
}

func TestNormalizeText_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	assert.Equal(t, text, NormalizeText(text))
}

func TestNormalizeText_LineEndings(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeText("a\r\nb\rc"))
}

func TestNormalizeText_ControlCharacters(t *testing.T) {
	assert.Equal(t, "ab c", NormalizeText("a\x00b\x07\tc"))
}

func TestNormalizeText_LineSeparator(t *testing.T) {
	assert.Equal(t, "a\nb", NormalizeText("a\u2028b"))
}

func TestNormalizeText_KeepsMarkupForTemplateEscaping(t *testing.T) {
	assert.Equal(t, "<b>Jane</b> & co", NormalizeText("  <b>Jane</b> & co  "))
}

func TestNormalizeText_Unicode(t *testing.T) {
	assert.Equal(t, "Hélène Müller 日本", NormalizeText("Hélène Müller 日本"))
}

func TestNormalizeAll_DropsBlanks(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeAll([]string{" a ", "", "\t", "b"}))
	assert.Nil(t, NormalizeAll([]string{" "}))
	assert.Nil(t, NormalizeAll(nil))
}

func TestSafeImageURL(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
	}{
		{"https://example.com/me.png", true},
		{"http://example.com/me.png", true},
		{"data:image/png;base64,iVBORw0KGgo=", true},
		{"data:image/svg+xml;base64,PHN2Zz4=", true},
		{"javascript:alert(1)", false},
		{"data:text/html;base64,PHNjcmlwdD4=", false},
		{"/relative/path.png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			u, ok := SafeImageURL(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Empty(t, u)
			}
		})
	}
}

func TestSafeLink(t *testing.T) {
	u, ok := SafeLink("github.com/jane")
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/jane", string(u))

	u, ok = SafeLink("mailto:jane@example.com")
	assert.True(t, ok)
	assert.Equal(t, "mailto:jane@example.com", string(u))

	_, ok = SafeLink("javascript://alert(1)")
	assert.False(t, ok)
}

func TestDisplayLink(t *testing.T) {
	assert.Equal(t, "linkedin.com/in/jane", DisplayLink("https://www.linkedin.com/in/jane/"))
	assert.Equal(t, "jane.dev", DisplayLink("jane.dev"))
}
