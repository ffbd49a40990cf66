package rendering

import (
	"html/template"
	"net/url"
	"regexp"
	"strings"
)

// NormalizeText prepares user text for both backends: CRLF and CR become LF,
// tabs become spaces, other control characters are dropped and surrounding
// whitespace is trimmed. HTML escaping is left to html/template.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	prevCR := false
	for _, r := range text {
		switch {
		case r == '\r':
			result.WriteRune('\n')
			prevCR = true
			continue
		case r == '\n':
			if !prevCR {
				result.WriteRune('\n')
			}
		case r == '\t':
			result.WriteRune(' ')
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
			// drop
		case r == '\u2028', r == '\u2029':
			result.WriteRune('\n')
		default:
			result.WriteRune(r)
		}
		prevCR = false
	}

	return strings.TrimSpace(result.String())
}

// NormalizeAll applies NormalizeText to each element and drops blanks
func NormalizeAll(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := NormalizeText(it); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var imageDataURIPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp|svg\+xml);base64,[A-Za-z0-9+/=\s]+$`)

// SafeImageURL returns the profile image source as a trusted template.URL
// when it is an http(s) URL or a base64 image data URI. Anything else is
// rejected and the image is omitted.
func SafeImageURL(raw string) (template.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if strings.HasPrefix(raw, "data:") {
		if imageDataURIPattern.MatchString(raw) {
			return template.URL(raw), true
		}
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return template.URL(u.String()), true
}

// SafeLink returns an http(s) or mailto link, or false when the value
// cannot be used as an href. Bare hosts such as github.com/jane gain https.
func SafeLink(raw string) (template.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") && !strings.HasPrefix(raw, "mailto:") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return "", false
		}
	case "mailto":
		if u.Opaque == "" {
			return "", false
		}
	default:
		return "", false
	}
	return template.URL(u.String()), true
}

// DisplayLink strips the scheme and trailing slash for printing a link
func DisplayLink(raw string) string {
	s := strings.TrimSpace(raw)
	for _, p := range []string{"https://", "http://", "mailto:"} {
		s = strings.TrimPrefix(s, p)
	}
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}
