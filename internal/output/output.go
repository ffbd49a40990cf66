// Package output encodes rendered artifacts as base64 data URIs, the only
// delivery form the generator produces.
package output

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/cv-generator/internal/types"
)

// MIME types per output format
const (
	MIMEHTML = "text/html"
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrMalformedDataURI is returned by DecodeDataURI for anything that is not
// a base64 data URI.
var ErrMalformedDataURI = errors.New("malformed data URI")

// MIMEType returns the MIME type for a format
func MIMEType(f types.Format) (string, error) {
	switch f {
	case types.FormatHTML:
		return MIMEHTML, nil
	case types.FormatPDF:
		return MIMEPDF, nil
	case types.FormatDOCX:
		return MIMEDOCX, nil
	}
	return "", &types.UnknownFormatError{ID: string(f)}
}

// Extension returns the file extension for a format, without the dot
func Extension(f types.Format) string {
	return string(f)
}

// EncodeDataURI returns data:<mime>;base64,<payload>
func EncodeDataURI(mime string, payload []byte) string {
	var b strings.Builder
	b.Grow(len(mime) + base64.StdEncoding.EncodedLen(len(payload)) + 13)
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(payload))
	return b.String()
}

// Encode picks the MIME type for f and encodes the payload
func Encode(f types.Format, payload []byte) (string, error) {
	mime, err := MIMEType(f)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(mime, payload), nil
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return "", nil, ErrMalformedDataURI
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	return mime, payload, nil
}
