package output

import (
	"testing"

	"github.com/jonathan/cv-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMIMEType(t *testing.T) {
	tests := []struct {
		format types.Format
		want   string
	}{
		{types.FormatHTML, "text/html"},
		{types.FormatPDF, "application/pdf"},
		{types.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	}
	for _, tt := range tests {
		got, err := MIMEType(tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := MIMEType("odt")
	var unknown *types.UnknownFormatError
	assert.ErrorAs(t, err, &unknown)
}

func TestEncodeDataURI(t *testing.T) {
	assert.Equal(t, "data:text/html;base64,PGgxPkhpPC9oMT4=", EncodeDataURI(MIMEHTML, []byte("<h1>Hi</h1>")))
	assert.Equal(t, "data:application/pdf;base64,", EncodeDataURI(MIMEPDF, nil))
}

func TestEncode_DecodeRoundTrip(t *testing.T) {
	payload := []byte("%PDF-1.7\n\x00\xff binary")
	uri, err := Encode(types.FormatPDF, payload)
	require.NoError(t, err)

	mime, got, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, MIMEPDF, mime)
	assert.Equal(t, payload, got)
}

func TestDecodeDataURI_Malformed(t *testing.T) {
	for _, uri := range []string{
		"",
		"https://example.com/cv.pdf",
		"data:text/html,<h1>plain</h1>",
		"data:;base64,AAAA",
		"data:text/html;base64",
		"data:text/html;base64,***",
	} {
		_, _, err := DecodeDataURI(uri)
		assert.ErrorIs(t, err, ErrMalformedDataURI, uri)
	}
}
