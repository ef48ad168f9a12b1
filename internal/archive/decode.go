package archive

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// DecodeText turns raw file bytes into text. Bytes that parse as a PDF go
// through plain-text extraction; anything else falls back to the decode
// ladder: UTF-8, then Latin-1, then empty. A file that survives neither
// decoding becomes empty text rather than an error, so one bad file never
// aborts the batch.
func DecodeText(data []byte) string {
	if text, ok := extractPDFText(data); ok {
		return text
	}
	return decodeRaw(data)
}

// extractPDFText extracts the concatenated plain text of every PDF page.
func extractPDFText(data []byte) (string, bool) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", false
	}
	text, err := io.ReadAll(textReader)
	if err != nil {
		return "", false
	}
	return string(text), true
}

// decodeRaw decodes bytes as UTF-8 when valid, otherwise as Latin-1.
// Latin-1 maps every byte to a rune, so the empty-text case only occurs for
// empty input; the ladder still guards against a decoder error.
func decodeRaw(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	return string(decoded)
}
