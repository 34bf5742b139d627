package util

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeText decodes b as UTF-8, replacing invalid byte sequences with
// U+FFFD. It never fails.
func DecodeText(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
