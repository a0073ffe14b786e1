package feedback

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripAll = bluemonday.StrictPolicy()
	octets   = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
)

// SanitizeTextField reduces untrusted input to a single line of plain text:
// invalid UTF-8 yields "", markup and percent-encoded octets are stripped,
// control characters dropped, and whitespace runs collapsed and trimmed.
// Character references are kept as literal text, never decoded into markup.
func SanitizeTextField(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	s = stripTags(s)
	s = octets.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// stripTags removes markup while leaving the remaining text byte for byte.
// Ampersands are escaped first so the parser cannot decode references.
func stripTags(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	escaped := strings.ReplaceAll(s, "&", "&amp;")
	return html.UnescapeString(stripAll.Sanitize(escaped))
}
