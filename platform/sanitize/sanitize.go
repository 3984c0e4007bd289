// Package sanitize cleans free text coming from forms and webhooks before it
// is stored. It contains no business logic.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// Text removes markup and collapses runs of whitespace. Tags are stripped a
// second time after entity decoding so "&lt;b&gt;" cannot survive as "<b>".
func Text(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = entityReplacer.Replace(out)
	out = tagPattern.ReplaceAllString(out, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(out, " "))
}

// Multiline is Text for notes: markup goes, line breaks stay.
func Multiline(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = entityReplacer.Replace(out)
	out = tagPattern.ReplaceAllString(out, "")

	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespacePattern.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
