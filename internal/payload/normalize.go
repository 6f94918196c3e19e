package payload

import (
	"regexp"
	"strings"
	"unicode"
)

var blankRun = regexp.MustCompile(`\n{3,}`)

// Normalize turns a raw response body into clean multi-line text: escaped
// "\n" sequences become line breaks, line endings become LF, trailing
// whitespace is dropped from every line, runs of blank lines shrink to one
// and the whole text is trimmed. Empty or whitespace-only input is returned
// as is. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	s := strings.ReplaceAll(raw, `\n`, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	s = strings.Join(lines, "\n")

	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
