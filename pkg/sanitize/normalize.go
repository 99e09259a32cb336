package sanitize

import (
	"regexp"
	"strings"
)

var blankLineRunRe = regexp.MustCompile(`\n{3,}`)

// Normalize canonicalizes raw extracted text before masking: all line
// endings become "\n", trailing whitespace is stripped per line, runs of
// 3+ newlines collapse to 2 and the whole text is trimmed.
// Pure, total and idempotent.
//
// Per-line stripping runs before blank-line collapsing so that lines
// holding only spaces count as blank; collapsing first would leave runs
// that a second pass shortens, breaking idempotence.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\v\f")
	}
	text = strings.Join(lines, "\n")

	text = blankLineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
