package feedfetch

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// StripHTML reduces an HTML feed summary to plain text: script and style
// blocks dropped, remaining tags removed, entities unescaped, whitespace
// collapsed to single spaces.
func StripHTML(input string) string {
	text := scriptBlockRe.ReplaceAllString(input, " ")
	text = styleBlockRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
