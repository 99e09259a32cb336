package sanitize

import (
	"regexp"
	"strings"
)

// Mask tokens. Tokens are inert: once emitted they contain no digits,
// no "@" and no URL scheme, so later patterns (and the gate) can never
// re-flag their contents.
const (
	TokenEmail    = "[EMAIL]"
	TokenPhone    = "[PHONE]"
	TokenRedacted = "[REDACTED]"
	TokenID       = "[ID]"
	TokenNum      = "[NUM]"
	TokenLink     = "[LINK]"
	TokenName     = "[NAME]"
)

// --- normal level -----------------------------------------------------
//
// Pattern order is precedence: the more specific shapes (email,
// personnummer, phones) run before the generic long-digit catch-all so
// they claim their spans first.

var maskEmailRe = regexp.MustCompile(`(?i)\b[\w.-]+@[\w.-]+\.\w+\b`)

// Swedish personnummer, 4-digit-year prefix: YYYYMMDD-XXXX, YYYYMMDD XXXX
// or the unseparated 12-digit form.
var maskPersonnummerRe = regexp.MustCompile(`\b(19|20)\d{6}[- ]\d{4}\b|\b(19|20)\d{10}\b`)

// Swedish phone shapes, most specific first. The bare "-NNNN" tail shape
// catches the last group of a number whose head was consumed by an
// earlier pattern.
var maskPhoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\+46\s*\d{1,2}[- ]?\d{2,3}[- ]?\d{2,3}[- ]?\d{2,4}`),
	regexp.MustCompile(`\b0\d{1,2}[- ]\d{2,3}[- ]?\d{2,3}[- ]?\d{2,4}\b`),
	regexp.MustCompile(`\b07\d[- ]\d{2,3}[- ]?\d{2,3}[- ]?\d{2,4}\b`),
	regexp.MustCompile(`-\d{4}\b`),
	regexp.MustCompile(`\b\d{2,3}[- ]\d{2,3}[- ]\d{2,4}\b`),
}

var maskLongDigitRunRe = regexp.MustCompile(`\b\d{11,}\b`)

// --- strict level additions -------------------------------------------

var maskIDLabelRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Dok\.Id\s+\d+`),
	regexp.MustCompile(`(?i)ID:\s*\d+`),
	regexp.MustCompile(`(?i)Id:\s*\d+`),
	regexp.MustCompile(`(?i)\bID\s+\d+`),
}

// Digit clusters split by spaces/hyphens ("24 698", "322-9448").
// RE2 has no lookahead, so the date and token exclusions run in the
// replacement callback instead.
var maskDigitClusterRe = regexp.MustCompile(`\b\d{1,4}(?:[- ]\d{1,4}){1,4}\b`)

// A cluster starting with a YYYY-MM-DD shape is a date, not an identifier.
var dateShapedClusterRe = regexp.MustCompile(`^(19|20)\d{2}[- ]\d{2}[- ]\d{2}`)

var maskStandaloneDigitsRe = regexp.MustCompile(`\b\d{5,}\b`)

// --- paranoid level ---------------------------------------------------

var maskURLRe = regexp.MustCompile(`(?i)https?://\S+`)

var maskDigitRe = regexp.MustCompile(`\d`)

// Role labels whose trailing line text is a name. The canonical label is
// preserved, the rest of the line becomes [NAME].
var nameLabels = []string{"Sökande", "Motpart", "Ombud", "RÄTTEN", "Rådmannen"}

var nameLabelRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(nameLabels))
	for i, label := range nameLabels {
		res[i] = regexp.MustCompile(`(?i)^` + label + `\s+.+`)
	}
	return res
}()

// Mask replaces PII-shaped substrings in text with typed tokens at the
// given level. Pure and idempotent per level; undefined levels fail with
// ErrInvalidLevel rather than defaulting.
func Mask(text string, level Level) (string, error) {
	switch level {
	case LevelNormal:
		return maskNormal(text), nil
	case LevelStrict:
		return maskStrict(text), nil
	case LevelParanoid:
		return maskParanoid(text), nil
	default:
		return "", &ErrInvalidLevel{Level: level}
	}
}

func maskNormal(text string) string {
	text = maskEmailRe.ReplaceAllString(text, TokenEmail)
	text = maskPersonnummerRe.ReplaceAllString(text, TokenRedacted)
	for _, re := range maskPhoneRes {
		text = re.ReplaceAllString(text, TokenPhone)
	}
	text = maskLongDigitRunRe.ReplaceAllString(text, TokenRedacted)
	return text
}

func maskStrict(text string) string {
	text = maskNormal(text)

	for _, re := range maskIDLabelRes {
		text = re.ReplaceAllString(text, TokenID)
	}

	text = replaceOutsideTokens(text, maskDigitClusterRe, func(match string) string {
		if dateShapedClusterRe.MatchString(match) {
			return match
		}
		if countDigits(match) >= 5 {
			return TokenNum
		}
		return match
	})

	text = replaceOutsideTokens(text, maskStandaloneDigitsRe, func(match string) string {
		return TokenNum
	})

	return text
}

func maskParanoid(text string) string {
	// Links first, so URL and address text with digits is not degraded
	// to digit tokens.
	text = maskEmailRe.ReplaceAllString(text, TokenLink)
	text = maskURLRe.ReplaceAllString(text, TokenLink)

	// Every individual digit becomes its own token: "123" -> [NUM][NUM][NUM].
	text = maskDigitRe.ReplaceAllString(text, TokenNum)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for j, re := range nameLabelRes {
			if re.MatchString(line) {
				lines[i] = nameLabels[j] + " " + TokenName
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// replaceOutsideTokens applies repl to every match of re that is not the
// bracketed interior of an already-emitted token. Matches are resolved
// left to right; replaced spans are never re-scanned.
func replaceOutsideTokens(text string, re *regexp.Regexp, repl func(match string) string) string {
	spans := re.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		match := text[start:end]
		if start > 0 && end < len(text) && text[start-1] == '[' && text[end] == ']' {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(repl(match))
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
