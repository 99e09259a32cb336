package sanitize

import "regexp"

// ReasonCode is a stable, generic detection category. Codes never carry
// matched values: they are safe to persist, log and export.
type ReasonCode string

const (
	ReasonPersonnummer  ReasonCode = "personnummer_detected"
	ReasonBirthdateLike ReasonCode = "birthdate_like_sequence_detected"
	ReasonEmail         ReasonCode = "email_detected"
	ReasonPhone         ReasonCode = "phone_detected"
	ReasonUnmaskedID    ReasonCode = "unmasked_id_detected"
	ReasonLongNumber    ReasonCode = "long_number_detected"
)

// Verdict is the gate's decision on already-masked text.
type Verdict struct {
	IsSafe  bool         `json:"is_safe"`
	Reasons []ReasonCode `json:"reasons,omitempty"`
}

// The gate deliberately does not share patterns with the masking engine:
// the masker optimizes for readability-preserving redaction, the gate for
// zero-tolerance detection, and their disagreement is what triggers
// escalation. Keep the two tables independent.

// Known mask tokens collapse to a neutral placeholder before scanning so
// they can never trigger false positives.
var gateTokenRe = regexp.MustCompile(`(?i)\[(PHONE|EMAIL|PERSONNUMMER|ID|REDACTED|NUM|LINK|NAME)\]`)

const gateNeutralToken = "[TOKEN]"

// Personnummer shapes: 4-digit and 2-digit year, separated and unseparated.
// The bare 10-digit form over-matches by design; the masker's strict level
// is the remedy, not a weaker detector.
var gatePersonnummerRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(19|20)\d{6}[- ]\d{4}\b`),
	regexp.MustCompile(`\b(19|20)\d{10}\b`),
	regexp.MustCompile(`\b\d{6}[- ]\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
}

// Compact YYYYMMDD sequences that parse as a calendar date.
var gateBirthdateRe = regexp.MustCompile(`\b(19|20)\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])\b`)

// A hyphenated YYYY-MM-DD nearby means the compact sequence is a
// human-formatted date rendering, not a birthdate leak.
var gateHyphenDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

var gateEmailRe = regexp.MustCompile(`(?i)[\w.-]+@[\w.-]+\.\w+`)

// Phone detectors require a leading 0 or +. Known gap: numbers written
// without a leading digit signal (7-digit extensions) are not detected;
// widening this is a security-posture decision, not a bug fix.
var gatePhoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\+46\s*\d{1,2}[- ]?\d{2,3}[- ]?\d{2,3}[- ]?\d{2,4}`),
	regexp.MustCompile(`\b0\d{1,2}[- ]\d{2,3}[- ]?\d{2,3}[- ]?\d{2,4}\b`),
	regexp.MustCompile(`\b07\d[- ]\d{2,3}[- ]?\d{2,3}[- ]?\d{2,4}\b`),
}

var gateFullDateRe = regexp.MustCompile(`^(19|20)\d{2}-\d{2}-\d{2}$`)

var gateIDLabelRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Dok\.Id\s+\d+`),
	regexp.MustCompile(`(?i)ID:\s*\d+`),
	regexp.MustCompile(`(?i)Id:\s*\d+`),
	regexp.MustCompile(`(?i)\bID\s+\d+`),
}

var gateLongNumberRe = regexp.MustCompile(`\b\d{9,}\b`)

// Check re-scans masked text for residual PII-shaped patterns. Detectors
// run independently and are not mutually exclusive: overlapping categories
// may all fire (an 8-digit birthdate is a subset of several personnummer
// shapes). Each reason code appears at most once, in detector order.
func Check(text string) Verdict {
	sanitized := gateTokenRe.ReplaceAllString(text, gateNeutralToken)

	var reasons []ReasonCode
	add := func(code ReasonCode) {
		for _, r := range reasons {
			if r == code {
				return
			}
		}
		reasons = append(reasons, code)
	}

	for _, re := range gatePersonnummerRes {
		if re.MatchString(sanitized) {
			add(ReasonPersonnummer)
			break
		}
	}

	for _, span := range gateBirthdateRe.FindAllStringIndex(sanitized, -1) {
		start, end := span[0], span[1]
		ctxStart := start - 20
		if ctxStart < 0 {
			ctxStart = 0
		}
		ctxEnd := end + 20
		if ctxEnd > len(sanitized) {
			ctxEnd = len(sanitized)
		}
		if !gateHyphenDateRe.MatchString(sanitized[ctxStart:ctxEnd]) {
			add(ReasonBirthdateLike)
			break
		}
	}

	if gateEmailRe.MatchString(sanitized) {
		add(ReasonEmail)
	}

phones:
	for _, re := range gatePhoneRes {
		for _, match := range re.FindAllString(sanitized, -1) {
			if gateFullDateRe.MatchString(match) {
				continue
			}
			if countDigits(match) >= 7 {
				add(ReasonPhone)
				break phones
			}
		}
	}

	for _, re := range gateIDLabelRes {
		if re.MatchString(sanitized) {
			add(ReasonUnmaskedID)
			break
		}
	}

	if gateLongNumberRe.MatchString(sanitized) {
		add(ReasonLongNumber)
	}

	return Verdict{IsSafe: len(reasons) == 0, Reasons: reasons}
}
