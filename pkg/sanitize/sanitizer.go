// Package sanitize implements the progressive PII redaction pipeline:
// a deterministic masking engine with three escalating levels, an
// independent gate that decides whether masked output is safe to persist,
// and the orchestrator that escalates until the gate passes. All
// operations are pure, synchronous computations over in-memory text;
// patterns compile once at process start and are shared read-only.
//
// This is proof-of-concept-grade redaction: it removes PII-shaped
// substrings, it does not guarantee removal of all real-world PII.
package sanitize

import (
	"errors"
	"fmt"
)

// ErrParanoidGateViolation signals that paranoid masking still failed the
// gate. Paranoid masking is constructed to leave no digit-shaped or
// email/URL-shaped residue, so this is an internal-consistency bug in
// pattern coverage, never a user-facing condition. Callers must abort the
// whole ingestion (fail-closed) and surface a generic internal error.
var ErrParanoidGateViolation = errors.New("paranoid-masked text failed the pii gate")

// Restrictions records what downstream processing the sanitized text is
// cleared for. Paranoid output is never cleared: paranoid is only reached
// when lighter levels visibly failed, so the full scope of the source
// text's PII is unknown.
type Restrictions struct {
	AIAllowed     bool `json:"ai_allowed"`
	ExportAllowed bool `json:"export_allowed"`
}

// Result is computed once per ingested text blob and persisted verbatim;
// it is never recomputed except by an explicit re-ingestion.
type Result struct {
	MaskedText     string
	LevelUsed      Level
	ReasonsByLevel map[Level][]ReasonCode
	Restrictions   Restrictions
}

// Sanitize drives the escalation loop over already-normalized text:
// mask at normal and gate-check; on failure escalate to strict, then
// paranoid. Reasons from each failed level are recorded under that level.
// ReasonsByLevel is nil when the first attempted level succeeds outright.
func Sanitize(text string) (Result, error) {
	return SanitizeFrom(text, LevelNormal)
}

// SanitizeFrom runs the same escalation loop but starts at min, for
// projects whose ingestion policy demands a stricter floor. Levels below
// min are never attempted or recorded.
func SanitizeFrom(text string, min Level) (Result, error) {
	if !min.Valid() {
		return Result{}, &ErrInvalidLevel{Level: min}
	}
	return run(text, min, Mask, Check)
}

func run(
	text string,
	min Level,
	maskFn func(string, Level) (string, error),
	checkFn func(string) Verdict,
) (Result, error) {
	var reasonsByLevel map[Level][]ReasonCode

	for _, level := range levelOrder {
		if !level.AtLeast(min) {
			continue
		}

		masked, err := maskFn(text, level)
		if err != nil {
			return Result{}, err
		}

		verdict := checkFn(masked)
		if verdict.IsSafe {
			return Result{
				MaskedText:     masked,
				LevelUsed:      level,
				ReasonsByLevel: reasonsByLevel,
				Restrictions: Restrictions{
					AIAllowed:     level != LevelParanoid,
					ExportAllowed: level != LevelParanoid,
				},
			}, nil
		}

		if level == LevelParanoid {
			// Reason codes are generic categories and safe to surface.
			return Result{}, fmt.Errorf("%w: %v", ErrParanoidGateViolation, verdict.Reasons)
		}

		if reasonsByLevel == nil {
			reasonsByLevel = make(map[Level][]ReasonCode, 2)
		}
		reasonsByLevel[level] = verdict.Reasons
	}

	// Unreachable: levelOrder ends at paranoid.
	return Result{}, ErrParanoidGateViolation
}
