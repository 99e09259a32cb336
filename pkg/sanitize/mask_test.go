package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask_InvalidLevel(t *testing.T) {
	_, err := Mask("text", Level("aggressive"))
	require.Error(t, err)

	var invalid *ErrInvalidLevel
	assert.ErrorAs(t, err, &invalid)
}

func TestMask_Normal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "mobile number with spaced groups",
			input:  "Kontakta 070-123 45 67 för mer info.",
			expect: "Kontakta [PHONE] för mer info.",
		},
		{
			name:   "international prefix",
			input:  "Nås på +46 70 123 45 67 dagtid.",
			expect: "Nås på [PHONE] dagtid.",
		},
		{
			name:   "personnummer with separator",
			input:  "Personnummer: 19800101-1234",
			expect: "Personnummer: [REDACTED]",
		},
		{
			name:   "personnummer twelve digits",
			input:  "pnr 198001011234 enligt registret",
			expect: "pnr [REDACTED] enligt registret",
		},
		{
			name:   "email with trailing period",
			input:  "Mejla anna.andersson@tidning.se.",
			expect: "Mejla [EMAIL].",
		},
		{
			name:   "long digit run",
			input:  "kort 1234567890123 spärrat",
			expect: "kort [REDACTED] spärrat",
		},
		{
			name:   "short reference untouched",
			input:  "Ref 24 698",
			expect: "Ref 24 698",
		},
		{
			name:   "iso date untouched",
			input:  "Mötet hålls 2025-11-20 i sal B.",
			expect: "Mötet hålls 2025-11-20 i sal B.",
		},
		{
			name:   "empty input",
			input:  "",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mask(tt.input, LevelNormal)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestMask_Strict(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "spaced digit cluster",
			input:  "Ref 24 698",
			expect: "Ref [NUM]",
		},
		{
			name:   "document id label",
			input:  "Dok.Id 123456",
			expect: "[ID]",
		},
		{
			name:   "id colon label",
			input:  "ID: 9988 i akten",
			expect: "[ID] i akten",
		},
		{
			name:   "standalone ten digit run",
			input:  "Ärende 5551234567",
			expect: "Ärende [NUM]",
		},
		{
			name:   "iso date survives strict",
			input:  "Förhandling 2025-11-20 kl 09",
			expect: "Förhandling 2025-11-20 kl 09",
		},
		{
			name:   "short cluster below threshold untouched",
			input:  "sal 3-14",
			expect: "sal 3-14",
		},
		{
			name:   "normal rules still apply",
			input:  "Ring 070-123 45 67, mejla a@b.se",
			expect: "Ring [PHONE], mejla [EMAIL]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mask(tt.input, LevelStrict)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestMask_Paranoid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "party label swallows rest of line",
			input:  "Sökande Anna Andersson, född 19800101",
			expect: "Sökande [NAME]",
		},
		{
			name:   "counterparty label",
			input:  "Motpart Bolaget AB",
			expect: "Motpart [NAME]",
		},
		{
			name:   "labels per line",
			input:  "Sökande Anna Andersson\nOmbud Advokat Berg\nÖvrig text",
			expect: "Sökande [NAME]\nOmbud [NAME]\nÖvrig text",
		},
		{
			name:   "every digit tokenized",
			input:  "kl 14",
			expect: "kl [NUM][NUM]",
		},
		{
			name:   "email becomes link",
			input:  "Mejla anna@tidning.se",
			expect: "Mejla [LINK]",
		},
		{
			name:   "url with digits becomes one link",
			input:  "Se https://example.com/artikel?id=123",
			expect: "Se [LINK]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mask(tt.input, LevelParanoid)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

var maskSamples = []string{
	"Kontakta 070-123 45 67 för mer info.",
	"Personnummer: 19800101-1234",
	"Mejla anna.andersson@tidning.se, ring +46 70 123 45 67.",
	"Dok.Id 123456\nSökande Anna Andersson\nRef 24 698",
	"Ärende 5551234567 rör kort 1234567890123.",
	"Se https://example.com/artikel?id=123 senast 2025-11-20.",
	"Ingen känslig information alls.",
	"",
}

func TestMask_IdempotentPerLevel(t *testing.T) {
	for _, level := range []Level{LevelNormal, LevelStrict, LevelParanoid} {
		for _, sample := range maskSamples {
			once, err := Mask(sample, level)
			require.NoError(t, err)
			twice, err := Mask(once, level)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "level %s must be idempotent for %q", level, sample)
		}
	}
}

func TestMask_MonotonicCoverage(t *testing.T) {
	// Each level removes at least as many digits as the one below it, and
	// paranoid leaves none at all.
	for _, sample := range maskSamples {
		normal, err := Mask(sample, LevelNormal)
		require.NoError(t, err)
		strict, err := Mask(sample, LevelStrict)
		require.NoError(t, err)
		paranoid, err := Mask(sample, LevelParanoid)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, countDigits(normal), countDigits(strict), "sample %q", sample)
		assert.Zero(t, countDigits(paranoid), "sample %q", sample)
	}
}

func TestMask_ParanoidLeavesNoResidue(t *testing.T) {
	for _, sample := range maskSamples {
		got, err := Mask(sample, LevelParanoid)
		require.NoError(t, err)

		assert.Zero(t, countDigits(got), "digits in %q", got)
		assert.NotContains(t, got, "@")
		assert.NotContains(t, strings.ToLower(got), "http://")
		assert.NotContains(t, strings.ToLower(got), "https://")
	}
}

func TestMask_TokensAreInert(t *testing.T) {
	// Output of a lighter level passed through a stricter one must not
	// have its tokens rewritten or split.
	input := "Ring 070-123 45 67, pnr 19800101-1234, mejla a@b.se"

	normal, err := Mask(input, LevelNormal)
	require.NoError(t, err)
	strict, err := Mask(normal, LevelStrict)
	require.NoError(t, err)

	assert.Contains(t, strict, "[PHONE]")
	assert.Contains(t, strict, "[REDACTED]")
	assert.Contains(t, strict, "[EMAIL]")
}
