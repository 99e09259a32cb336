package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_NormalSufficient(t *testing.T) {
	result, err := Sanitize("Kontakta 070-123 45 67 för mer info.")
	require.NoError(t, err)

	assert.Equal(t, "Kontakta [PHONE] för mer info.", result.MaskedText)
	assert.Equal(t, LevelNormal, result.LevelUsed)
	assert.Nil(t, result.ReasonsByLevel)
	assert.True(t, result.Restrictions.AIAllowed)
	assert.True(t, result.Restrictions.ExportAllowed)
}

func TestSanitize_CleanTextStaysNormal(t *testing.T) {
	result, err := Sanitize("Förhandlingen är flyttad till sal B.")
	require.NoError(t, err)

	assert.Equal(t, "Förhandlingen är flyttad till sal B.", result.MaskedText)
	assert.Equal(t, LevelNormal, result.LevelUsed)
	assert.Nil(t, result.ReasonsByLevel)
}

func TestSanitize_EscalatesToStrict(t *testing.T) {
	// A bare ten digit run passes the normal masker untouched but trips
	// the gate, forcing one escalation.
	result, err := Sanitize("Ärende 5551234567")
	require.NoError(t, err)

	assert.Equal(t, "Ärende [NUM]", result.MaskedText)
	assert.Equal(t, LevelStrict, result.LevelUsed)
	assert.Equal(t, map[Level][]ReasonCode{
		LevelNormal: {ReasonPersonnummer, ReasonLongNumber},
	}, result.ReasonsByLevel)
	assert.True(t, result.Restrictions.AIAllowed)
	assert.True(t, result.Restrictions.ExportAllowed)
}

func TestSanitizeFrom_MinimumLevelSkipsLighterLevels(t *testing.T) {
	result, err := SanitizeFrom("Möte imorgon med Sökande Anna Andersson", LevelStrict)
	require.NoError(t, err)

	assert.Equal(t, LevelStrict, result.LevelUsed)
	assert.Nil(t, result.ReasonsByLevel)
}

func TestSanitizeFrom_ParanoidFloorLocksRestrictions(t *testing.T) {
	result, err := SanitizeFrom("Sökande Anna Andersson, född 19800101", LevelParanoid)
	require.NoError(t, err)

	assert.Equal(t, "Sökande [NAME]", result.MaskedText)
	assert.Equal(t, LevelParanoid, result.LevelUsed)
	assert.False(t, result.Restrictions.AIAllowed)
	assert.False(t, result.Restrictions.ExportAllowed)
}

func TestSanitizeFrom_InvalidMinimum(t *testing.T) {
	_, err := SanitizeFrom("text", Level("maximal"))
	require.Error(t, err)

	var invalid *ErrInvalidLevel
	assert.ErrorAs(t, err, &invalid)
}

func TestSanitize_ParanoidGateViolationFailsClosed(t *testing.T) {
	// The real gate cannot reject paranoid output, so a stub gate stands
	// in for a pattern-coverage regression.
	alwaysUnsafe := func(string) Verdict {
		return Verdict{IsSafe: false, Reasons: []ReasonCode{ReasonLongNumber}}
	}

	result, err := run("Ärende 5551234567", LevelNormal, Mask, alwaysUnsafe)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParanoidGateViolation)
	assert.Equal(t, Result{}, result)
}

func TestSanitize_EscalationPicksFirstPassingLevel(t *testing.T) {
	inputs := []string{
		"Kontakta 070-123 45 67 för mer info.",
		"Personnummer: 19800101-1234",
		"Ärende 5551234567",
		"Dok.Id 123456",
		"Ingen känslig information alls.",
		"",
	}

	for _, input := range inputs {
		result, err := Sanitize(input)
		require.NoError(t, err, "input %q", input)

		for _, level := range levelOrder {
			masked, merr := Mask(input, level)
			require.NoError(t, merr)
			if Check(masked).IsSafe {
				assert.Equal(t, level, result.LevelUsed, "input %q", input)
				assert.Equal(t, masked, result.MaskedText, "input %q", input)
				break
			}
			assert.NotEqual(t, level, result.LevelUsed,
				"input %q must not settle on a level the gate rejects", input)
		}
	}
}

func TestSanitize_ParanoidOutputAlwaysPassesGate(t *testing.T) {
	inputs := []string{
		"Kontakta 070-123 45 67, pnr 19800101-1234, mejla a@b.se",
		"Dok.Id 123456\nSökande Anna Andersson\nRef 24 698",
		"Se https://example.com/artikel?id=123 om ärende 5551234567.",
	}

	for _, input := range inputs {
		masked, err := Mask(input, LevelParanoid)
		require.NoError(t, err)
		verdict := Check(masked)
		assert.True(t, verdict.IsSafe, "paranoid residue in %q: %v", masked, verdict.Reasons)
	}
}

func TestSanitize_ResultIsStablePerInput(t *testing.T) {
	// Same input, same outcome: the pipeline has no hidden state.
	first, err := Sanitize("Ärende 5551234567")
	require.NoError(t, err)
	second, err := Sanitize("Ärende 5551234567")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
