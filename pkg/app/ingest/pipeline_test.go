package ingest

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/sanitize"
)

func newTestPipeline() Pipeline {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewPipeline(logger)
}

func TestPipeline_CleanTextPassesAtNormal(t *testing.T) {
	out, err := newTestPipeline().Run("Förhandlingen fortsätter i morgon.", "")

	require.NoError(t, err)
	assert.Equal(t, "Förhandlingen fortsätter i morgon.", out.MaskedText)
	assert.Equal(t, string(sanitize.LevelNormal), out.Level)
	assert.Nil(t, out.Reasons)
	assert.True(t, out.AIAllowed)
	assert.True(t, out.ExportAllowed)
}

func TestPipeline_NormalizesBeforeMasking(t *testing.T) {
	out, err := newTestPipeline().Run("rad ett\r\n\r\n\r\n\r\nrad två  ", "")

	require.NoError(t, err)
	assert.Equal(t, "rad ett\n\nrad två", out.MaskedText)
}

func TestPipeline_EscalationRecordsReasons(t *testing.T) {
	out, err := newTestPipeline().Run("Ärende 5551234567", "")

	require.NoError(t, err)
	assert.Equal(t, "Ärende [NUM]", out.MaskedText)
	assert.Equal(t, string(sanitize.LevelStrict), out.Level)
	assert.Equal(t, domain.ReasonsJSON{
		"normal": {
			string(sanitize.ReasonPersonnummer),
			string(sanitize.ReasonLongNumber),
		},
	}, out.Reasons)
}

func TestPipeline_ProjectFloorSkipsLighterLevels(t *testing.T) {
	out, err := newTestPipeline().Run("Förhandlingen fortsätter i morgon.", "strict")

	require.NoError(t, err)
	assert.Equal(t, string(sanitize.LevelStrict), out.Level)
	assert.True(t, out.AIAllowed)
	assert.True(t, out.ExportAllowed)
}

func TestPipeline_ParanoidFloorRestrictsUse(t *testing.T) {
	out, err := newTestPipeline().Run("Förhandlingen fortsätter i morgon.", "paranoid")

	require.NoError(t, err)
	assert.Equal(t, string(sanitize.LevelParanoid), out.Level)
	assert.False(t, out.AIAllowed)
	assert.False(t, out.ExportAllowed)
}

func TestPipeline_InvalidMinLevel(t *testing.T) {
	_, err := newTestPipeline().Run("text", "maximal")

	var invalid *sanitize.ErrInvalidLevel
	require.ErrorAs(t, err, &invalid)
}
