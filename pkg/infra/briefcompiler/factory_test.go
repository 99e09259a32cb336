package briefcompiler

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbetsytan/arbetsytan/pkg/config"
)

func TestNewProvider_Local(t *testing.T) {
	p, err := NewProvider(context.Background(), config.BriefConfig{
		Provider:       "local",
		URL:            "http://127.0.0.1:8080",
		TimeoutSeconds: 30,
	}, logrus.New())
	require.NoError(t, err)
	assert.Equal(t, "local", p.Name())
}

func TestNewProvider_LocalRequiresURL(t *testing.T) {
	_, err := NewProvider(context.Background(), config.BriefConfig{
		Provider: "local",
	}, logrus.New())
	assert.Error(t, err)
}

func TestNewProvider_UnknownName(t *testing.T) {
	_, err := NewProvider(context.Background(), config.BriefConfig{
		Provider: "openai",
	}, logrus.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown brief provider")
}
