package transcriber

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriber struct {
	result Result
	err    error
}

func (s *stubTranscriber) Name() string { return "stub" }

func (s *stubTranscriber) Transcribe(ctx context.Context, sourceRef string) (Result, error) {
	return s.result, s.err
}

func TestLazy_BuildsOnce(t *testing.T) {
	builds := 0
	stub := &stubTranscriber{result: Result{Text: "hej", DurationSeconds: 3.5}}

	l := NewLazy(func() (Transcriber, error) {
		builds++
		return stub, nil
	})

	assert.Equal(t, "uninitialized", l.Name())

	for i := 0; i < 3; i++ {
		result, err := l.Transcribe(context.Background(), "memo-1")
		require.NoError(t, err)
		assert.Equal(t, "hej", result.Text)
	}

	assert.Equal(t, 1, builds)
	assert.Equal(t, "stub", l.Name())
}

func TestLazy_RetriesFailedBuild(t *testing.T) {
	builds := 0
	l := NewLazy(func() (Transcriber, error) {
		builds++
		if builds == 1 {
			return nil, errors.New("engine not ready")
		}
		return &stubTranscriber{result: Result{Text: "klar"}}, nil
	})

	_, err := l.Transcribe(context.Background(), "memo-1")
	require.Error(t, err)

	result, err := l.Transcribe(context.Background(), "memo-1")
	require.NoError(t, err)
	assert.Equal(t, "klar", result.Text)
	assert.Equal(t, 2, builds)
}
