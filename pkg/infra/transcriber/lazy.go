package transcriber

import (
	"context"
	"sync"
)

// lazy defers engine construction to the first transcription request, so
// the process starts cleanly when the engine is configured but down.
// Construction runs once; a failed build is retried on the next call.
type lazy struct {
	mu      sync.Mutex
	factory func() (Transcriber, error)
	inner   Transcriber
}

func NewLazy(factory func() (Transcriber, error)) Transcriber {
	return &lazy{factory: factory}
}

func (l *lazy) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inner == nil {
		return "uninitialized"
	}
	return l.inner.Name()
}

func (l *lazy) Transcribe(ctx context.Context, sourceRef string) (Result, error) {
	inner, err := l.get()
	if err != nil {
		return Result{}, err
	}
	return inner.Transcribe(ctx, sourceRef)
}

func (l *lazy) get() (Transcriber, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inner != nil {
		return l.inner, nil
	}
	inner, err := l.factory()
	if err != nil {
		return nil, err
	}
	l.inner = inner
	return inner, nil
}
