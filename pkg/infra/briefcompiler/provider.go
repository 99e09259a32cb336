package briefcompiler

import "context"

// Provider turns a compiled prompt into a project brief. Callers are
// responsible for the prompt containing masked text only; providers
// never see raw content and never log the prompt.
type Provider interface {
	Compile(ctx context.Context, prompt string) (string, error)
	Name() string
}
