package generation

import "context"

// Completer is a single-shot, prompt-in/text-out language model.
// Implementations return the raw text of the model's reply; callers extract
// and validate any structure they expect with Decode.
type Completer interface {
	// Complete sends prompt to the model and returns its text reply.
	// Failures wrap domain.ErrUpstreamFailure.
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
