package vision

import "context"

// Result is the outcome of a successful transport round-trip with the vision
// model. Success=false means the model answered but declined to analyze the
// image (soft failure); Text then carries the model's own refusal wording.
type Result struct {
	Text    string
	Success bool
}

// Client abstracts the vision-capable chat model. Implementations must be
// safe for concurrent use. A returned error is a hard failure (transport,
// credentials, malformed provider response); callers must not run extraction
// on a hard failure.
type Client interface {
	Analyze(ctx context.Context, imageB64, prompt string) (Result, error)
}
