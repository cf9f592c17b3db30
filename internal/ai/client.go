// Package ai answers free-form farmer questions that the keyword router
// could not dispatch. The real implementation calls an OpenAI-compatible
// chat-completions endpoint; a deterministic mock backs tests and keyless
// local runs.
package ai

import "context"

// Client answers a single question. Implementations must be safe for
// concurrent use; errors are replaced with a canned fallback by the
// caller, never shown raw to the end user.
type Client interface {
	Answer(ctx context.Context, question string) (string, error)
}
