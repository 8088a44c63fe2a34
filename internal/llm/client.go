// Package llm provides the text-completion client used by the generation stages.
package llm

import (
	"context"
)

// Client is an abstraction over text-completion providers.
type Client interface {
	// Complete sends a single rendered prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
}
