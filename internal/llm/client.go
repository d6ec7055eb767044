// Package llm wraps the generative-text collaborator. The gateway only
// ever needs two calls per analyze run: turn a PDF into an emissions
// analysis document, and turn that analysis into a recommendations
// document. Both come back as free text; structure is recovered
// downstream by the extraction core.
package llm

import (
	"context"
	"errors"
)

// Client is the minimal surface the analyze pipeline depends on.
type Client interface {
	// AnalyzeDocument sends the uploaded PDF with the analysis prompt
	// and returns the model's markdown analysis.
	AnalyzeDocument(ctx context.Context, mineName string, pdf []byte) (string, error)
	// GenerateSuggestions sends the analysis text with the
	// recommendations prompt and returns the model's suggestions.
	GenerateSuggestions(ctx context.Context, mineName, analysis string) (string, error)
	Name() string
	Close() error
}

// ErrEmptyResponse is returned when the model answers with no usable
// text candidates.
var ErrEmptyResponse = errors.New("llm: empty response")
