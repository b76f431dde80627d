package repositories

import (
	"context"
)

// NarrativeRepository abstracts the external text-generation service that
// turns the aggregated analysis into a human-readable report.
type NarrativeRepository interface {
	// Name returns the generator identifier (e.g. "gemini:gemini-2.0-flash").
	Name() string

	// Generate sends one prompt and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}
