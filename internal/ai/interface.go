package ai

import (
	"context"
)

// JSONGenerator returns a model answer that is expected to be a single JSON document.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// TextGenerator returns a free-form model answer.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
