package ai

import (
	"context"

	"github.com/poiesic/memoir/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Prompt is the input for a single chat completion: a system
// instruction, a bounded window of prior conversation turns, and the
// current user input.
type Prompt struct {
	System  string
	History []core.Turn
	Input   string
}

// Completer produces a text completion for a chat prompt.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete issues one chat completion call and returns the raw
	// completion text. Returns an error if the upstream service call
	// fails; the caller decides whether to retry the turn.
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
