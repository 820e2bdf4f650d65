package ingestion

import "errors"

var (
	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrSourceRequired is returned when the logical source name is empty.
	ErrSourceRequired = errors.New("source name required")

	// ErrInvalidChunkParams is returned when chunk size or overlap is
	// out of range (overlap must be smaller than the chunk size).
	ErrInvalidChunkParams = errors.New("invalid chunking parameters")
)
