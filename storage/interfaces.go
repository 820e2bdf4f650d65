package storage

import (
	"context"

	"github.com/poiesic/memoir/core"
)

// ChunkRepository provides operations for managing indexed chunks.
// The ingestion pipeline writes the index; the query pipeline only
// reads it. Implementations must be thread-safe.
type ChunkRepository interface {
	// AddChunks adds one or more chunks to the index.
	// Chunks with Id=0 receive a content-derived ID.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) error

	// ReplaceAll atomically discards the existing index contents and
	// stores the given chunks. Re-ingestion replaces the index
	// wholesale; there is no incremental update.
	ReplaceAll(ctx context.Context, chunks []*core.Chunk) error

	// FindSimilar finds chunks similar to the given vector, ordered by
	// similarity score (highest first), up to limit results. No score
	// threshold is applied; low-relevance chunks are returned and the
	// caller decides what to do with them.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error)

	// Count returns the number of chunks in the index.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
