package ingestion

import (
	"github.com/poiesic/memoir/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// Chunking defaults: 1000-character chunks with 200 characters of
// overlap, split preferentially at blank lines, then single newlines,
// then spaces, then hard cuts.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// chunkSeparators is the boundary-preference order for splitting.
var chunkSeparators = []string{"\n\n", "\n", " ", ""}

// Chunker splits the flattened transcript document into bounded,
// overlapping chunks ready for embedding. Splitting is deterministic:
// identical input and parameters always produce identical boundaries.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
	source   string
}

// NewChunker creates a chunker that tags every produced chunk with the
// given logical source name.
func NewChunker(source string, chunkSize, chunkOverlap int) (*Chunker, error) {
	if source == "" {
		return nil, ErrSourceRequired
	}
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, ErrInvalidChunkParams
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators(chunkSeparators),
	)

	return &Chunker{
		splitter: splitter,
		source:   source,
	}, nil
}

// Chunk splits the document into chunks. Every chunk carries the
// uniform coarse source tag; per-message metadata is not preserved
// past this point. A chunk may exceed the configured maximum only when
// it contains a single unsplittable token run longer than the maximum.
func (c *Chunker) Chunk(document string) ([]*core.Chunk, error) {
	texts, err := c.splitter.SplitText(document)
	if err != nil {
		return nil, err
	}

	chunks := make([]*core.Chunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, &core.Chunk{
			Id:     core.IDFromContent(text),
			Text:   text,
			Source: c.source,
		})
	}
	return chunks, nil
}
