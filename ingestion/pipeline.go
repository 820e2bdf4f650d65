package ingestion

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/core"
	"github.com/poiesic/memoir/storage"
	"github.com/poiesic/memoir/transcript"
)

// maxLineBytes bounds a single transcript line. Chat exports
// occasionally contain very long pasted lines.
const maxLineBytes = 1 << 20

// defaultBatchSize is the number of chunks embedded per service call.
const defaultBatchSize = 32

// Report holds the stage counts of one ingestion run. The counts are
// informational, for operator visibility.
type Report struct {
	LinesRead      int
	MessagesParsed int
	ChunksProduced int
}

// Pipeline orchestrates transcript ingestion: parse, flatten, chunk,
// embed, and persist the vector index. Each run replaces the index
// wholesale.
type Pipeline struct {
	repository storage.ChunkRepository
	embedder   ai.Embedder
	chunker    *Chunker
	poolSize   int
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithBatchSize sets the number of chunks embedded per service call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	repository storage.ChunkRepository,
	embedder ai.Embedder,
	chunker *Chunker,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	p := &Pipeline{
		repository: repository,
		embedder:   embedder,
		chunker:    chunker,
		poolSize:   poolSize,
		batchSize:  defaultBatchSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run ingests the transcript at sourcePath and persists the vector
// index. It runs to completion before returning; embedding work is
// spread over a worker pool but awaited in full. A failure at any
// stage leaves the previously persisted index untouched (ReplaceAll
// only cuts over after the new contents are fully written).
func (p *Pipeline) Run(ctx context.Context, sourcePath string) (*Report, error) {
	report := &Report{}

	document, err := p.loadDocument(sourcePath, report)
	if err != nil {
		return nil, err
	}
	p.logger.Info("parsed transcript",
		"path", sourcePath,
		"lines", report.LinesRead,
		"messages", report.MessagesParsed)

	chunks, err := p.chunker.Chunk(document)
	if err != nil {
		return nil, fmt.Errorf("chunking transcript: %w", err)
	}
	report.ChunksProduced = len(chunks)
	p.logger.Info("split transcript", "chunks", len(chunks))

	if err := p.embedChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	if err := p.repository.ReplaceAll(ctx, chunks); err != nil {
		return nil, fmt.Errorf("persisting index: %w", err)
	}
	p.logger.Info("persisted index", "chunks", len(chunks))

	return report, nil
}

// loadDocument reads the transcript, parses every line, and flattens
// the surviving messages into one newline-joined document. Lines that
// the parser rejects are silently excluded; rejection is filtering,
// not failure.
func (p *Pipeline) loadDocument(sourcePath string, report *Report) (string, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}
	defer file.Close()

	var flattened []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		report.LinesRead++
		msg, ok := transcript.Parse(scanner.Text())
		if !ok {
			continue
		}
		report.MessagesParsed++
		flattened = append(flattened, msg.Flatten())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}

	return strings.Join(flattened, "\n"), nil
}

// embedChunks fills in the Vector of every chunk, batching service
// calls across a worker pool and waiting for all of them.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Text
			}

			vectors, err := p.embedder.EmbedTexts(ctx, texts)
			if err == nil && len(vectors) != len(batch) {
				err = fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			for i, vector := range vectors {
				batch[i].Vector = vector
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return firstErr
}
