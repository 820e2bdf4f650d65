// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/core"
	"github.com/poiesic/memoir/storage"
)

// DefaultTopK is the number of chunks retrieved per turn.
const DefaultTopK = 5

// Engine answers questions about the indexed chat history. Each turn
// performs, in strict sequence: at most one reformulation call, one
// retrieval, one answer-synthesis call. All calls block; a failure
// aborts the turn and leaves the caller's history untouched.
type Engine struct {
	repository storage.ChunkRepository
	embedder   ai.Embedder
	completer  ai.Completer
	topK       int
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithTopK sets the number of chunks retrieved per turn.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(e *Engine) error {
		if k < 1 {
			k = 1
		}
		e.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new answering engine.
func NewEngine(
	repository storage.ChunkRepository,
	embedder ai.Embedder,
	completer ai.Completer,
	opts ...Option,
) (*Engine, error) {
	if repository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	e := &Engine{
		repository: repository,
		embedder:   embedder,
		completer:  completer,
		topK:       DefaultTopK,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Retrieve returns up to topK chunks relevant to the question. With an
// empty history the question is searched verbatim; with a non-empty
// history exactly one reformulation call rewrites it into a standalone,
// keyword-expanded query first, and the rewritten text is what gets
// embedded and searched.
func (e *Engine) Retrieve(ctx context.Context, history []core.Turn, input string) ([]*core.SearchResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyQuestion
	}

	query, err := selectStrategy(e.completer, history, input).Query(ctx)
	if err != nil {
		e.logger.Error("error reformulating question", "err", err)
		return nil, err
	}
	if query != input {
		e.logger.Debug("reformulated question", "input", input, "query", query)
	}

	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	results, err := e.repository.FindSimilar(ctx, embedding, e.topK)
	if err != nil {
		e.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	e.logger.Debug("retrieved chunks", "count", len(results))

	return results, nil
}

// Answer synthesizes a grounded answer from the retrieved chunks. It
// issues one completion call with the persona instruction, the
// assembled context, the bounded history, and the question. It does
// not mutate history; the caller appends the returned answer.
func (e *Engine) Answer(ctx context.Context, history []core.Turn, input string, results []*core.SearchResult) (string, error) {
	answer, err := e.completer.Complete(ctx, ai.Prompt{
		System:  answerSystemPrompt + "\n\n" + assembleContext(results),
		History: history,
		Input:   input,
	})
	if err != nil {
		e.logger.Error("error synthesizing answer", "err", err)
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Ask runs one full turn: retrieve then answer.
func (e *Engine) Ask(ctx context.Context, history []core.Turn, input string) (string, error) {
	results, err := e.Retrieve(ctx, history, input)
	if err != nil {
		return "", err
	}
	return e.Answer(ctx, history, input, results)
}

// assembleContext joins the retrieved chunk texts into one context
// block. An empty result set yields an empty block; the persona
// instruction already tells the model to say the answer is absent.
func assembleContext(results []*core.SearchResult) string {
	texts := make([]string, 0, len(results))
	for _, result := range results {
		texts = append(texts, result.Chunk.Text)
	}
	return strings.Join(texts, "\n\n")
}
