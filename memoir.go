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

// Package memoir ties the pieces together: it opens the persisted
// vector index, builds the remote AI providers from environment
// credentials, and exposes the two top-level entry points — one-shot
// transcript ingestion and an interactive chat session.
package memoir

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/ai/googleai"
	"github.com/poiesic/memoir/ai/groq"
	"github.com/poiesic/memoir/ai/huggingface"
	"github.com/poiesic/memoir/config"
	"github.com/poiesic/memoir/core"
	"github.com/poiesic/memoir/ingestion"
	"github.com/poiesic/memoir/rag"
	"github.com/poiesic/memoir/session"
	"github.com/poiesic/memoir/storage"
	"github.com/poiesic/memoir/storage/badger"
)

// Assistant is the top-level handle for one chat session over an
// ingested index. It owns the index backend and the session history;
// one Assistant serves one user session.
type Assistant struct {
	backend    *badger.Backend
	repository storage.ChunkRepository
	engine     *rag.Engine
	history    *session.History
	window     int
	logger     *slog.Logger
}

// Option configures Open and RunIngestion.
type Option func(*options)

type options struct {
	aiConfig  *ai.Config
	embedder  ai.Embedder
	completer ai.Completer
	logger    *slog.Logger
}

// WithAIConfig overrides the AI provider configuration. By default it
// is derived from the application config, with credentials read from
// the environment.
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = cfg
	}
}

// WithProviders substitutes the embedder and completer, bypassing
// remote provider construction. Intended for tests.
func WithProviders(embedder ai.Embedder, completer ai.Completer) Option {
	return func(o *options) {
		o.embedder = embedder
		o.completer = completer
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

func applyOptions(cfg *config.AppConfig, opts []Option) *options {
	o := &options{
		aiConfig: aiConfigFrom(cfg),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// aiConfigFrom maps the application's model settings onto the AI
// provider configuration. Credentials still come from the environment.
func aiConfigFrom(cfg *config.AppConfig) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingModel(cfg.Models.Embedding),
		ai.WithGroqModel(cfg.Models.Groq),
		ai.WithGoogleModel(cfg.Models.Google),
		ai.WithTemperature(cfg.Models.Temperature),
	)
}

// newCompleter picks the completion provider: Groq when its key is
// present, Google as the fallback.
func newCompleter(ctx context.Context, aiCfg *ai.Config) (ai.Completer, error) {
	if aiCfg.GroqAPIKey != "" {
		return groq.NewCompleter(aiCfg)
	}
	if aiCfg.GoogleAPIKey != "" {
		return googleai.NewCompleter(ctx, aiCfg)
	}
	return nil, ai.ErrNoCompleterCredential
}

// IndexExists reports whether an ingested index is present at the
// configured location.
func IndexExists(cfg *config.AppConfig) bool {
	return badger.IndexExists(cfg.IndexDir)
}

// Open opens an existing index and builds a chat session over it.
// It fails with storage.ErrIndexNotFound when ingestion has not run
// yet, and with ai credential errors before any remote call is made.
func Open(ctx context.Context, cfg *config.AppConfig, opts ...Option) (*Assistant, error) {
	o := applyOptions(cfg, opts)

	backend, err := badger.OpenExisting(cfg.IndexDir)
	if err != nil {
		return nil, err
	}
	repository := badger.NewChunkRepository(backend)

	embedder := o.embedder
	if embedder == nil {
		embedder, err = huggingface.NewEmbedder(o.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	completer := o.completer
	if completer == nil {
		completer, err = newCompleter(ctx, o.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	engine, err := rag.NewEngine(repository, embedder, completer,
		rag.WithTopK(cfg.Chat.TopK),
		rag.WithLogger(o.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:    backend,
		repository: repository,
		engine:     engine,
		history:    session.NewHistory(),
		window:     cfg.Chat.HistoryWindow,
		logger:     o.logger,
	}, nil
}

// Ask runs one conversation turn. The question is appended to the
// session history immediately; the answer only on success, so a failed
// turn leaves the history without a dangling answer and the user may
// retry.
func (a *Assistant) Ask(ctx context.Context, input string) (string, error) {
	window := a.history.Window(a.window)
	a.history.Append(core.RoleHuman, input)

	answer, err := a.engine.Ask(ctx, window, input)
	if err != nil {
		return "", err
	}

	a.history.Append(core.RoleAI, answer)
	return answer, nil
}

// History returns a copy of the session transcript, greeting included.
func (a *Assistant) History() []core.Turn {
	return a.history.Turns()
}

// Reset discards the conversation and reseeds the greeting.
func (a *Assistant) Reset() {
	a.history.Reset()
}

// IndexCount returns the number of chunks in the index.
func (a *Assistant) IndexCount(ctx context.Context) (int, error) {
	return a.repository.Count(ctx)
}

func (a *Assistant) Close() error {
	if err := a.repository.Close(); err != nil {
		a.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// RunIngestion ingests the configured transcript into the index,
// replacing any previous contents wholesale. It refuses to start
// without the embedding credential, and a failed run leaves no index
// state behind: an index that existed before the run survives intact,
// and one created by the run is removed again.
func RunIngestion(ctx context.Context, cfg *config.AppConfig, opts ...Option) (*ingestion.Report, error) {
	o := applyOptions(cfg, opts)

	embedder := o.embedder
	if embedder == nil {
		var err error
		embedder, err = huggingface.NewEmbedder(o.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	// Opening the backend creates the index directory, so an
	// unreadable transcript must fail before any on-disk state exists.
	file, err := os.Open(cfg.Ingest.TranscriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	file.Close()

	indexExisted := badger.IndexExists(cfg.IndexDir)
	backend, err := badger.OpenBackend(cfg.IndexDir, false)
	if err != nil {
		return nil, err
	}

	report, err := runPipeline(ctx, backend, embedder, cfg, o)
	closeErr := backend.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		if !indexExisted {
			if rmErr := os.RemoveAll(cfg.IndexDir); rmErr != nil {
				o.logger.Warn("failed to remove index created by failed ingestion",
					"dir", cfg.IndexDir, "err", rmErr)
			}
		}
		return nil, err
	}
	return report, nil
}

func runPipeline(ctx context.Context, backend *badger.Backend, embedder ai.Embedder, cfg *config.AppConfig, o *options) (*ingestion.Report, error) {
	chunker, err := ingestion.NewChunker(cfg.Ingest.Source, cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	pipeline, err := ingestion.NewPipeline(
		badger.NewChunkRepository(backend),
		embedder,
		chunker,
		ingestion.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	return pipeline.Run(ctx, cfg.Ingest.TranscriptPath)
}
