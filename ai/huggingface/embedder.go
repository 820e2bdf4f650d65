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


// Package huggingface implements ai.Embedder using the Hugging Face
// Inference API through langchaingo's feature-extraction client.
package huggingface

import (
	"context"
	"log/slog"

	"github.com/poiesic/memoir/ai"
	embedderhf "github.com/tmc/langchaingo/embeddings/huggingface"
	llmhf "github.com/tmc/langchaingo/llms/huggingface"
)

// Embedder implements ai.Embedder using Hugging Face sentence-transformer models.
type Embedder struct {
	embedder *embedderhf.Huggingface
	logger   *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a new embedder using the provided configuration.
// The configured Hugging Face token is required; callers should check
// ai.Config.HasEmbedderCredential before ingestion to surface the
// missing-credential case as a warning rather than a service error.
func NewEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !config.HasEmbedderCredential() {
		return nil, ai.ErrMissingEmbedderCredential
	}

	client, err := llmhf.New(
		llmhf.WithToken(config.HuggingFaceToken),
		llmhf.WithModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embedderhf.NewHuggingface(
		embedderhf.WithClient(*client),
		embedderhf.WithModel(config.EmbeddingModel),
		embedderhf.WithTask("feature-extraction"),
	)
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "huggingface-embedder"),
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	embeddings, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	if len(embeddings) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}

	return embeddings[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	embeddings, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	return embeddings, nil
}
