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


package ai

import (
	"errors"
	"os"
)

// Environment variables holding service credentials.
const (
	EnvHuggingFaceToken = "HUGGINGFACEHUB_API_TOKEN"
	EnvGroqAPIKey       = "GROQ_API_KEY"
	EnvGoogleAPIKey     = "GOOGLE_API_KEY"
)

// Config holds configuration for AI service providers.
type Config struct {
	// HuggingFaceToken is the Hugging Face Inference API token used by
	// the embedding service. Required for ingestion.
	HuggingFaceToken string

	// GroqAPIKey is the Groq API key. When set, Groq is the preferred
	// completion provider.
	GroqAPIKey string

	// GoogleAPIKey is the Google Generative AI key, used as the
	// completion fallback when GroqAPIKey is absent.
	GoogleAPIKey string

	// EmbeddingModel is the sentence-transformer model used for both
	// ingestion and query embeddings. Index and query vectors must come
	// from the same model.
	// Default: "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2"
	EmbeddingModel string

	// GroqModel is the Groq completion model identifier.
	// Default: "llama-3.1-8b-instant"
	GroqModel string

	// GoogleModel is the Google completion model identifier.
	// Default: "gemini-1.5-flash"
	GoogleModel string

	// Temperature is the sampling temperature for completion calls.
	// Default: 0.7
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGroqModel sets the Groq completion model identifier.
func WithGroqModel(model string) ConfigOption {
	return func(c *Config) {
		c.GroqModel = model
	}
}

// WithGoogleModel sets the Google completion model identifier.
func WithGoogleModel(model string) ConfigOption {
	return func(c *Config) {
		c.GoogleModel = model
	}
}

// WithTemperature sets the completion sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithCredentials sets all three service credentials explicitly,
// bypassing environment lookup. Intended for tests.
func WithCredentials(huggingFaceToken, groqKey, googleKey string) ConfigOption {
	return func(c *Config) {
		c.HuggingFaceToken = huggingFaceToken
		c.GroqAPIKey = groqKey
		c.GoogleAPIKey = googleKey
	}
}

// DefaultConfig returns a Config with default model settings and
// credentials read from the environment.
func DefaultConfig() *Config {
	return &Config{
		HuggingFaceToken: os.Getenv(EnvHuggingFaceToken),
		GroqAPIKey:       os.Getenv(EnvGroqAPIKey),
		GoogleAPIKey:     os.Getenv(EnvGoogleAPIKey),
		EmbeddingModel:   "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2",
		GroqModel:        "llama-3.1-8b-instant",
		GoogleModel:      "gemini-1.5-flash",
		Temperature:      0.7,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingModel("sentence-transformers/all-MiniLM-L6-v2"),
//	    ai.WithTemperature(0.2),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// HasEmbedderCredential reports whether the embedding service
// credential is present. Ingestion must not start without it.
func (c *Config) HasEmbedderCredential() bool {
	return c.HuggingFaceToken != ""
}

// HasCompleterCredential reports whether at least one completion
// service credential is present.
func (c *Config) HasCompleterCredential() bool {
	return c.GroqAPIKey != "" || c.GoogleAPIKey != ""
}

// Validate checks that the configuration is complete enough to build
// providers from. Credentials are validated separately at pipeline
// construction, where their absence maps to distinct errors.
func (c *Config) Validate() error {
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GroqModel == "" {
		return errors.New("ai config: GroqModel is required")
	}
	if c.GoogleModel == "" {
		return errors.New("ai config: GoogleModel is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
