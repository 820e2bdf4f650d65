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


// Package groq implements ai.Completer against Groq's OpenAI-compatible
// chat completion API. Groq is the preferred completion provider.
package groq

import (
	"context"
	"log/slog"

	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const baseURL = "https://api.groq.com/openai/v1"

// Completer implements ai.Completer using the Groq chat API.
type Completer struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

var _ ai.Completer = (*Completer)(nil)

// NewCompleter creates a new Groq-backed completer.
func NewCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.GroqAPIKey == "" {
		return nil, ai.ErrNoCompleterCredential
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(config.GroqAPIKey),
		openai.WithModel(config.GroqModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "groq-completer"),
	}, nil
}

// Complete issues one chat completion call and returns the raw text.
func (c *Completer) Complete(ctx context.Context, prompt ai.Prompt) (string, error) {
	c.logger.Debug("issuing completion", "historyTurns", len(prompt.History))

	response, err := c.client.GenerateContent(ctx, toMessageContent(prompt),
		llms.WithTemperature(c.temperature))
	if err != nil {
		c.logger.Error("completion call failed", "err", err)
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", ai.ErrEmptyCompletion
	}

	return response.Choices[0].Content, nil
}

// toMessageContent converts a prompt into langchaingo chat messages:
// system instruction, then history turns, then the current input.
func toMessageContent(prompt ai.Prompt) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(prompt.History)+2)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, prompt.System))
	for _, turn := range prompt.History {
		role := llms.ChatMessageTypeHuman
		if turn.Role == core.RoleAI {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, turn.Content))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, prompt.Input))
	return content
}
