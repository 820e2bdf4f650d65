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
	"strings"

	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/core"
)

// queryStrategy produces the text that is actually embedded and
// searched for one turn. There are exactly two variants: verbatim
// (no history) and reformulated (history present). Keeping them as
// separate types keeps the two paths independently testable.
type queryStrategy interface {
	Query(ctx context.Context) (string, error)
}

// selectStrategy picks the retrieval strategy for one turn.
func selectStrategy(completer ai.Completer, history []core.Turn, input string) queryStrategy {
	if len(history) == 0 {
		return verbatimStrategy{input: input}
	}
	return reformulateStrategy{
		completer: completer,
		history:   history,
		input:     input,
	}
}

// verbatimStrategy searches with the user's question as given. No
// model call is made.
type verbatimStrategy struct {
	input string
}

func (s verbatimStrategy) Query(context.Context) (string, error) {
	return s.input, nil
}

// reformulateStrategy issues one completion call to rewrite the
// question as a standalone, keyword-expanded query.
type reformulateStrategy struct {
	completer ai.Completer
	history   []core.Turn
	input     string
}

func (s reformulateStrategy) Query(ctx context.Context) (string, error) {
	out, err := s.completer.Complete(ctx, ai.Prompt{
		System:  contextualizeSystemPrompt,
		History: s.history,
		Input:   s.input,
	})
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		// A blank rewrite is useless; fall back to the original question.
		return s.input, nil
	}
	return out, nil
}
