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

package session

import (
	"sync"

	"github.com/poiesic/memoir/core"
)

// DefaultGreeting opens every fresh conversation. It is part of the
// history from the start, so the first reformulation already sees an
// assistant turn.
const DefaultGreeting = "Hi! ❤️ I've read all your messages together. Ask me anything about your conversations!"

// History is the in-memory conversation state of one chat session.
// It always begins with a single assistant greeting and never
// persists across process restarts.
type History struct {
	mu       sync.Mutex
	greeting string
	turns    []core.Turn
}

// NewHistory creates a history seeded with the default greeting.
func NewHistory() *History {
	return NewHistoryWithGreeting(DefaultGreeting)
}

// NewHistoryWithGreeting creates a history seeded with a custom
// greeting turn.
func NewHistoryWithGreeting(greeting string) *History {
	h := &History{greeting: greeting}
	h.reset()
	return h
}

// Append records a completed turn.
func (h *History) Append(role core.Role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, core.Turn{Role: role, Content: content})
}

// Turns returns a copy of the full conversation, greeting included.
func (h *History) Turns() []core.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]core.Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Window returns a copy of the most recent n turns. A non-positive n
// returns an empty slice.
func (h *History) Window(n int) []core.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 {
		return nil
	}
	start := len(h.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]core.Turn, len(h.turns)-start)
	copy(out, h.turns[start:])
	return out
}

// Len returns the number of turns, greeting included.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Reset discards the conversation and reseeds the greeting. After a
// reset the history is indistinguishable from a brand new one.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
}

func (h *History) reset() {
	h.turns = []core.Turn{{Role: core.RoleAI, Content: h.greeting}}
}
