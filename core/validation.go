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


package core

import "fmt"

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - Timestamp must not be empty
//   - Sender must not be empty
//
// NOT validated:
//   - Content (may be empty when the original line had an empty payload
//     after the sender separator)
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if msg.Timestamp == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyTimestamp)
	}

	if msg.Sender == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptySender)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Source must not be empty
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the chunk is embedded)
//   - Id (derived from content at creation time)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySource)
	}

	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	if role != RoleHuman && role != RoleAI {
		return fmt.Errorf("%w: value %d", ErrInvalidRole, role)
	}
	return nil
}
