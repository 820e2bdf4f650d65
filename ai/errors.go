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

import "errors"

var (
	// ErrMissingEmbedderCredential is returned when the embedding
	// service credential is not configured.
	ErrMissingEmbedderCredential = errors.New("missing embedding credential: set HUGGINGFACEHUB_API_TOKEN")

	// ErrNoCompleterCredential is returned when neither completion
	// service credential is configured.
	ErrNoCompleterCredential = errors.New("no completion credential: set GROQ_API_KEY or GOOGLE_API_KEY")

	// ErrEmptyCompletion is returned when the completion service
	// responds without any choices.
	ErrEmptyCompletion = errors.New("completion service returned no choices")
)
