// Package ai defines the interfaces for AI services used by the
// ingestion and query pipelines: text embedding and chat completion.
//
// Concrete implementations live in subpackages:
//   - huggingface: embeddings via the Hugging Face Inference API
//   - groq: completions via Groq's OpenAI-compatible API (preferred)
//   - googleai: completions via Google Generative AI (fallback)
//   - mock: test doubles with injectable behavior
package ai
