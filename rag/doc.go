// Package rag implements the per-turn question answering pipeline:
// history-aware query reformulation, similarity retrieval over the
// persisted index, context assembly, and grounded answer synthesis.
package rag
