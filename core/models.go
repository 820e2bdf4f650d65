package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for indexed chunks.
// It is generated from chunk content using content-based hashing, so
// re-ingesting identical content yields identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a conversation turn.
type Role int

const (
	// RoleHuman represents the human user.
	RoleHuman Role = iota + 1
	// RoleAI represents the AI assistant.
	RoleAI
)

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case RoleHuman:
		return "Human"
	case RoleAI:
		return "AI"
	default:
		return "unknown"
	}
}

// Message is a single parsed transcript line: one timestamped message
// from the chat export. Messages exist only during ingestion; once
// flattened and chunked they are not retained.
type Message struct {
	Timestamp string
	Sender    string
	Content   string
}

// Flatten renders the message as a single indexable line.
func (m *Message) Flatten() string {
	return m.Sender + ": " + m.Content
}

// Turn is a single conversation turn between the user and the
// assistant. Turns are held in memory for the lifetime of one session.
type Turn struct {
	Role    Role
	Content string
}

// Chunk is one retrievable unit of the indexed transcript: a bounded
// span of flattened message text with coarse source metadata and its
// embedding vector. Per-message timestamps are intentionally not
// carried past chunking; only the source tag survives.
type Chunk struct {
	Id     ID
	Text   string
	Source string
	Vector []float32 // Embedding vector (populated by the ingestion pipeline)
}

// SearchResult is a chunk match from vector similarity search.
type SearchResult struct {
	Chunk *Chunk
	Score float32
}
