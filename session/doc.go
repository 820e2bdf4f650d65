// Package session holds the ephemeral conversation state of a chat
// session: an in-memory turn history seeded with a greeting.
package session
