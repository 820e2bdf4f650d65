// Package storage defines the persisted vector index abstraction and
// its serialization format.
//
// The index maps every chunk of the ingested transcript to its
// embedding vector and supports nearest-neighbor lookup. It is owned
// by the ingestion pipeline (write) and read-only for the query
// pipeline. The BadgerDB implementation lives in the badger subpackage.
package storage
