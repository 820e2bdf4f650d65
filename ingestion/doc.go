// Package ingestion provides the offline pipeline that turns a raw
// chat export into the persisted vector index.
//
// The pipeline parses the transcript line by line, flattens surviving
// messages into a single document, splits it into overlapping chunks,
// embeds every chunk, and replaces the on-disk index wholesale.
// Embedding is spread over a worker pool but the run is synchronous:
// Run returns only after the index is persisted or an error occurred.
package ingestion
