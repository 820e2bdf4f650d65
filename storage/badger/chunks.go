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


package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/memoir/core"
	"github.com/poiesic/memoir/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository over the backend.
func NewChunkRepository(backend *Backend) *ChunkRepository {
	return &ChunkRepository{backend: backend}
}

// Close is a no-op; the backend owns the database lifecycle.
func (r *ChunkRepository) Close() error {
	return nil
}

// AddChunks adds one or more chunks to the live generation. Chunks
// with Id=0 receive a content-derived ID, so identical content maps to
// the same key across re-ingestions.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) error {
	gen, err := r.generation()
	if err != nil {
		return err
	}
	return r.writeChunks(gen, chunks)
}

// ReplaceAll atomically replaces the index contents. The new chunks
// are staged under the next generation while the live one keeps
// serving reads; a single committed write of the generation key cuts
// over. A failure before the cutover leaves the previous index
// untouched and cleans up the staged records.
func (r *ChunkRepository) ReplaceAll(ctx context.Context, chunks []*core.Chunk) error {
	oldGen, err := r.generation()
	if err != nil {
		return err
	}
	newGen := oldGen + 1

	if err := r.writeChunks(newGen, chunks); err != nil {
		if cleanupErr := r.deleteGeneration(newGen); cleanupErr != nil {
			r.backend.logger.Warn("failed to clean up staged index records",
				"generation", newGen, "err", cleanupErr)
		}
		return err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(generationKey, storage.MarshalID(core.ID(newGen))); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		if cleanupErr := r.deleteGeneration(newGen); cleanupErr != nil {
			r.backend.logger.Warn("failed to clean up staged index records",
				"generation", newGen, "err", cleanupErr)
		}
		return err
	}

	// The old generation is unreachable now; removal is best-effort.
	if err := r.deleteGeneration(oldGen); err != nil {
		r.backend.logger.Warn("failed to remove previous index generation",
			"generation", oldGen, "err", err)
	}
	return nil
}

// FindSimilar delegates to the backend.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, limit)
}

// Count returns the number of chunks in the live generation.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := currentGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkGenPrefix(gen)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// generation returns the live generation number.
func (r *ChunkRepository) generation() (uint64, error) {
	var gen uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		gen, err = currentGeneration(tx)
		return err
	}, false)
	return gen, err
}

// writeChunks validates and stores chunks under the given generation.
// Commits are split whenever a transaction fills up, so arbitrarily
// large ingestions do not hit Badger's transaction size limit.
func (r *ChunkRepository) writeChunks(gen uint64, chunks []*core.Chunk) error {
	tx := r.backend.db.NewTransaction(true)
	defer func() { tx.Discard() }()

	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
		if chunk.Id == 0 {
			chunk.Id = core.IDFromContent(chunk.Text)
		}

		key := makeChunkKey(gen, chunk.Id)
		value := storage.MarshalChunk(chunk)

		err := tx.Set(key, value)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := tx.Commit(); err != nil {
				return err
			}
			tx = r.backend.db.NewTransaction(true)
			err = tx.Set(key, value)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// deleteGeneration removes every chunk record of one generation.
func (r *ChunkRepository) deleteGeneration(gen uint64) error {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkGenPrefix(gen)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	tx := r.backend.db.NewTransaction(true)
	defer func() { tx.Discard() }()

	for _, key := range keys {
		err := tx.Delete(key)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := tx.Commit(); err != nil {
				return err
			}
			tx = r.backend.db.NewTransaction(true)
			err = tx.Delete(key)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
