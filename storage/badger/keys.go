package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/memoir/core"
	"github.com/poiesic/memoir/storage"
)

// Chunk records are keyed by generation so a wholesale replace can
// stage the next generation alongside the live one and cut over with a
// single committed write of generationKey. Readers only ever see the
// generation that key names.
const chunkRecordPrefix = "chunk"

var generationKey = []byte("meta:generation")

func makeChunkKey(gen uint64, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", chunkRecordPrefix, gen, id))
}

func chunkGenPrefix(gen uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d:", chunkRecordPrefix, gen))
}

// currentGeneration reads the live generation number. A missing key
// means a fresh index at generation zero.
func currentGeneration(tx *badger.Txn) (uint64, error) {
	item, err := tx.Get(generationKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var gen uint64
	err = item.Value(func(val []byte) error {
		id, err := storage.UnmarshalID(val)
		gen = uint64(id)
		return err
	})
	return gen, err
}
