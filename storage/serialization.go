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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/memoir/core"
)

// MUS serializers for the persisted chunk record. Field order is part
// of the on-disk format: id, text, source, vector.
var (
	idSer     = varint.Uint64
	vectorSer = ord.NewSliceSer[float32](varint.Float32)
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, idSer.Size(uint64(id)))
	idSer.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := idSer.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(id), nil
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	size := idSer.Size(uint64(chunk.Id)) +
		ord.String.Size(chunk.Text) +
		ord.String.Size(chunk.Source) +
		vectorSer.Size(chunk.Vector)

	buf := make([]byte, size)
	n := idSer.Marshal(uint64(chunk.Id), buf)
	n += ord.String.Marshal(chunk.Text, buf[n:])
	n += ord.String.Marshal(chunk.Source, buf[n:])
	vectorSer.Marshal(chunk.Vector, buf[n:])
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	id, n, err := idSer.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	text, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	n += m

	source, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	n += m

	vector, _, err := vectorSer.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	return &core.Chunk{
		Id:     core.ID(id),
		Text:   text,
		Source: source,
		Vector: vector,
	}, nil
}
