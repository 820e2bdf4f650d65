package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/memoir/core"
)

func TestChunkSerializationRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "full chunk",
			chunk: &core.Chunk{
				Id:     core.IDFromContent("Fareed: I love you"),
				Text:   "Fareed: I love you\nAmbreen: naanum than",
				Source: "whatsapp_chat",
				Vector: []float32{0.25, -0.5, 0.125, 1.0},
			},
		},
		{
			name: "chunk without vector",
			chunk: &core.Chunk{
				Id:     42,
				Text:   "Ambreen: enna panra",
				Source: "whatsapp_chat",
			},
		},
		{
			name: "unicode text survives",
			chunk: &core.Chunk{
				Id:     7,
				Text:   "Fareed: kadhal ❤ தமிழ்",
				Source: "whatsapp_chat",
				Vector: []float32{0.1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunk(tt.chunk)
			got, err := UnmarshalChunk(data)
			require.NoError(t, err)
			assert.Equal(t, tt.chunk.Id, got.Id)
			assert.Equal(t, tt.chunk.Text, got.Text)
			assert.Equal(t, tt.chunk.Source, got.Source)
			assert.Equal(t, len(tt.chunk.Vector), len(got.Vector))
			for i := range tt.chunk.Vector {
				assert.InDelta(t, tt.chunk.Vector[i], got.Vector[i], 1e-6)
			}
		})
	}
}

func TestUnmarshalChunkTruncated(t *testing.T) {
	chunk := &core.Chunk{
		Id:     core.IDFromContent("x"),
		Text:   "Fareed: hello",
		Source: "whatsapp_chat",
		Vector: []float32{0.5, 0.5},
	}
	data := MarshalChunk(chunk)

	_, err := UnmarshalChunk(data[:len(data)/2])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestIDSerializationRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 255, 1 << 40, core.IDFromContent("memoir")} {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}
