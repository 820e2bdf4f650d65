package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/memoir/core"
)

func TestNewChunkerValidation(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		size    int
		overlap int
		wantErr error
	}{
		{"valid", "whatsapp_chat", 1000, 200, nil},
		{"empty source", "", 1000, 200, ErrSourceRequired},
		{"zero size", "whatsapp_chat", 0, 0, ErrInvalidChunkParams},
		{"negative overlap", "whatsapp_chat", 1000, -1, ErrInvalidChunkParams},
		{"overlap equals size", "whatsapp_chat", 200, 200, ErrInvalidChunkParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunker, err := NewChunker(tt.source, tt.size, tt.overlap)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, chunker)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, chunker)
		})
	}
}

func TestChunkRespectsSize(t *testing.T) {
	chunker, err := NewChunker("whatsapp_chat", 100, 20)
	require.NoError(t, err)

	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "Fareed: another message about our plans for the weekend")
	}
	document := strings.Join(lines, "\n")

	chunks, err := chunker.Chunk(document)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Text), 100)
	}
}

func TestChunkTagsSourceAndIDs(t *testing.T) {
	chunker, err := NewChunker("whatsapp_chat", DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	chunks, err := chunker.Chunk("Fareed: hello\nAmbreen: hi there")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.Equal(t, "whatsapp_chat", chunk.Source)
		assert.Equal(t, core.IDFromContent(chunk.Text), chunk.Id)
	}
}

func TestChunkDeterministic(t *testing.T) {
	chunker, err := NewChunker("whatsapp_chat", 80, 10)
	require.NoError(t, err)

	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "Ambreen: enna da panra ippo, sollu")
	}
	document := strings.Join(lines, "\n")

	first, err := chunker.Chunk(document)
	require.NoError(t, err)
	second, err := chunker.Chunk(document)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].Id, second[i].Id)
	}
}

func TestChunkEmptyDocument(t *testing.T) {
	chunker, err := NewChunker("whatsapp_chat", DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	chunks, err := chunker.Chunk("")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
