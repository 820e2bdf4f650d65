package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{
			name: "valid message",
			msg:  &Message{Timestamp: "14/02/2024, 9:30 pm", Sender: "Fareed", Content: "I love you"},
		},
		{
			name: "empty content is valid",
			msg:  &Message{Timestamp: "14/02/2024, 9:30 pm", Sender: "Fareed"},
		},
		{
			name:    "nil message",
			msg:     nil,
			wantErr: ErrInvalidMessage,
		},
		{
			name:    "empty timestamp",
			msg:     &Message{Sender: "Fareed", Content: "hi"},
			wantErr: ErrEmptyTimestamp,
		},
		{
			name:    "empty sender",
			msg:     &Message{Timestamp: "14/02/2024, 9:30 pm", Content: "hi"},
			wantErr: ErrEmptySender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(tt.msg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidMessage)
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name:  "valid chunk",
			chunk: &Chunk{Id: IDFromContent("x"), Text: "Fareed: hello", Source: "whatsapp_chat"},
		},
		{
			name:  "missing vector is valid",
			chunk: &Chunk{Text: "Fareed: hello", Source: "whatsapp_chat"},
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "empty text",
			chunk:   &Chunk{Source: "whatsapp_chat"},
			wantErr: ErrEmptyText,
		},
		{
			name:    "empty source",
			chunk:   &Chunk{Text: "Fareed: hello"},
			wantErr: ErrEmptySource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleHuman))
	assert.NoError(t, ValidateRole(RoleAI))
	assert.ErrorIs(t, ValidateRole(Role(0)), ErrInvalidRole)
	assert.ErrorIs(t, ValidateRole(Role(99)), ErrInvalidRole)
}
