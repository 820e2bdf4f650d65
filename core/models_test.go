package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("Fareed: I love you")
		b := IDFromContent("Fareed: I love you")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("Fareed: I love you")
		b := IDFromContent("Fareed: I love you too")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content has an id", func(t *testing.T) {
		assert.NotPanics(t, func() { _ = IDFromContent("") })
	})
}

func TestMessageFlatten(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "plain message",
			msg:  Message{Timestamp: "14/02/2024, 9:30 pm", Sender: "Fareed", Content: "I love you"},
			want: "Fareed: I love you",
		},
		{
			name: "empty content keeps separator",
			msg:  Message{Timestamp: "14/02/2024, 9:30 pm", Sender: "Fareed", Content: ""},
			want: "Fareed: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.Flatten())
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Human", RoleHuman.String())
	assert.Equal(t, "AI", RoleAI.String())
	assert.Equal(t, "unknown", Role(0).String())
}
