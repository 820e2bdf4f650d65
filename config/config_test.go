package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./memoir_index", cfg.IndexDir)
	assert.Equal(t, "whatsapp_chat", cfg.Ingest.Source)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 200, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 5, cfg.Chat.TopK)
	assert.Equal(t, 5, cfg.Chat.HistoryWindow)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Models.Groq)
	assert.InDelta(t, 0.7, cfg.Models.Temperature, 1e-9)
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "index_dir: /data/index\ningest:\n  transcript_path: /data/chat.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/index", cfg.IndexDir)
	assert.Equal(t, "/data/chat.txt", cfg.Ingest.TranscriptPath)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 5, cfg.Chat.TopK)
	assert.Equal(t, "gemini-1.5-flash", cfg.Models.Google)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Ingest.TranscriptPath = "/exports/whatsapp.txt"
	cfg.Chat.TopK = 8

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/exports/whatsapp.txt", loaded.Ingest.TranscriptPath)
	assert.Equal(t, 8, loaded.Chat.TopK)
	assert.Equal(t, cfg.Models, loaded.Models)
}
