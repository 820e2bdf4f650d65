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

// Package config loads and persists the application's YAML
// configuration. Credentials never live here; they come from the
// environment (see the ai package).
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// IngestConfig configures the offline ingestion pipeline.
type IngestConfig struct {
	TranscriptPath string `yaml:"transcript_path"`
	Source         string `yaml:"source"`
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
}

// ChatConfig configures the per-turn query pipeline.
type ChatConfig struct {
	TopK          int `yaml:"top_k"`
	HistoryWindow int `yaml:"history_window"`
}

// ModelsConfig names the remote models. Which completion provider is
// used depends on which credential is present in the environment.
type ModelsConfig struct {
	Embedding   string  `yaml:"embedding"`
	Groq        string  `yaml:"groq"`
	Google      string  `yaml:"google"`
	Temperature float64 `yaml:"temperature"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	IndexDir string       `yaml:"index_dir"`
	Ingest   IngestConfig `yaml:"ingest"`
	Chat     ChatConfig   `yaml:"chat"`
	Models   ModelsConfig `yaml:"models"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./memoir.yaml first, then ~/.config/memoir/config.yaml.
// If neither exists, it writes defaults to ~/.config/memoir/config.yaml
// and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "memoir.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "memoir", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		IndexDir: "./memoir_index",
		Ingest: IngestConfig{
			TranscriptPath: "./chat.txt",
			Source:         "whatsapp_chat",
			ChunkSize:      1000,
			ChunkOverlap:   200,
		},
		Chat: ChatConfig{
			TopK:          5,
			HistoryWindow: 5,
		},
		Models: ModelsConfig{
			Embedding:   "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2",
			Groq:        "llama-3.1-8b-instant",
			Google:      "gemini-1.5-flash",
			Temperature: 0.7,
		},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.IndexDir == "" {
		cfg.IndexDir = def.IndexDir
	}
	if cfg.Ingest.Source == "" {
		cfg.Ingest.Source = def.Ingest.Source
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = def.Ingest.ChunkSize
	}
	if cfg.Ingest.ChunkOverlap == 0 {
		cfg.Ingest.ChunkOverlap = def.Ingest.ChunkOverlap
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = def.Chat.TopK
	}
	if cfg.Chat.HistoryWindow == 0 {
		cfg.Chat.HistoryWindow = def.Chat.HistoryWindow
	}
	if cfg.Models.Embedding == "" {
		cfg.Models.Embedding = def.Models.Embedding
	}
	if cfg.Models.Groq == "" {
		cfg.Models.Groq = def.Models.Groq
	}
	if cfg.Models.Google == "" {
		cfg.Models.Google = def.Models.Google
	}
	if cfg.Models.Temperature == 0 {
		cfg.Models.Temperature = def.Models.Temperature
	}
}
