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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/memoir"
	"github.com/poiesic/memoir/ai"
	"github.com/poiesic/memoir/config"
	"github.com/poiesic/memoir/storage"
	"github.com/poiesic/memoir/tui"
)

func main() {
	// Credentials may live in a local .env file; a missing file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "memoir",
		Usage: "Chat with your own message history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Parse the chat export and build the vector index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "transcript",
						Aliases: []string{"t"},
						Usage:   "Path to the exported chat transcript (overrides config)",
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Start an interactive chat session over the ingested index",
				Action: chatCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}
	slog.Debug("loaded configuration", "path", path)
	return cfg, nil
}

func ingestCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if transcript := c.String("transcript"); transcript != "" {
		cfg.Ingest.TranscriptPath = transcript
	}

	report, err := memoir.RunIngestion(context.Background(), cfg)
	if err != nil {
		// Missing credential is an operator mistake, not a crash:
		// say what to do and exit cleanly.
		if errors.Is(err, ai.ErrMissingEmbedderCredential) {
			fmt.Fprintf(os.Stderr, "Warning: %v (put it in .env or the environment). Nothing ingested.\n", err)
			return nil
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Transcript: %s\n", cfg.Ingest.TranscriptPath)
	fmt.Fprintf(os.Stderr, "Lines read: %d\n", report.LinesRead)
	fmt.Fprintf(os.Stderr, "Messages kept: %d\n", report.MessagesParsed)
	fmt.Fprintf(os.Stderr, "Chunks indexed: %d\n", report.ChunksProduced)
	fmt.Fprintf(os.Stderr, "Index written to %s\n", cfg.IndexDir)
	return nil
}

func chatCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ctx := context.Background()

	assistant, err := memoir.Open(ctx, cfg)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrIndexNotFound):
			return fmt.Errorf("%w: run `memoir ingest` before chatting", err)
		case errors.Is(err, ai.ErrNoCompleterCredential),
			errors.Is(err, ai.ErrMissingEmbedderCredential):
			return fmt.Errorf("%w (put it in .env or the environment)", err)
		default:
			return fmt.Errorf("opening assistant: %w", err)
		}
	}
	defer assistant.Close()

	count, err := assistant.IndexCount(ctx)
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}

	program := tea.NewProgram(tui.New(assistant, count), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
