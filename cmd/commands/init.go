package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/scribelabs/minute/internal/config"
)

// NewInitCommand returns the onboarding subcommand.
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Initialize the Minute home directory (~/.minute)",
		Action: runInit,
	}
}

func runInit(_ context.Context, _ *cli.Command) error {
	root := config.MinutePath()
	created := false

	// Ensure directories exist.
	dirs := []string{
		root,
		filepath.Join(root, "data", "tasks"),
		filepath.Join(root, "data", "meetings"),
		filepath.Join(root, "exports"),
	}
	for _, d := range dirs {
		if _, err := os.Stat(d); err != nil {
			if err := os.MkdirAll(d, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", d, err)
			}
			fmt.Printf("  Created %s\n", d)
			created = true
		}
	}

	// Write default config if missing.
	configPath := config.ConfigPath()
	if _, err := os.Stat(configPath); err != nil {
		if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("  Created %s\n", configPath)
		created = true
	}

	// Write default .env if missing.
	dotenvPath := config.DotenvPath()
	if _, err := os.Stat(dotenvPath); err != nil {
		if err := os.WriteFile(dotenvPath, []byte(defaultDotenv), 0o600); err != nil {
			return fmt.Errorf("write .env: %w", err)
		}
		fmt.Printf("  Created %s\n", dotenvPath)
		created = true
	}

	if !created {
		fmt.Printf("%s is already set up. Nothing to do.\n", root)
		return nil
	}

	fmt.Printf(`
  Minute is ready.

  Home set up at %s

  Next steps:
    1. If you use OpenAI, drop your API key in %s/.env
    2. Tweak %s/config.jsonc (model, reminder interval) if you feel like it
    3. Run: minute process path/to/transcript.txt
    4. Run: minute remind
`, root, root, root)
	return nil
}

const defaultConfig = `{
	// Minute Configuration

	"storage": {
		// "file" keeps everything as JSON directories; "sqlite" moves tasks
		// into a single database file.
		"driver": "file"
	},

	"models": {
		"default": "local",
		"providers": {
			// Local model via Ollama (no auth required)
			"local": {
				"driver": "ollama",
				"model": "gemma2:2b",
				"base_url": "http://localhost:11434"
			}

			// "gpt": {
			// 	"driver": "openai",
			// 	"model": "gpt-4o-mini",
			// 	"auth": {
			// 		"api_key": "${{ .Env.OPENAI_API_KEY }}"
			// 	},
			// 	"max_tokens": 4096
			// }
		}
	},

	"reminder": {
		"interval": "30s",
		// Daily overdue sweep at 09:00; tasks past due beyond expire_after
		// are marked expired.
		"sweep_spec": "0 9 * * *",
		"expire_after": "168h"
	},

	"events": {
		"buffer_size": 1024
	}
}
`

const defaultDotenv = `# Minute environment variables
# This file is loaded automatically. Existing env vars are never overridden.

# OPENAI_API_KEY=sk-...
# OLLAMA_HOST=http://localhost:11434
`
