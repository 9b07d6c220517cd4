package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Boards  BoardsConfig  `toml:"boards"`
	Board   BoardConfig   `toml:"board"`
	Logging LoggingConfig `toml:"logging"`
}

type BoardsConfig struct {
	Dir string `toml:"dir"`
}

type BoardConfig struct {
	DefaultTitle string   `toml:"default_title"`
	SeedTasks    []string `toml:"seed_tasks"`
}

type LoggingConfig struct {
	Level   string `toml:"level"` // debug | info | warn | error
	DevFile string `toml:"dev_file"`
}

func Default(boardsDir string) Config {
	return Config{
		Boards: BoardsConfig{
			Dir: boardsDir,
		},
		Board: BoardConfig{
			DefaultTitle: "My Kanban Board",
			SeedTasks:    []string{"Implement UI", "Add task functionality"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Board.DefaultTitle) == "" {
		return errors.New("board.default_title is required")
	}

	for i, seed := range c.Board.SeedTasks {
		if strings.TrimSpace(seed) == "" {
			return fmt.Errorf("board.seed_tasks[%d] is empty", i)
		}
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
