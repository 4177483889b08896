// Package config loads runtime settings for the ndarray engine and CLI.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/ndarray/internal/parallel"
)

// Config contains all engine settings.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after creation.
type Config struct {
	// Parallel controls the fan-out of elementwise arithmetic.
	Parallel ParallelConfig `yaml:"parallel"`

	// Log controls the CLI logger.
	Log LogConfig `yaml:"log"`
}

// ParallelConfig mirrors parallel.Config with YAML tags.
type ParallelConfig struct {
	Enabled      bool `yaml:"enabled"`
	NumWorkers   int  `yaml:"num_workers"`
	MinChunkSize int  `yaml:"min_chunk_size"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Default returns the built-in configuration.
func Default() Config {
	p := parallel.DefaultConfig()
	return Config{
		Parallel: ParallelConfig{
			Enabled:      p.Enabled,
			NumWorkers:   p.NumWorkers,
			MinChunkSize: p.MinChunkSize,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load builds the configuration with priority: env > file > defaults.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	//nolint:gosec // G304: config path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("NDARRAY_PARALLEL_ENABLED"); v != "" {
		cfg.Parallel.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("NDARRAY_PARALLEL_NUM_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Parallel.NumWorkers = i
		}
	}
	if v := os.Getenv("NDARRAY_PARALLEL_MIN_CHUNK_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Parallel.MinChunkSize = i
		}
	}
	if v := os.Getenv("NDARRAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Parallel.NumWorkers < 1 {
		return fmt.Errorf("parallel.num_workers must be >= 1")
	}
	if c.Parallel.MinChunkSize < 1 {
		return fmt.Errorf("parallel.min_chunk_size must be >= 1")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParallelSettings converts the YAML section into a parallel.Config.
func (c Config) ParallelSettings() parallel.Config {
	return parallel.Config{
		Enabled:      c.Parallel.Enabled,
		NumWorkers:   c.Parallel.NumWorkers,
		MinChunkSize: c.Parallel.MinChunkSize,
	}
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds a text logger at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
