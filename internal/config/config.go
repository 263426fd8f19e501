package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	DefaultMaxInputBytes = 256 * 1024
)

// Config is the agentwire CLI configuration.
type Config struct {
	Log    LogConfig
	Limits LimitsConfig
	Output OutputConfig
}

type LogConfig struct {
	Level     string
	Timestamp bool
	NoColor   bool
}

// LimitsConfig bounds how much input the CLI hands to the decoder.
type LimitsConfig struct {
	MaxInputBytes int64
}

type OutputConfig struct {
	Format string
}

type fileConfig struct {
	Log struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
	} `toml:"log"`
	Limits struct {
		MaxInputBytes int64 `toml:"max_input_bytes"`
	} `toml:"limits"`
	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
		Limits: LimitsConfig{MaxInputBytes: DefaultMaxInputBytes},
		Output: OutputConfig{Format: FormatText},
	}
}

// Load reads path and overlays every key it defines onto DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("limits", "max_input_bytes") {
		cfg.Limits.MaxInputBytes = raw.Limits.MaxInputBytes
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(raw.Output.Format))
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s invalid: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, err := cfg.Log.Logging(); err != nil {
		return err
	}
	if cfg.Limits.MaxInputBytes <= 0 {
		return fmt.Errorf("limits.max_input_bytes must be positive")
	}
	switch cfg.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be one of %q, %q, %q", FormatText, FormatJSON, FormatYAML)
	}
	return nil
}
