package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Waves   WavesConfig   `toml:"waves"`
}

type GameConfig struct {
	FrameRate    int           `toml:"frame_rate"`
	MaxDelta     time.Duration `toml:"max_delta"` // dt cap after a stalled frame
	Lives        int           `toml:"lives"`
	DefaultLayer int           `toml:"default_layer"`
	Minimap      bool          `toml:"minimap"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // linear master gain, 0 mutes
	SampleRate int     `toml:"sample_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`
}

type WavesConfig struct {
	Path string `toml:"path"` // empty uses the built-in table
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the frame loop cannot run with
func (c *Config) Validate() error {
	if c.Game.FrameRate <= 0 {
		return fmt.Errorf("game.frame_rate must be positive, got %d", c.Game.FrameRate)
	}
	if c.Game.MaxDelta <= 0 {
		return fmt.Errorf("game.max_delta must be positive, got %s", c.Game.MaxDelta)
	}
	if c.Game.Lives <= 0 {
		return fmt.Errorf("game.lives must be positive, got %d", c.Game.Lives)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

// FrameInterval is the ticker period for the configured frame rate
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Game.FrameRate)
}

// Default returns the built-in configuration
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			FrameRate:    30,
			MaxDelta:     100 * time.Millisecond,
			Lives:        3,
			DefaultLayer: 0,
			Minimap:      true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "starfall.log",
		},
	}
}
