package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/sortviz/internal/logging"
	"github.com/thruflo/sortviz/internal/sorting"
	"github.com/thruflo/sortviz/internal/tone"
)

// Dir is the per-project directory holding config and logs.
const Dir = ".sortviz"

// Default values for Config.
const (
	DefaultAlgorithm  = "bubble"
	DefaultSize       = 100
	DefaultSpeed      = 95
	DefaultMaxSpeed   = 100
	DefaultFPS        = 60
	MaxFPS            = 240
	DefaultSoundMode  = "index"
	DefaultVolume     = 0.3
	DefaultSampleRate = tone.DefaultSampleRate
	DefaultBufferMS   = 50
	DefaultLogLevel   = "info"
	DefaultLogFile    = "sortviz.log"
)

// DefaultVisualizer returns visualizer settings with sensible default values.
func DefaultVisualizer() Visualizer {
	return Visualizer{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		Speed:     DefaultSpeed,
		MaxSpeed:  DefaultMaxSpeed,
		FPS:       DefaultFPS,
	}
}

// DefaultSound returns sound settings with sensible default values.
func DefaultSound() Sound {
	return Sound{
		Enabled:    true,
		Mode:       DefaultSoundMode,
		Volume:     DefaultVolume,
		SampleRate: DefaultSampleRate,
		BufferMS:   DefaultBufferMS,
	}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Visualizer: DefaultVisualizer(),
		Sound:      DefaultSound(),
		Log: Log{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Path returns the config file path under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, Dir, "config.yaml")
}

// LogPath resolves the configured log file. Relative paths live under
// basePath/.sortviz.
func LogPath(basePath string, cfg *Config) string {
	if filepath.IsAbs(cfg.Log.File) {
		return cfg.Log.File
	}
	return filepath.Join(basePath, Dir, cfg.Log.File)
}

// LoadConfig reads and parses .sortviz/config.yaml from the given base path.
// If the file doesn't exist, returns default config.
// Applies defaults for any missing fields and validates the result.
func LoadConfig(basePath string) (*Config, error) {
	cfg, err := ReadConfig(basePath)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadConfig is LoadConfig without validation, for callers that override
// values before validating them.
func ReadConfig(basePath string) (*Config, error) {
	data, err := os.ReadFile(Path(basePath))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .sortviz/config.yaml under basePath.
func WriteConfig(basePath string, cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path := Path(basePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if err := ValidateVisualizer(&cfg.Visualizer); err != nil {
		return err
	}
	if err := ValidateSound(&cfg.Sound); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	if cfg.Log.File == "" {
		return ValidationError{Field: "log.file", Message: "required field is empty"}
	}
	return nil
}

// ValidateVisualizer checks that visualizer values are valid.
func ValidateVisualizer(v *Visualizer) error {
	if _, err := sorting.Default().Lookup(v.Algorithm); err != nil {
		return ValidationError{Field: "visualizer.algorithm", Message: err.Error()}
	}
	if v.Size < 1 {
		return ValidationError{Field: "visualizer.size", Message: "must be at least 1"}
	}
	if v.MaxSpeed < 1 {
		return ValidationError{Field: "visualizer.max_speed", Message: "must be positive"}
	}
	if v.Speed < 0 || v.Speed > v.MaxSpeed {
		return ValidationError{Field: "visualizer.speed", Message: fmt.Sprintf("must be between 0 and %d", v.MaxSpeed)}
	}
	if v.FPS < 1 || v.FPS > MaxFPS {
		return ValidationError{Field: "visualizer.fps", Message: fmt.Sprintf("must be between 1 and %d", MaxFPS)}
	}
	return nil
}

// ValidateSound checks that sound values are valid.
func ValidateSound(s *Sound) error {
	if _, err := tone.ParseMode(s.Mode); err != nil {
		return ValidationError{Field: "sound.mode", Message: err.Error()}
	}
	if s.Volume < 0 || s.Volume > 1 {
		return ValidationError{Field: "sound.volume", Message: "must be between 0 and 1"}
	}
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		return ValidationError{Field: "sound.sample_rate", Message: "must be between 8000 and 192000"}
	}
	if s.BufferMS < 1 {
		return ValidationError{Field: "sound.buffer_ms", Message: "must be positive"}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
