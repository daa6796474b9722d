package config

// Visualizer holds the input-surface defaults for an interactive session.
type Visualizer struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Speed     int    `yaml:"speed"`
	MaxSpeed  int    `yaml:"max_speed"`
	FPS       int    `yaml:"fps"`
	// Seed fixes the shuffle when non-zero.
	Seed uint64 `yaml:"seed,omitempty"`
}

// Sound configures the tone generator.
type Sound struct {
	Enabled    bool    `yaml:"enabled"`
	Mode       string  `yaml:"mode"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
	BufferMS   int     `yaml:"buffer_ms"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config represents the .sortviz/config.yaml file.
type Config struct {
	Visualizer Visualizer `yaml:"visualizer"`
	Sound      Sound      `yaml:"sound"`
	Log        Log        `yaml:"log"`
}
