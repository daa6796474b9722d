package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/sortviz/internal/config"
	"github.com/thruflo/sortviz/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "sortviz",
	Short: "Audiovisual sorting algorithm visualizer for the terminal",
	Long: `sortviz shuffles an array of distinct values, draws it as a bar chart and
steps a sorting algorithm over it at a speed you control, playing a tone
that follows the element being touched.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("sortviz version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding "+config.Dir+"/config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// setupLogging applies --log-level to the default logger. The config file
// level is applied later by commands that load it.
func setupLogging(cmd *cobra.Command, args []string) error {
	if logLevel == "" {
		return nil
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logging.SetLevel(level)
	return nil
}

// loadConfig reads the config under --config-dir and applies its log level
// unless --log-level was given.
func loadConfig() (*config.Config, error) {
	return loadConfigFrom(configDir, nil)
}

// loadConfigFrom reads the config under basePath, lets override adjust it,
// then validates the result and applies its log level.
func loadConfigFrom(basePath string, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.ReadConfig(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if logLevel == "" {
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		logging.SetLevel(level)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
