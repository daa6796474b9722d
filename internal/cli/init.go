package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thruflo/sortviz/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.Dir + "/config.yaml",
	Long: `Creates the ` + config.Dir + `/ directory with a config.yaml holding the default
visualizer, sound and log settings. Edit it to change what "sortviz run" starts with.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := initConfig(configDir, initForce)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("wrote"), path)
	return nil
}

// initConfig writes the default config under basePath and returns its path.
// An existing file is kept unless force is set.
func initConfig(basePath string, force bool) (string, error) {
	path := config.Path(basePath)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if err := config.WriteConfig(basePath, &cfg); err != nil {
		return "", err
	}
	return path, nil
}
