package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/sentiment-cli/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the sentiment.yaml config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		path := flagConfig
		if path == "" {
			path = config.DefaultPath
		}
		return writeDefaultConfig(path, flagConfigForce)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		printSkip("config", fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		return nil
	}
	if err := config.Save(config.DefaultConfig(), path); err != nil {
		return err
	}
	printOK("config", fmt.Sprintf("wrote %s", path))
	return nil
}
