package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/sentiment-cli/internal/config"
	"github.com/kamusis/sentiment-cli/internal/logging"
)

var (
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:          "sentiment",
	Short:        "Sentiment CLI — train and evaluate a review sentiment classifier",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Sentiment reads a .tar.gz archive of labeled reviews (train.tsv, dev.tsv,
unlabeled.tsv), trains a logistic regression on bag-of-words or TF-IDF
features and writes Kaggle-format prediction files.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./"+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Also write JSON logs to this rotating file")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config, or the default file when it exists.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig, false)
	}
	return config.Load(config.DefaultPath, true)
}

// newLogger builds the diagnostic logger, flags taking precedence over cfg.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if flagLogLevel != "" {
		opts.Level = flagLogLevel
	}
	if flagLogFile != "" {
		opts.File = flagLogFile
	}
	return logging.New(opts)
}
