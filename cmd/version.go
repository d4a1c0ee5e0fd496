package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kamusis/sentiment-cli/internal/vectorize"
)

// Set with -ldflags at release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sentiment version and build information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	fmt.Printf("Version:     %s\n", version)
	fmt.Printf("Commit:      %s\n", orNA(commit))
	fmt.Printf("Build Date:  %s\n", orNA(buildDate))
	fmt.Printf("Go Version:  %s\n", runtime.Version())
	fmt.Printf("OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("Vectorizers: %s, %s\n", vectorize.BagOfWords, vectorize.TFIDF)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
