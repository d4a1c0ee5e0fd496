package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/sentiment-cli/internal/kaggle"
)

var kaggleCmd = &cobra.Command{
	Use:   "kaggle",
	Short: "Write reference Kaggle submission files from a labeled TSV",
}

var kaggleBasicCmd = &cobra.Command{
	Use:   "basic <labeled.tsv> <out.csv>",
	Short: "Write the all-" + kaggle.BaselineLabel + " baseline for every record",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := kaggle.WriteBasic(args[0], args[1]); err != nil {
			return err
		}
		printOK("basic", fmt.Sprintf("wrote %s", args[1]))
		return nil
	},
}

var kaggleGoldCmd = &cobra.Command{
	Use:   "gold <labeled.tsv> <out.csv>",
	Short: "Write the true labels of every record",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := kaggle.WriteGold(args[0], args[1]); err != nil {
			return err
		}
		printOK("gold", fmt.Sprintf("wrote %s", args[1]))
		return nil
	},
}

func init() {
	kaggleCmd.AddCommand(kaggleBasicCmd, kaggleGoldCmd)
	rootCmd.AddCommand(kaggleCmd)
}
