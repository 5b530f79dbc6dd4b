package cmd

import (
	"github.com/KaramelBytes/drawstats-cli/internal/source"
	"github.com/spf13/cobra"
)

var statsFlags reportFlags

var statsCmd = &cobra.Command{
	Use:   "stats <file|->",
	Short: "Compute draw frequencies and a prediction from a local CSV file",
	Example: `  drawstats stats history.csv
  drawstats stats history.csv --format html -o report.html
  cat history.csv | drawstats stats - --range 49 --picks 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		text, err := source.ReadLocal(path)
		if err != nil {
			return err
		}
		return statsFlags.analyzeAndEmit(cmd, text, path)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsFlags.register(statsCmd)
}
