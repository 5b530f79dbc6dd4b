package cmd

import (
	"fmt"

	"github.com/KaramelBytes/drawstats-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	driveListJSON   bool
	driveStatsFlags reportFlags
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Work with CSV files stored in Google Drive",
	Long: `Lists and analyzes CSV files in Google Drive. Credentials come from the
drive_access_token (OAuth bearer token) or drive_api_key config keys, or the
DRAWSTATS_DRIVE_ACCESS_TOKEN / DRAWSTATS_DRIVE_API_KEY environment variables.`,
}

var driveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List CSV files visible in Google Drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := newDriveClient().ListCSV(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if driveListJSON {
			b, err := utils.PrettyJSON(files)
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(out, "(no CSV files found)")
			return nil
		}
		for _, f := range files {
			fmt.Fprintf(out, "- %s: %s\n", f.ID, f.Name)
		}
		return nil
	},
}

var driveStatsCmd = &cobra.Command{
	Use:   "stats <file-id>",
	Short: "Download a CSV file from Google Drive and analyze it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		text, err := newDriveClient().Download(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("download %s: %w", id, err)
		}
		return driveStatsFlags.analyzeAndEmit(cmd, text, "drive:"+id)
	},
}

func init() {
	rootCmd.AddCommand(driveCmd)
	driveCmd.AddCommand(driveListCmd)
	driveCmd.AddCommand(driveStatsCmd)
	driveListCmd.Flags().BoolVar(&driveListJSON, "json", false, "print the listing as JSON")
	driveStatsFlags.register(driveStatsCmd)
}
