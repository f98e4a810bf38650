package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the attendance report for a day",
	Long: `Print who checked in on a given day, ordered by check-in time.

Examples:
  face-attendance report
  face-attendance report --date 2024-03-01 --json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("date", "", "Date in YYYY-MM-DD format (default today)")
	reportCmd.Flags().Bool("json", false, "Output as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	date := mustGetString(cmd, "date")
	jsonOutput := mustGetBool(cmd, "json")

	a, err := newStoreApp(config.Load())
	if err != nil {
		return err
	}
	defer a.close()

	date, records, err := a.svc.Report(ctx, date)
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}

	if jsonOutput {
		return outputJSON(toReportOutput(date, records))
	}
	printReport(date, records)
	return nil
}
