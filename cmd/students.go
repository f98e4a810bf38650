package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var studentsCmd = &cobra.Command{
	Use:   "students [query]",
	Short: "List registered students",
	Long: `List registered students. An optional query filters by name
(accent and case insensitive) or roll number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudents,
}

func init() {
	rootCmd.AddCommand(studentsCmd)

	studentsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runStudents(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jsonOutput := mustGetBool(cmd, "json")

	var query string
	if len(args) == 1 {
		query = args[0]
	}

	a, err := newStoreApp(config.Load())
	if err != nil {
		return err
	}
	defer a.close()

	students, err := a.svc.Students(ctx, query)
	if err != nil {
		return fmt.Errorf("listing students: %w", err)
	}

	if jsonOutput {
		return outputJSON(toStudentOutputs(students))
	}
	printStudentTable(students)
	return nil
}
