package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <roll-number> <name...>",
	Short: "Register a student from camera samples",
	Long: `Capture face samples from the camera and register a new student.
The remaining arguments form the student's name.

Examples:
  face-attendance register 21CS042 Jana Novakova
  face-attendance register 21CS042 "Jana Novakova" --samples 20`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().Int("samples", 0, "Number of face samples to capture (default from recognition.yaml)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	rollNumber := args[0]
	name := strings.Join(args[1:], " ")
	samples := mustGetInt(cmd, "samples")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, config.Load(), false)
	if err != nil {
		return err
	}
	defer a.close()

	if err := registerStudent(ctx, a.svc, rollNumber, name, samples); err != nil {
		return fmt.Errorf("%s: %w", rollNumber, err)
	}
	return nil
}
