package cmd

import (
	"os"
	"os/signal"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <roll-number>",
	Short: "Verify a student at the camera and mark attendance",
	Long: `Watch the camera until the claimed student is recognized, a different
face is confidently recognized, or the frame budget runs out. Attendance is
marked once per day on a successful match.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Int("frames", 0, "Frame budget before giving up (default from recognition.yaml)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	frames := mustGetInt(cmd, "frames")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, config.Load(), false)
	if err != nil {
		return err
	}
	defer a.close()

	return verifyStudent(ctx, a.svc, args[0], frames)
}
