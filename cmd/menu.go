package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive attendance menu",
	Long: `Run the station menu: register students, mark attendance at the camera,
list students and print daily reports. Ctrl+C cancels the running camera
session and returns to the menu.`,
	Args: cobra.NoArgs,
	RunE: runMenuCmd,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// menuActions are the operations behind the menu entries.
type menuActions struct {
	register func(ctx context.Context, rollNumber, name string) error
	verify   func(ctx context.Context, rollNumber string) error
	students func(ctx context.Context) error
	report   func(ctx context.Context, date string) error
}

func serviceMenuActions(svc *attendance.Service) menuActions {
	return menuActions{
		register: func(ctx context.Context, rollNumber, name string) error {
			return registerStudent(ctx, svc, rollNumber, name, 0)
		},
		verify: func(ctx context.Context, rollNumber string) error {
			return verifyStudent(ctx, svc, rollNumber, 0)
		},
		students: func(ctx context.Context) error {
			students, err := svc.Students(ctx, "")
			if err != nil {
				return err
			}
			printStudentTable(students)
			return nil
		},
		report: func(ctx context.Context, date string) error {
			date, records, err := svc.Report(ctx, date)
			if err != nil {
				return err
			}
			printReport(date, records)
			return nil
		},
	}
}

func runMenuCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), config.Load(), false)
	if err != nil {
		return err
	}
	defer a.close()

	return runMenu(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), serviceMenuActions(a.svc))
}

const menuText = `
==== Face Attendance ====
1. Register new student
2. Mark attendance
3. List students
4. Today's report
5. Report for date
6. Exit
`

// runMenu reads choices from in until the user exits or input ends.
// Action failures are printed and the loop continues.
func runMenu(ctx context.Context, in io.Reader, out io.Writer, actions menuActions) error {
	scanner := bufio.NewScanner(in)
	prompt := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		fmt.Fprint(out, menuText)
		choice, ok := prompt("Choose an option: ")
		if !ok {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		var err error
		switch choice {
		case "1":
			roll, ok1 := prompt("Roll number: ")
			name, ok2 := prompt("Name: ")
			if !ok1 || !ok2 {
				return scanner.Err()
			}
			err = runSession(ctx, func(ctx context.Context) error {
				return actions.register(ctx, roll, name)
			})
		case "2":
			roll, ok := prompt("Roll number: ")
			if !ok {
				return scanner.Err()
			}
			err = runSession(ctx, func(ctx context.Context) error {
				return actions.verify(ctx, roll)
			})
		case "3":
			err = actions.students(ctx)
		case "4":
			err = actions.report(ctx, "")
		case "5":
			date, ok := prompt("Date (YYYY-MM-DD): ")
			if !ok {
				return scanner.Err()
			}
			err = actions.report(ctx, date)
		case "6", "q", "exit":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(out, "Unknown option %q\n", choice)
			continue
		}

		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", menuError(err))
		}
	}
}

// runSession runs a camera session that Ctrl+C cancels without leaving the menu.
func runSession(parent context.Context, fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	return fn(ctx)
}

// menuError turns service errors into short messages for the station operator.
func menuError(err error) error {
	if errors.Is(err, attendance.ErrInvalidDate) {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	return err
}
