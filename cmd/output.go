package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/schollz/progressbar/v3"
)

// outputJSON outputs data as indented JSON to stdout.
func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// StudentOutput is the JSON shape of a listed student.
type StudentOutput struct {
	RollNumber      string `json:"roll_number"`
	Name            string `json:"name"`
	SampleCount     int    `json:"sample_count"`
	TotalAttendance int    `json:"total_attendance"`
	LastAttendance  string `json:"last_attendance,omitempty"`
	RegisteredAt    string `json:"registered_at"`
}

// ReportOutput is the JSON shape of an attendance report.
type ReportOutput struct {
	Date    string             `json:"date"`
	Count   int                `json:"count"`
	Records []AttendanceOutput `json:"records"`
}

type AttendanceOutput struct {
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
	Time       string `json:"time"`
	Status     string `json:"status"`
}

func toStudentOutputs(students []database.StoredStudent) []StudentOutput {
	out := make([]StudentOutput, 0, len(students))
	for i := range students {
		st := &students[i]
		o := StudentOutput{
			RollNumber:      st.RollNumber,
			Name:            st.Name,
			SampleCount:     st.SampleCount,
			TotalAttendance: st.TotalAttendance,
			RegisteredAt:    st.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if st.LastAttendance != nil {
			o.LastAttendance = st.LastAttendance.Format("2006-01-02 15:04:05")
		}
		out = append(out, o)
	}
	return out
}

func toReportOutput(date string, records []database.AttendanceRecord) ReportOutput {
	out := ReportOutput{Date: date, Count: len(records), Records: make([]AttendanceOutput, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, AttendanceOutput{
			RollNumber: r.RollNumber,
			Name:       r.Name,
			Time:       r.Time,
			Status:     r.Status,
		})
	}
	return out
}

// printStudentTable prints registered students as a table.
func printStudentTable(students []database.StoredStudent) {
	if len(students) == 0 {
		fmt.Println("No students registered yet.")
		return
	}

	fmt.Printf("Registered students (%d):\n\n", len(students))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tNAME\tSAMPLES\tATTENDANCE\tLAST SEEN")
	fmt.Fprintln(w, "----\t----\t-------\t----------\t---------")
	for _, o := range toStudentOutputs(students) {
		last := "-"
		if o.LastAttendance != "" {
			last = o.LastAttendance
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", o.RollNumber, o.Name, o.SampleCount, o.TotalAttendance, last)
	}
	w.Flush()
}

// printReport prints the attendance for one date.
func printReport(date string, records []database.AttendanceRecord) {
	if len(records) == 0 {
		fmt.Printf("No attendance recorded for %s\n", date)
		return
	}

	fmt.Printf("Attendance for %s (%d present):\n\n", date, len(records))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tROLL\tNAME\tSTATUS")
	fmt.Fprintln(w, "----\t----\t----\t------")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Time, r.RollNumber, r.Name, r.Status)
	}
	w.Flush()
}

// printVerifyResult prints the outcome of a verification and the attendance
// write it caused.
func printVerifyResult(res *attendance.VerifyResult) {
	switch res.State {
	case capture.Accepted:
		fmt.Printf("Verified: %s (%s), confidence %.1f%%\n", res.Name, res.Roll, res.Confidence)
		switch res.Attendance {
		case attendance.MarkMarked:
			fmt.Println("Attendance marked.")
		case attendance.MarkAlreadyMarked:
			fmt.Println("Attendance already marked for today.")
		default:
			fmt.Println("Failed to mark attendance, please try again.")
		}
	case capture.Rejected:
		fmt.Printf("Verification failed: %s\n", res.Reason)
		if res.Roll != "" && res.Roll != res.ClaimedRoll {
			fmt.Printf("  Detected %s (%s) instead of %s\n", res.Name, res.Roll, res.ClaimedRoll)
		}
	case capture.Cancelled:
		fmt.Println("Verification cancelled.")
	default:
		fmt.Printf("No matching face found after %d frames.\n", res.Frames)
	}
}

// newSampleBar returns a progress bar for registration capture.
func newSampleBar(target int) *progressbar.ProgressBar {
	return progressbar.NewOptions(target,
		progressbar.OptionSetDescription("Capturing samples"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("samples"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)
}
