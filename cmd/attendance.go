// ABOUTME: Attendance commands for the hireprep CLI
// ABOUTME: Students view records and stats; faculty mark mentees in batch

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/editor"
	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

var (
	attendanceSubject string
	markSubject       string
	markDate          string
	markAbsent        []string
	markRemarks       []string
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "View or mark attendance",
}

var attendanceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your attendance records and stats",
	Long:  `Display your attendance records, newest first, with the overall summary. Use --subject to narrow to one subject.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAttendanceShow(ctx, os.Stdout, attendanceSubject); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var attendanceMarkCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark attendance for your mentees",
	Long: `Submit one attendance batch for all of your mentees. Everyone is present
unless named with --absent; --remark attaches a note as username=text.

Example:
  hireprep attendance mark --subject "Data Structures" --date 2026-08-28 \
    --absent alex.j --remark alex.j="medical leave"`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runAttendanceMark(ctx, os.Stdout, markSubject, markDate, markAbsent, markRemarks); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	attendanceShowCmd.Flags().StringVar(&attendanceSubject, "subject", "", "Only show records for this subject")
	attendanceMarkCmd.Flags().StringVar(&markSubject, "subject", "", "Subject of the class")
	attendanceMarkCmd.Flags().StringVar(&markDate, "date", time.Now().Format("2006-01-02"), "Class date (YYYY-MM-DD)")
	attendanceMarkCmd.Flags().StringArrayVar(&markAbsent, "absent", nil, "Username to mark absent (repeatable)")
	attendanceMarkCmd.Flags().StringArrayVar(&markRemarks, "remark", nil, "Remark as username=text (repeatable)")
	attendanceCmd.AddCommand(attendanceShowCmd)
	attendanceCmd.AddCommand(attendanceMarkCmd)
	rootCmd.AddCommand(attendanceCmd)
}

func runAttendanceShow(ctx context.Context, w io.Writer, subject string) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}
	if user.Role != session.RoleStudent {
		fmt.Fprintln(w, "Attendance records are a student view. Faculty mark attendance with 'hireprep attendance mark'.")
		return 1
	}

	c, _ := gateway()
	view := workflow.NewStudentAttendance(c, user.Username)
	if err := view.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	view.Filter(subject)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatAttendanceJSON(view.Records(), view.Stats()))
	} else {
		fmt.Fprintln(w, formatAttendanceHuman(view.Records(), view.Stats(), subject))
	}
	return 0
}

func formatAttendanceHuman(records []client.AttendanceRecord, stats *client.AttendanceStats, subject string) string {
	var b strings.Builder

	if stats != nil {
		fmt.Fprintf(&b, "Attendance: %.1f%%  (attended %d, missed %d)\n\n",
			stats.AttendancePercentage, stats.ClassesAttended, stats.ClassesMissed)
	}

	if len(records) == 0 {
		if subject != "" {
			fmt.Fprintf(&b, "No records for %s.", subject)
		} else {
			b.WriteString("No attendance records yet.")
		}
		return b.String()
	}

	for _, r := range records {
		status := "present"
		if !r.Present {
			status = "ABSENT"
		}
		fmt.Fprintf(&b, "%s  %-24s %-8s %s", r.Date, r.Subject, status, r.FacultyName)
		if r.Remarks != "" {
			fmt.Fprintf(&b, "  (%s)", r.Remarks)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatAttendanceJSON(records []client.AttendanceRecord, stats *client.AttendanceStats) string {
	output := map[string]interface{}{
		"records": records,
		"stats":   stats,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

func runAttendanceMark(ctx context.Context, w io.Writer, subject, date string, absent, remarks []string) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}
	if user.Role != session.RoleFaculty {
		fmt.Fprintln(w, "Only faculty can mark attendance.")
		return 1
	}

	remarkByUser, err := parseRemarks(remarks)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	c, _ := gateway()
	sheet := workflow.NewFacultyAttendance(c, user.Username, 0)
	if err := sheet.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if len(sheet.Mentees()) == 0 {
		fmt.Fprintln(w, "You have no mentees assigned.")
		return 1
	}

	known := make(map[string]bool, len(sheet.Mentees()))
	for _, m := range sheet.Mentees() {
		known[m.Username] = true
	}
	for _, username := range absent {
		if !known[username] {
			fmt.Fprintf(w, "Error: %q is not one of your mentees\n", username)
			return 1
		}
		sheet.SetPresent(username, false)
	}
	for username, remark := range remarkByUser {
		if !known[username] {
			fmt.Fprintf(w, "Error: %q is not one of your mentees\n", username)
			return 1
		}
		sheet.SetRemarks(username, remark)
	}

	if err := sheet.Submit(ctx, subject, date); err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(w, verr.Msg)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Attendance marked for %d mentees: %s on %s\n", len(sheet.Mentees()), subject, date)
	return 0
}

// parseRemarks splits repeated username=text flags.
func parseRemarks(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		username, text, found := strings.Cut(entry, "=")
		if !found || username == "" {
			return nil, fmt.Errorf("invalid --remark %q: expected username=text", entry)
		}
		out[username] = text
	}
	return out, nil
}
