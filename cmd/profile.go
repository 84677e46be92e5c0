// ABOUTME: Profile commands for the hireprep CLI
// ABOUTME: Shows the loaded profile and applies flag-driven field edits

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/config"
	"github.com/sumitmadaan16/HirePrep/internal/editor"
	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

var profileEdits = map[string]*string{}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runProfileShow(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Only the flags you pass change;
everything else keeps its current value. Student-only fields are ignored for
faculty and vice versa.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		changed := map[string]string{}
		for name, value := range profileEdits {
			if cmd.Flags().Changed(name) {
				changed[name] = *value
			}
		}

		if exitCode := runProfileEdit(ctx, os.Stdout, changed); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func editFlag(name, usage string) {
	value := new(string)
	profileEdits[name] = value
	profileEditCmd.Flags().StringVar(value, name, "", usage)
}

func init() {
	editFlag("email", "Email address")
	editFlag("first-name", "First name")
	editFlag("last-name", "Last name")
	editFlag("phone", "Phone number")
	editFlag("gender", "Gender")
	editFlag("experience", "Work experience summary (students)")
	editFlag("disabilities", "Disabilities, if any (students)")
	editFlag("resume-path", "Resume path on the portal (students)")
	editFlag("mentor", "Mentor's faculty username (students)")
	editFlag("department", "Department (faculty)")
	editFlag("employee-id", "Employee ID (faculty)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(ctx context.Context, w io.Writer) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}

	view, exitCode := loadProfile(ctx, w, user)
	if exitCode != 0 {
		return exitCode
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, marshalJSON(view.Current()))
	} else {
		fmt.Fprintln(w, formatProfileHuman(view.Current(), view.Stats()))
	}
	return 0
}

func loadProfile(ctx context.Context, w io.Writer, user session.User) (*workflow.Profile, int) {
	c, _ := gateway()
	view := workflow.NewProfile(c, user, config.Load().NoticeTTL)
	if err := view.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, 2
	}
	return view, 0
}

func formatProfileHuman(p *client.Profile, stats *client.AttendanceStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n", p.FirstName, p.LastName, p.Username)
	fmt.Fprintf(&b, "Role:       %s\n", p.Role)
	fmt.Fprintf(&b, "Email:      %s\n", p.Email)
	if p.PhoneNumber != "" {
		fmt.Fprintf(&b, "Phone:      %s\n", p.PhoneNumber)
	}
	if p.Department != "" {
		fmt.Fprintf(&b, "Department: %s\n", p.Department)
	}
	if p.EmployeeID != "" {
		fmt.Fprintf(&b, "Employee:   %s\n", p.EmployeeID)
	}
	if p.Mentor != nil {
		fmt.Fprintf(&b, "Mentor:     %s %s (%s)\n", p.Mentor.FirstName, p.Mentor.LastName, p.Mentor.Username)
	}
	if p.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", p.Experience)
	}
	if stats != nil {
		fmt.Fprintf(&b, "Attendance: %.1f%%\n", stats.AttendancePercentage)
	}
	for _, e := range p.Education {
		fmt.Fprintf(&b, "Education:  %s, %s (%d)\n", e.Level, e.SchoolName, e.CompletionYear)
	}
	return strings.TrimRight(b.String(), "\n")
}

func runProfileEdit(ctx context.Context, w io.Writer, changed map[string]string) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}
	if len(changed) == 0 {
		fmt.Fprintln(w, "Nothing to update. Pass at least one field flag, e.g. --phone.")
		return 1
	}

	view, exitCode := loadProfile(ctx, w, user)
	if exitCode != 0 {
		return exitCode
	}

	view.Edit(func(p *client.Profile) { applyProfileEdits(p, changed) })

	if err := view.Save(ctx); err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(w, verr.Msg)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Profile updated.")
	return 0
}

func applyProfileEdits(p *client.Profile, changed map[string]string) {
	for name, value := range changed {
		switch name {
		case "email":
			p.Email = value
		case "first-name":
			p.FirstName = value
		case "last-name":
			p.LastName = value
		case "phone":
			p.PhoneNumber = value
		case "gender":
			p.Gender = value
		case "experience":
			p.Experience = value
		case "disabilities":
			p.Disabilities = value
		case "resume-path":
			p.ResumePath = value
		case "mentor":
			p.Mentor = &client.ProfileSummary{Username: value}
		case "department":
			p.Department = value
		case "employee-id":
			p.EmployeeID = value
		}
	}
}
