// ABOUTME: Placement commands for the hireprep CLI
// ABOUTME: Students browse and apply; faculty post new drives

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/editor"
	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

var (
	placementsApplied bool
	placementInput    client.PlacementInput
)

var placementsCmd = &cobra.Command{
	Use:   "placements",
	Short: "Browse, apply to, or post placement drives",
}

var placementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List placement drives",
	Long:  `Students see open drives they have not applied to, or their applications with --applied. Faculty see every posted drive.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPlacementsList(ctx, os.Stdout, placementsApplied); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var placementsApplyCmd = &cobra.Command{
	Use:   "apply <placement-id>",
	Short: "Apply to a placement drive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPlacementsApply(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var placementsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new placement drive",
	Long: `Post a placement drive for students to apply to. All fields except --bond
are required; --type must be INTERNSHIP or FULLTIME.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPlacementsCreate(ctx, os.Stdout, placementInput); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	placementsListCmd.Flags().BoolVar(&placementsApplied, "applied", false, "Show your applications instead of open drives")

	placementsCreateCmd.Flags().StringVar(&placementInput.Title, "title", "", "Company or drive title")
	placementsCreateCmd.Flags().StringVar(&placementInput.Role, "role", "", "Job role offered")
	placementsCreateCmd.Flags().StringVar(&placementInput.Experience, "experience", "", "Experience expectations")
	placementsCreateCmd.Flags().StringVar(&placementInput.Description, "description", "", "Drive description")
	placementsCreateCmd.Flags().StringVar(&placementInput.Type, "type", "", "INTERNSHIP or FULLTIME")
	placementsCreateCmd.Flags().StringVar(&placementInput.DateOfDrive, "date-of-drive", "", "Drive date (YYYY-MM-DD)")
	placementsCreateCmd.Flags().StringVar(&placementInput.LastDateToApply, "last-date", "", "Application deadline (YYYY-MM-DD)")
	placementsCreateCmd.Flags().Float64Var(&placementInput.Compensation, "compensation", 0, "Compensation in LPA")
	placementsCreateCmd.Flags().StringVar(&placementInput.Bond, "bond", "", "Bond terms, if any")

	placementsCmd.AddCommand(placementsListCmd)
	placementsCmd.AddCommand(placementsApplyCmd)
	placementsCmd.AddCommand(placementsCreateCmd)
	rootCmd.AddCommand(placementsCmd)
}

func runPlacementsList(ctx context.Context, w io.Writer, applied bool) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}

	c, _ := gateway()

	if user.Role == session.RoleFaculty {
		view := workflow.NewFacultyPlacements(c, user.Username)
		if err := view.Load(ctx); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, marshalJSON(view.List()))
		} else {
			fmt.Fprintln(w, formatFacultyPlacementsHuman(view.List()))
		}
		return 0
	}

	view := workflow.NewStudentPlacements(c, user.Username)
	if applied {
		view.SetTab(workflow.TabApplied)
	}
	if err := view.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, marshalJSON(view.List()))
	} else {
		fmt.Fprintln(w, formatStudentPlacementsHuman(view.List(), applied))
	}
	return 0
}

func formatStudentPlacementsHuman(list []workflow.PlacementView, applied bool) string {
	if len(list) == 0 {
		if applied {
			return "You have not applied to any placements yet."
		}
		return "No open placements right now."
	}

	var b strings.Builder
	for _, p := range list {
		fmt.Fprintf(&b, "#%-4d %s — %s (%s)\n", p.ID, p.Title, p.Role, p.Type)
		fmt.Fprintf(&b, "      Drive: %s  Apply by: %s  %.1f LPA\n", p.DateOfDrive, p.LastDateToApply, p.Compensation)
		if applied {
			fmt.Fprintf(&b, "      Status: %s  Applied: %s\n", p.Status, p.AppliedAt)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatFacultyPlacementsHuman(list []client.Placement) string {
	if len(list) == 0 {
		return "No placements posted yet."
	}

	var b strings.Builder
	for _, p := range list {
		fmt.Fprintf(&b, "#%-4d %s — %s (%s)\n", p.ID, p.Title, p.Role, p.Type)
		fmt.Fprintf(&b, "      Drive: %s  Apply by: %s  Applications: %d  Posted by: %s\n",
			p.DateOfDrive, p.LastDateToApply, p.TotalApplications, p.PostedByUsername)
	}
	return strings.TrimRight(b.String(), "\n")
}

func marshalJSON(v interface{}) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

func runPlacementsApply(ctx context.Context, w io.Writer, rawID string) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}
	if user.Role != session.RoleStudent {
		fmt.Fprintln(w, "Only students can apply to placements.")
		return 1
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Invalid placement id %q.\n", rawID)
		return 1
	}

	c, _ := gateway()
	view := workflow.NewStudentPlacements(c, user.Username)
	if err := view.ApplyTo(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Applied to placement #%d.\n", id)
	return 0
}

func runPlacementsCreate(ctx context.Context, w io.Writer, input client.PlacementInput) int {
	user, ok := requireUser(w)
	if !ok {
		return 1
	}
	if user.Role != session.RoleFaculty {
		fmt.Fprintln(w, "Only faculty can post placements.")
		return 1
	}

	c, _ := gateway()
	view := workflow.NewFacultyPlacements(c, user.Username)
	if err := view.Create(ctx, input); err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(w, verr.Msg)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Placement %q posted.\n", input.Title)
	return 0
}
