// ABOUTME: Register command for the hireprep CLI
// ABOUTME: Creates a portal account and logs the new user in

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/session"
)

var registerReq client.RegisterRequest

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a portal account",
	Long:  `Register a new student or faculty account. Registration returns a session token, so a successful register also logs you in.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if registerReq.Username == "" {
			if err := promptRegister(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		if exitCode := runRegister(ctx, os.Stdout, registerReq); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerReq.Username, "username", "", "Desired username")
	registerCmd.Flags().StringVar(&registerReq.Password, "password", "", "Password")
	registerCmd.Flags().StringVar(&registerReq.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerReq.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerReq.LastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerReq.PhoneNumber, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerReq.Gender, "gender", "", "Gender")
	registerCmd.Flags().StringVar(&registerReq.Role, "role", "STUDENT", "Account role: STUDENT or FACULTY")
	rootCmd.AddCommand(registerCmd)
}

func promptRegister() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&registerReq.Username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&registerReq.Password),
			huh.NewInput().Title("Email").Value(&registerReq.Email),
			huh.NewInput().Title("First name").Value(&registerReq.FirstName),
			huh.NewInput().Title("Last name").Value(&registerReq.LastName),
			huh.NewInput().Title("Phone number").Value(&registerReq.PhoneNumber),
			huh.NewSelect[string]().Title("Gender").
				Options(huh.NewOption("Male", "MALE"), huh.NewOption("Female", "FEMALE"), huh.NewOption("Other", "OTHER")).
				Value(&registerReq.Gender),
			huh.NewSelect[string]().Title("Role").
				Options(huh.NewOption("Student", "STUDENT"), huh.NewOption("Faculty", "FACULTY")).
				Value(&registerReq.Role),
		),
	).Run()
}

func runRegister(ctx context.Context, w io.Writer, req client.RegisterRequest) int {
	req.Role = strings.ToUpper(req.Role)
	switch {
	case req.Username == "":
		fmt.Fprintln(w, "Username is required.")
		return 1
	case req.Password == "":
		fmt.Fprintln(w, "Password is required.")
		return 1
	case req.Email == "":
		fmt.Fprintln(w, "Email is required.")
		return 1
	}
	if _, ok := session.ParseRole(req.Role); !ok {
		fmt.Fprintf(w, "Invalid role %q: must be STUDENT or FACULTY.\n", req.Role)
		return 1
	}

	c, sess := gateway()
	auth, err := c.Register(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := sess.Store().Set(auth.Token); err != nil {
		fmt.Fprintf(w, "Error: saving session: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Account created. Logged in as %s (%s)\n", auth.Username, auth.Role)
	return 0
}
