// ABOUTME: Login command for the hireprep CLI
// ABOUTME: Exchanges credentials for a session token and stores it

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/client"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the portal",
	Long:  `Authenticate against the HirePrep portal and store the session token locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if loginUsername == "" || loginPassword == "" {
			if err := promptLogin(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		exitCode := runLogin(ctx, os.Stdout, loginUsername, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Portal username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Portal password")
	rootCmd.AddCommand(loginCmd)
}

func promptLogin() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&loginUsername),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&loginPassword),
		),
	).Run()
}

// runLogin authenticates and persists the token, returning an exit code
func runLogin(ctx context.Context, w io.Writer, username, password string) int {
	if username == "" || password == "" {
		fmt.Fprintln(w, "Username and password are required.")
		return 1
	}

	c, sess := gateway()
	auth, err := c.Login(ctx, client.LoginRequest{Username: username, Password: password})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := sess.Store().Set(auth.Token); err != nil {
		fmt.Fprintf(w, "Error: saving session: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Logged in as %s %s (%s)\n", auth.FirstName, auth.LastName, auth.Role)
	return 0
}
