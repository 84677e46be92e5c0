// ABOUTME: Logout command for the hireprep CLI
// ABOUTME: Clears the stored session token

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the portal",
	Long:  `Remove the locally stored session token. Logging out when not logged in is not an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(w io.Writer) int {
	_, sess := gateway()
	if err := sess.Store().Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Logged out.")
	return 0
}
