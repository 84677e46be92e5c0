// ABOUTME: Whoami command for the hireprep CLI
// ABOUTME: Reports the current session's user, role, and expiry

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long:  `Print the logged-in user, role, and token expiry. Exits 1 when there is no usable session.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runWhoami(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(w io.Writer) int {
	_, sess := gateway()

	user, ok := sess.CurrentUser()
	if !ok {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	token, _ := sess.Token()
	claims, _ := session.Decode(token)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user, claims))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user, claims))
	}
	return 0
}

func formatWhoamiHuman(user session.User, claims *session.Claims) string {
	expires := "unknown"
	if claims != nil && claims.ExpiresAt > 0 {
		expires = time.Unix(claims.ExpiresAt, 0).Local().Format(time.RFC1123)
	}
	return fmt.Sprintf(`Username: %s
Role:     %s
Expires:  %s`, user.Username, user.Role, expires)
}

func formatWhoamiJSON(user session.User, claims *session.Claims) string {
	output := map[string]interface{}{
		"username": user.Username,
		"role":     string(user.Role),
	}
	if claims != nil && claims.ExpiresAt > 0 {
		output["expires_at"] = time.Unix(claims.ExpiresAt, 0).UTC().Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
