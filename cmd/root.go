// ABOUTME: Root command for the hireprep CLI
// ABOUTME: Handles global flags and shared session/gateway wiring

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/config"
	"github.com/sumitmadaan16/HirePrep/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "hireprep",
	Short: "CLI for the HirePrep placement portal",
	Long: `hireprep is a command-line interface for the HirePrep placement portal.

Students track attendance, browse placements, and chat with the HireGenie
assistant; faculty mark attendance and post placement drives.

Environment Variables:
  HIREPREP_API_URL     Portal gateway URL (default: http://localhost:8080)
  HIREPREP_CONFIG_DIR  Session credential directory
  ANTHROPIC_API_KEY    API key for the genie command`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Portal gateway URL (overrides HIREPREP_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Session credential directory (overrides HIREPREP_CONFIG_DIR)")
}

// GetAPIURL returns the gateway URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("HIREPREP_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func getConfigDir() string {
	if configDir != "" {
		return configDir
	}
	if envDir := os.Getenv("HIREPREP_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	return config.DefaultConfigDir()
}

// gateway wires the token store, session oracle, and request gateway the
// same way for every command. A 401 clears the stored credential, so the
// hook tells the user why the next command will ask them to log in.
func gateway() (*client.Client, *session.Session) {
	store := session.NewStore(getConfigDir())
	c := client.New(GetAPIURL(), store)
	c.OnUnauthorized = func() {
		fmt.Fprintln(os.Stderr, "Session expired. Run 'hireprep login' to sign in again.")
	}
	return c, session.New(store)
}

// requireUser resolves the current user or prints a re-login instruction.
// Commands call this before issuing requests that would only come back 401.
func requireUser(w io.Writer) (session.User, bool) {
	_, sess := gateway()
	user, ok := sess.CurrentUser()
	if !ok {
		fmt.Fprintln(w, "Not logged in or session expired. Run 'hireprep login' first.")
	}
	return user, ok
}
