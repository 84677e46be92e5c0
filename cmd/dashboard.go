// ABOUTME: Dashboard command for the hireprep CLI
// ABOUTME: Launches the interactive terminal dashboard

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/config"
	"github.com/sumitmadaan16/HirePrep/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long:  `Launch the full-screen dashboard. Students browse attendance and placements; faculty mark attendance and review postings.`,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := requireUser(os.Stdout)
		if !ok {
			os.Exit(1)
		}

		c, _ := gateway()
		if err := tui.Run(c, user, config.Load()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
