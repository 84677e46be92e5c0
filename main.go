// ABOUTME: Entry point for the hireprep CLI
// ABOUTME: Command-line client for the HirePrep placement portal

package main

import (
	"fmt"
	"os"

	"github.com/sumitmadaan16/HirePrep/cmd"
	"github.com/sumitmadaan16/HirePrep/internal/logger"
)

func main() {
	logger.Init()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
