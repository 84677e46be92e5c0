// ABOUTME: Genie command for the hireprep CLI
// ABOUTME: One-shot questions or an interactive chat with the AI assistant

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sumitmadaan16/HirePrep/internal/config"
	"github.com/sumitmadaan16/HirePrep/internal/genie"
)

var genieResume string

var genieCmd = &cobra.Command{
	Use:   "genie [question...]",
	Short: "Chat with HireGenie, the AI placement assistant",
	Long: `Ask HireGenie about resumes, interviews, and placement preparation.

With a question on the command line the answer is printed and the command
exits; without one an interactive chat starts. Attach a PDF resume with
--resume for personalized feedback.

Requires ANTHROPIC_API_KEY.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGenie(ctx, os.Stdout, os.Stdin, strings.Join(args, " "), genieResume)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	genieCmd.Flags().StringVar(&genieResume, "resume", "", "PDF resume to attach (max 5 MB)")
	rootCmd.AddCommand(genieCmd)
}

func runGenie(ctx context.Context, w io.Writer, r io.Reader, question, resumePath string) int {
	cfg := config.Load()

	g, err := genie.New(cfg.AnthropicAPIKey, cfg.GenieModel)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if resumePath != "" {
		if err := g.AttachResume(resumePath); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "Resume %q attached.\n", g.Resume().Name)
	}

	if question != "" {
		reply, err := g.Ask(ctx, question)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, reply)
		return 0
	}

	return chatLoop(ctx, w, r, g)
}

func chatLoop(ctx context.Context, w io.Writer, r io.Reader, g *genie.Genie) int {
	fmt.Fprintln(w, genie.Greeting)
	fmt.Fprintln(w, "\nType a question, or 'exit' to quit.")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return 0
		case "clear":
			g.Clear()
			fmt.Fprintln(w, "Chat cleared! How can I help you today?")
			continue
		}

		reply, err := g.Ask(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return 0
			}
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(w, reply)
	}
	return 0
}
