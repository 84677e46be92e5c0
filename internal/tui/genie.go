// ABOUTME: HireGenie chat screen
// ABOUTME: One question in flight at a time; replies append to the transcript

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumitmadaan16/HirePrep/internal/genie"
	"github.com/sumitmadaan16/HirePrep/internal/tui/styles"
)

type genieScreen struct {
	g       *genie.Genie
	input   textinput.Model
	lines   []string
	waiting bool
	err     error
}

func newGenieScreen(g *genie.Genie) *genieScreen {
	input := textinput.New()
	input.Placeholder = "Ask about placements, interviews, resume tips…"
	input.CharLimit = 500
	return &genieScreen{
		g:     g,
		input: input,
		lines: []string{styles.Notice.Render("HireGenie: ") + genie.Greeting},
	}
}

func (s *genieScreen) focus() tea.Cmd {
	return s.input.Focus()
}

func (s *genieScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" && !s.waiting {
		question := strings.TrimSpace(s.input.Value())
		if question == "" {
			return nil
		}
		s.input.SetValue("")
		s.lines = append(s.lines, styles.KeyStyle.Render("You: ")+question)
		s.waiting = true
		s.err = nil
		return func() tea.Msg {
			reply, err := s.g.Ask(context.Background(), question)
			return genieReplyMsg{reply: reply, err: err}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *genieScreen) replied(msg genieReplyMsg) {
	s.waiting = false
	if msg.err != nil {
		s.err = msg.err
		return
	}
	s.lines = append(s.lines, styles.Notice.Render("HireGenie: ")+msg.reply)
}

func (s *genieScreen) view() string {
	var b strings.Builder
	for _, line := range s.lines {
		b.WriteString(line + "\n\n")
	}
	if s.waiting {
		b.WriteString(styles.Subtitle.Render("Thinking…") + "\n")
	}
	if s.err != nil {
		b.WriteString(styles.ErrorText.Render("Error: "+s.err.Error()) + "\n")
	}
	b.WriteString("\n" + s.input.View() + "\n")
	b.WriteString(styles.Help.Render("enter send · esc menu"))
	return b.String()
}
