// ABOUTME: Faculty attendance-marking screen
// ABOUTME: The batch edit sheet drives every row; submit sends one request

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumitmadaan16/HirePrep/internal/tui/styles"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

type markingField int

const (
	fieldRows markingField = iota
	fieldRemark
	fieldDate
)

type markingScreen struct {
	wf         *workflow.FacultyAttendance
	loading    bool
	submitting bool
	err        error
	cursor     int
	subjectIdx int // -1 = none selected
	field      markingField
	input      textinput.Model
}

func newMarkingScreen(wf *workflow.FacultyAttendance) *markingScreen {
	input := textinput.New()
	input.CharLimit = 120
	return &markingScreen{
		wf:         wf,
		subjectIdx: -1,
		input:      input,
	}
}

func (s *markingScreen) load() tea.Cmd {
	s.loading = true
	s.err = nil
	gen := s.wf.Begin()
	return func() tea.Msg {
		data, err := s.wf.Fetch(context.Background())
		return facultyRosterMsg{gen: gen, data: data, err: err}
	}
}

func (s *markingScreen) loaded(msg facultyRosterMsg) {
	if msg.err != nil {
		s.loading = false
		s.err = msg.err
		return
	}
	if !s.wf.Apply(msg.gen, msg.data) {
		return
	}
	s.loading = false
	s.cursor = 0
	s.subjectIdx = -1
}

func (s *markingScreen) editing() bool {
	return s.field != fieldRows
}

func (s *markingScreen) date() string {
	if s.input.Value() != "" {
		return s.input.Value()
	}
	return time.Now().Format("2006-01-02")
}

func (s *markingScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.editing() {
		return s.handleEditKey(msg)
	}

	mentees := s.wf.Mentees()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(mentees)-1 {
			s.cursor++
		}
	case " ":
		if s.cursor < len(mentees) {
			s.wf.Toggle(mentees[s.cursor].Username)
		}
	case "left", "h":
		s.cycleSubject(-1)
	case "right", "l", "s":
		s.cycleSubject(1)
	case "r":
		if s.cursor < len(mentees) {
			s.field = fieldRemark
			mark, _ := s.wf.Sheet().Get(mentees[s.cursor].Username)
			s.input.SetValue(mark.Remarks)
			s.input.Placeholder = "remark"
			s.input.Focus()
		}
	case "d":
		s.field = fieldDate
		s.input.SetValue("")
		s.input.Placeholder = time.Now().Format("2006-01-02")
		s.input.Focus()
	case "enter":
		return s.submit()
	}
	return nil
}

func (s *markingScreen) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if s.field == fieldRemark {
			mentees := s.wf.Mentees()
			if s.cursor < len(mentees) {
				s.wf.SetRemarks(mentees[s.cursor].Username, s.input.Value())
			}
			s.input.SetValue("")
		}
		s.field = fieldRows
		s.input.Blur()
		return nil
	case "esc":
		if s.field == fieldRemark {
			s.input.SetValue("")
		}
		s.field = fieldRows
		s.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *markingScreen) cycleSubject(delta int) {
	subjects := s.wf.Subjects()
	if len(subjects) == 0 {
		return
	}
	if s.subjectIdx < 0 {
		s.subjectIdx = 0
		return
	}
	n := len(subjects)
	s.subjectIdx = ((s.subjectIdx+delta)%n + n) % n
}

func (s *markingScreen) subject() string {
	subjects := s.wf.Subjects()
	if s.subjectIdx < 0 || s.subjectIdx >= len(subjects) {
		return ""
	}
	return subjects[s.subjectIdx]
}

func (s *markingScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	// Stage on the program loop so the command goroutine never touches the
	// sheet; it only carries the snapshot over the wire.
	req, err := s.wf.Stage(s.subject(), s.date())
	if err != nil {
		return nil
	}
	s.submitting = true
	return func() tea.Msg {
		return attendanceMarkedMsg{req: req, err: s.wf.Send(context.Background(), req)}
	}
}

func (s *markingScreen) submitted(msg attendanceMarkedMsg) {
	s.submitting = false
	// Back on the program loop; the sheet resets or records the error here,
	// and the view reads it.
	s.wf.Finish(msg.req, msg.err)
}

func (s *markingScreen) view() string {
	if s.loading {
		return styles.Subtitle.Render("Loading mentees…")
	}
	if s.err != nil {
		return styles.ErrorText.Render("Error: "+s.err.Error()) +
			"\n" + styles.Help.Render("esc menu")
	}

	var b strings.Builder

	subject := s.subject()
	if subject == "" {
		subject = styles.Subtitle.Render("none selected")
	}
	b.WriteString(styles.KeyStyle.Render("Subject: ") + subject + "    ")
	b.WriteString(styles.KeyStyle.Render("Date: ") + s.date() + "\n\n")

	mentees := s.wf.Mentees()
	if len(mentees) == 0 {
		b.WriteString(styles.Subtitle.Render("No mentees assigned.") + "\n")
	}
	for i, m := range mentees {
		mark, _ := s.wf.Sheet().Get(m.Username)
		status := styles.Present.Render("[present]")
		if !mark.Present {
			status = styles.Absent.Render("[absent] ")
		}

		line := fmt.Sprintf("%s %-24s %s", status, m.FirstName+" "+m.LastName, m.Username)
		if mark.Remarks != "" {
			line += "  " + styles.Subtitle.Render("("+mark.Remarks+")")
		}
		if i == s.cursor {
			line = styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	switch s.field {
	case fieldRemark:
		b.WriteString("\nRemark: " + s.input.View() + "\n")
	case fieldDate:
		b.WriteString("\nDate: " + s.input.View() + "\n")
	}

	if err := s.wf.Sheet().Err(); err != nil {
		b.WriteString("\n" + styles.ErrorText.Render(err.Error()) + "\n")
	}
	if notice, ok := s.wf.Sheet().Notice(); ok {
		b.WriteString("\n" + styles.Notice.Render(notice) + "\n")
	}
	if s.submitting {
		b.WriteString("\n" + styles.Subtitle.Render("Submitting…") + "\n")
	}

	b.WriteString(styles.Help.Render("space toggle · r remark · ←/→ subject · d date · enter submit · esc menu"))
	return b.String()
}
