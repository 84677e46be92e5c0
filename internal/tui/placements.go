// ABOUTME: Placements screen for both roles
// ABOUTME: Students switch between open and applied tabs and apply from here

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/tui/styles"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

type placementsScreen struct {
	role     session.Role
	student  *workflow.StudentPlacements
	faculty  *workflow.FacultyPlacements
	loading  bool
	applying bool
	err      error
	notice   string
	cursor   int
}

func newPlacementsScreen(api *client.Client, user session.User) *placementsScreen {
	s := &placementsScreen{role: user.Role}
	if user.Role == session.RoleFaculty {
		s.faculty = workflow.NewFacultyPlacements(api, user.Username)
	} else {
		s.student = workflow.NewStudentPlacements(api, user.Username)
	}
	return s
}

func (s *placementsScreen) load() tea.Cmd {
	s.loading = true
	s.err = nil
	s.notice = ""

	if s.role == session.RoleFaculty {
		gen := s.faculty.Begin()
		return func() tea.Msg {
			list, err := s.faculty.Fetch(context.Background())
			return facultyPlacementsMsg{gen: gen, list: list, err: err}
		}
	}

	gen := s.student.Begin()
	return func() tea.Msg {
		list, err := s.student.Fetch(context.Background())
		return studentPlacementsMsg{gen: gen, list: list, err: err}
	}
}

func (s *placementsScreen) studentLoaded(msg studentPlacementsMsg) {
	if msg.err != nil {
		s.loading = false
		s.err = msg.err
		return
	}
	if !s.student.Apply(msg.gen, msg.list) {
		return
	}
	s.loading = false
	s.cursor = 0
}

func (s *placementsScreen) facultyLoaded(msg facultyPlacementsMsg) {
	if msg.err != nil {
		s.loading = false
		s.err = msg.err
		return
	}
	if !s.faculty.Apply(msg.gen, msg.list) {
		return
	}
	s.loading = false
	s.cursor = 0
}

func (s *placementsScreen) applied(msg appliedMsg) tea.Cmd {
	s.applying = false
	if msg.err != nil {
		s.err = msg.err
		return nil
	}
	// Reload through the normal Begin/Fetch/Apply pipeline so the list
	// refresh happens on the program loop, then show the notice on top.
	cmd := s.load()
	s.notice = "Application submitted!"
	s.cursor = 0
	return cmd
}

func (s *placementsScreen) count() int {
	if s.role == session.RoleFaculty {
		return len(s.faculty.List())
	}
	return len(s.student.List())
}

func (s *placementsScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.count()-1 {
			s.cursor++
		}
	case "r":
		return s.load()
	case "tab":
		if s.student != nil {
			if s.student.Tab() == workflow.TabAvailable {
				s.student.SetTab(workflow.TabApplied)
			} else {
				s.student.SetTab(workflow.TabAvailable)
			}
			return s.load()
		}
	case "a":
		return s.apply()
	}
	return nil
}

func (s *placementsScreen) apply() tea.Cmd {
	if s.student == nil || s.applying || s.student.Tab() != workflow.TabAvailable {
		return nil
	}
	list := s.student.List()
	if s.cursor >= len(list) {
		return nil
	}
	s.applying = true
	s.err = nil
	id := list[s.cursor].ID
	// RecordApplication only posts; the reload runs back on the program
	// loop once appliedMsg arrives.
	return func() tea.Msg {
		return appliedMsg{err: s.student.RecordApplication(context.Background(), id)}
	}
}

func (s *placementsScreen) view() string {
	if s.loading {
		return styles.Subtitle.Render("Loading placements…")
	}

	var b strings.Builder

	if s.student != nil {
		available, appliedTab := "Open drives", "My applications"
		if s.student.Tab() == workflow.TabApplied {
			appliedTab = styles.Selected.Render(appliedTab)
		} else {
			available = styles.Selected.Render(available)
		}
		b.WriteString(available + " · " + appliedTab + "\n\n")
	}

	if s.err != nil {
		b.WriteString(styles.ErrorText.Render("Error: "+s.err.Error()) + "\n")
	}
	if s.notice != "" {
		b.WriteString(styles.Notice.Render(s.notice) + "\n")
	}

	if s.role == session.RoleFaculty {
		s.viewFaculty(&b)
	} else {
		s.viewStudent(&b)
	}

	help := "↑/↓ move · r reload · esc menu"
	if s.student != nil {
		help = "↑/↓ move · tab switch · a apply · r reload · esc menu"
	}
	b.WriteString(styles.Help.Render(help))
	return b.String()
}

func (s *placementsScreen) viewStudent(b *strings.Builder) {
	list := s.student.List()
	if len(list) == 0 {
		b.WriteString(styles.Subtitle.Render("Nothing here yet.") + "\n")
		return
	}
	for i, p := range list {
		line := fmt.Sprintf("#%-4d %s — %s (%s)  %.1f LPA", p.ID, p.Title, p.Role, p.Type, p.Compensation)
		if s.student.Tab() == workflow.TabApplied {
			line += "  " + styles.KeyStyle.Render(p.Status)
		} else {
			line += "  apply by " + p.LastDateToApply
		}
		if i == s.cursor {
			line = styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
}

func (s *placementsScreen) viewFaculty(b *strings.Builder) {
	list := s.faculty.List()
	if len(list) == 0 {
		b.WriteString(styles.Subtitle.Render("No placements posted yet.") + "\n")
		return
	}
	for i, p := range list {
		line := fmt.Sprintf("#%-4d %s — %s (%s)  %d applications", p.ID, p.Title, p.Role, p.Type, p.TotalApplications)
		if i == s.cursor {
			line = styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
}
