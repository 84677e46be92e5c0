// ABOUTME: Student attendance screen with stats header and subject filter
// ABOUTME: Records load asynchronously and render newest first

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumitmadaan16/HirePrep/internal/tui/styles"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

type attendanceScreen struct {
	wf        *workflow.StudentAttendance
	loading   bool
	err       error
	filterIdx int // 0 = all subjects, otherwise index+1 into Subjects()
}

func newAttendanceScreen(wf *workflow.StudentAttendance) *attendanceScreen {
	return &attendanceScreen{wf: wf}
}

func (s *attendanceScreen) load() tea.Cmd {
	s.loading = true
	s.err = nil
	gen := s.wf.Begin()
	return func() tea.Msg {
		data, err := s.wf.Fetch(context.Background())
		return studentAttendanceMsg{gen: gen, data: data, err: err}
	}
}

func (s *attendanceScreen) loaded(msg studentAttendanceMsg) {
	if msg.err != nil {
		s.loading = false
		s.err = msg.err
		return
	}
	if !s.wf.Apply(msg.gen, msg.data) {
		return
	}
	s.loading = false
	s.filterIdx = 0
}

func (s *attendanceScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		return s.load()
	case "left", "h":
		s.cycleFilter(-1)
	case "right", "l", "f":
		s.cycleFilter(1)
	}
	return nil
}

func (s *attendanceScreen) cycleFilter(delta int) {
	subjects := s.wf.Subjects()
	n := len(subjects) + 1
	s.filterIdx = ((s.filterIdx+delta)%n + n) % n
	if s.filterIdx == 0 {
		s.wf.Filter("")
	} else {
		s.wf.Filter(subjects[s.filterIdx-1])
	}
}

func (s *attendanceScreen) view() string {
	if s.loading {
		return styles.Subtitle.Render("Loading attendance…")
	}
	if s.err != nil {
		return styles.ErrorText.Render("Error: "+s.err.Error()) +
			"\n" + styles.Help.Render("r retry · esc menu")
	}

	var b strings.Builder

	if stats := s.wf.Stats(); stats != nil {
		summary := fmt.Sprintf("%s %s  attended %d · missed %d",
			styles.PercentBar(stats.AttendancePercentage, 20),
			styles.ValueStyle.Render(fmt.Sprintf("%.1f%%", stats.AttendancePercentage)),
			stats.ClassesAttended, stats.ClassesMissed)
		b.WriteString(styles.Panel.Render(summary) + "\n\n")
	}

	filter := "All subjects"
	if s.filterIdx > 0 {
		filter = s.wf.Subjects()[s.filterIdx-1]
	}
	b.WriteString(styles.KeyStyle.Render("Subject: ") + filter + "\n\n")

	records := s.wf.Records()
	if len(records) == 0 {
		b.WriteString(styles.Subtitle.Render("No attendance records."))
	}
	for _, r := range records {
		status := styles.Present.Render("present")
		if !r.Present {
			status = styles.Absent.Render("ABSENT ")
		}
		b.WriteString(fmt.Sprintf("%s  %-24s %s  %s", r.Date, r.Subject, status, r.FacultyName))
		if r.Remarks != "" {
			b.WriteString("  " + styles.Subtitle.Render("("+r.Remarks+")"))
		}
		b.WriteByte('\n')
	}

	b.WriteString(styles.Help.Render("←/→ filter subject · r reload · esc menu"))
	return b.String()
}
