// ABOUTME: Role-aware main menu for the dashboard
// ABOUTME: Students and faculty see different screen entries

package tui

import (
	"fmt"
	"strings"

	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/tui/styles"
)

type menuItem struct {
	label   string
	screen  Screen
	enabled bool
	hint    string
}

type menu struct {
	items  []menuItem
	cursor int
}

func newMenu(role session.Role, genieConfigured bool) *menu {
	var items []menuItem
	if role == session.RoleFaculty {
		items = []menuItem{
			{label: "Mark Attendance", screen: ScreenMarking, enabled: true},
			{label: "Placements", screen: ScreenPlacements, enabled: true},
		}
	} else {
		items = []menuItem{
			{label: "Attendance", screen: ScreenAttendance, enabled: true},
			{label: "Placements", screen: ScreenPlacements, enabled: true},
			{label: "HireGenie", screen: ScreenGenie, enabled: genieConfigured, hint: "set ANTHROPIC_API_KEY"},
		}
	}
	return &menu{items: items}
}

func (m *menu) up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *menu) down() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

func (m *menu) current() Screen {
	item := m.items[m.cursor]
	if !item.enabled {
		return ScreenMenu
	}
	return item.screen
}

func (m *menu) view() string {
	var b strings.Builder
	for i, item := range m.items {
		label := item.label
		if !item.enabled {
			label = fmt.Sprintf("%s (%s)", label, item.hint)
		}
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteByte('\n')
	}
	b.WriteString(styles.Help.Render("↑/↓ move · enter select · q quit"))
	return b.String()
}
