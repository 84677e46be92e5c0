// ABOUTME: Root bubbletea model for the dashboard
// ABOUTME: Manages screen state and routes keyboard input to child screens

package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/config"
	"github.com/sumitmadaan16/HirePrep/internal/genie"
	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/tui/styles"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

// Screen represents the current dashboard screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenAttendance
	ScreenMarking
	ScreenPlacements
	ScreenGenie
)

// studentAttendanceMsg is sent when a student's records and stats load
type studentAttendanceMsg struct {
	gen  uint64
	data *workflow.StudentData
	err  error
}

// facultyRosterMsg is sent when the mentee roster and subject list load
type facultyRosterMsg struct {
	gen  uint64
	data *workflow.FacultyData
	err  error
}

// studentPlacementsMsg is sent when a student's placement tab loads
type studentPlacementsMsg struct {
	gen  uint64
	list []workflow.PlacementView
	err  error
}

// facultyPlacementsMsg is sent when the full placement list loads
type facultyPlacementsMsg struct {
	gen  uint64
	list []client.Placement
	err  error
}

// attendanceMarkedMsg is sent when a batch submission finishes. It carries
// the staged request back so the sheet outcome is installed on the program
// loop, never on the command goroutine.
type attendanceMarkedMsg struct {
	req client.MarkAttendanceRequest
	err error
}

// appliedMsg is sent when a placement application finishes
type appliedMsg struct {
	err error
}

// genieReplyMsg is sent when the assistant answers
type genieReplyMsg struct {
	reply string
	err   error
}

// tickMsg drives notice expiry redraws
type tickMsg time.Time

// App is the root model for the dashboard
type App struct {
	api    *client.Client
	user   session.User
	cfg    *config.Config
	screen Screen
	width  int
	height int
	err    error

	// Child screens
	menu       *menu
	attendance *attendanceScreen
	marking    *markingScreen
	placements *placementsScreen
	chat       *genieScreen
}

// New creates the dashboard application for the given user.
func New(api *client.Client, user session.User, cfg *config.Config) *App {
	return &App{
		api:    api,
		user:   user,
		cfg:    cfg,
		screen: ScreenMenu,
		menu:   newMenu(user.Role, cfg.AnthropicAPIKey != ""),
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(api *client.Client, user session.User, cfg *config.Config) error {
	p := tea.NewProgram(New(api, user, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		return a, tick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case studentAttendanceMsg:
		if a.attendance != nil {
			a.attendance.loaded(msg)
		}
		return a.checkSession(msg.err)

	case facultyRosterMsg:
		if a.marking != nil {
			a.marking.loaded(msg)
		}
		return a.checkSession(msg.err)

	case studentPlacementsMsg:
		if a.placements != nil {
			a.placements.studentLoaded(msg)
		}
		return a.checkSession(msg.err)

	case facultyPlacementsMsg:
		if a.placements != nil {
			a.placements.facultyLoaded(msg)
		}
		return a.checkSession(msg.err)

	case attendanceMarkedMsg:
		if a.marking != nil {
			a.marking.submitted(msg)
		}
		return a.checkSession(msg.err)

	case appliedMsg:
		if a.placements != nil {
			if cmd := a.placements.applied(msg); cmd != nil {
				return a, cmd
			}
		}
		return a.checkSession(msg.err)

	case genieReplyMsg:
		if a.chat != nil {
			a.chat.replied(msg)
		}
		return a, nil
	}

	return a, nil
}

// checkSession quits the dashboard when the portal rejects the token. The
// gateway has already cleared the stored credential by then.
func (a *App) checkSession(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, client.ErrUnauthorized) {
		a.err = fmt.Errorf("session expired, run 'hireprep login'")
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// esc returns to the menu from any child screen
	if msg.String() == "esc" && a.screen != ScreenMenu {
		if a.screen == ScreenMarking && a.marking != nil && a.marking.editing() {
			return a, a.marking.handleKey(msg)
		}
		if a.screen == ScreenGenie && a.chat != nil && a.chat.waiting {
			return a, nil
		}
		a.screen = ScreenMenu
		return a, nil
	}

	switch a.screen {
	case ScreenMenu:
		return a.updateMenu(msg)
	case ScreenAttendance:
		if a.attendance != nil {
			return a, a.attendance.handleKey(msg)
		}
	case ScreenMarking:
		if a.marking != nil {
			return a, a.marking.handleKey(msg)
		}
	case ScreenPlacements:
		if a.placements != nil {
			return a, a.placements.handleKey(msg)
		}
	case ScreenGenie:
		if a.chat != nil {
			return a, a.chat.handleKey(msg)
		}
	}
	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.menu.up()
	case "down", "j":
		a.menu.down()
	case "enter":
		return a.openScreen(a.menu.current())
	}
	return a, nil
}

func (a *App) openScreen(screen Screen) (tea.Model, tea.Cmd) {
	a.screen = screen
	switch screen {
	case ScreenAttendance:
		if a.attendance == nil {
			a.attendance = newAttendanceScreen(workflow.NewStudentAttendance(a.api, a.user.Username))
		}
		return a, a.attendance.load()
	case ScreenMarking:
		if a.marking == nil {
			a.marking = newMarkingScreen(workflow.NewFacultyAttendance(a.api, a.user.Username, a.cfg.NoticeTTL))
		}
		return a, a.marking.load()
	case ScreenPlacements:
		if a.placements == nil {
			a.placements = newPlacementsScreen(a.api, a.user)
		}
		return a, a.placements.load()
	case ScreenGenie:
		if a.chat == nil {
			g, err := genie.New(a.cfg.AnthropicAPIKey, a.cfg.GenieModel)
			if err != nil {
				a.err = err
				a.screen = ScreenMenu
				return a, nil
			}
			a.chat = newGenieScreen(g)
		}
		return a, a.chat.focus()
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	header := styles.Title.Render("HirePrep") + "  " +
		styles.Subtitle.Render(fmt.Sprintf("%s (%s)", a.user.Username, a.user.Role))

	var body string
	switch a.screen {
	case ScreenMenu:
		body = a.menu.view()
		if a.err != nil {
			body += "\n" + styles.ErrorText.Render(a.err.Error())
		}
	case ScreenAttendance:
		body = a.attendance.view()
	case ScreenMarking:
		body = a.marking.view()
	case ScreenPlacements:
		body = a.placements.view()
	case ScreenGenie:
		body = a.chat.view()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
