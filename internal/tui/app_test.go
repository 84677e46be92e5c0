// ABOUTME: Integration tests for the dashboard app
// ABOUTME: Tests screen wiring, role-aware menus, and async message routing

package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/config"
	"github.com/sumitmadaan16/HirePrep/internal/session"
	"github.com/sumitmadaan16/HirePrep/internal/workflow"
)

func testConfig() *config.Config {
	return &config.Config{NoticeTTL: 5 * time.Second}
}

func testClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return client.New(server.URL, session.NewStore(t.TempDir()))
}

func studentApp(t *testing.T, handler http.Handler) *App {
	return New(testClient(t, handler), session.User{Username: "alex.j", Role: session.RoleStudent}, testConfig())
}

func facultyApp(t *testing.T, handler http.Handler) *App {
	return New(testClient(t, handler), session.User{Username: "john.doe", Role: session.RoleFaculty}, testConfig())
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppInitialState(t *testing.T) {
	app := studentApp(t, http.NewServeMux())

	if app.screen != ScreenMenu {
		t.Errorf("expected initial screen to be ScreenMenu, got %d", app.screen)
	}
	if app.menu == nil {
		t.Error("expected menu to be initialized")
	}
}

func TestMenu_StudentEntries(t *testing.T) {
	m := newMenu(session.RoleStudent, true)
	view := m.view()

	for _, entry := range []string{"Attendance", "Placements", "HireGenie"} {
		if !strings.Contains(view, entry) {
			t.Errorf("expected student menu to contain %q", entry)
		}
	}
	if strings.Contains(view, "Mark Attendance") {
		t.Error("student menu must not offer marking")
	}
}

func TestMenu_FacultyEntries(t *testing.T) {
	m := newMenu(session.RoleFaculty, true)
	view := m.view()

	if !strings.Contains(view, "Mark Attendance") {
		t.Error("expected faculty menu to offer marking")
	}
	if strings.Contains(view, "HireGenie") {
		t.Error("faculty menu must not offer the assistant")
	}
}

func TestMenu_GenieDisabledWithoutKey(t *testing.T) {
	m := newMenu(session.RoleStudent, false)
	if !strings.Contains(m.view(), "ANTHROPIC_API_KEY") {
		t.Error("expected hint about the missing API key")
	}

	// Selecting the disabled entry goes nowhere
	m.cursor = 2
	if m.current() != ScreenMenu {
		t.Error("disabled entry must not open a screen")
	}
}

func TestApp_StudentAttendanceFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/attendance/student/alex.j", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.AttendanceRecord{
			{ID: 1, Date: "2026-08-20", Subject: "Data Structures", Present: true, FacultyName: "John Doe"},
		})
	})
	mux.HandleFunc("/api/attendance/student/alex.j/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.AttendanceStats{AttendancePercentage: 90, ClassesAttended: 9, ClassesMissed: 1})
	})

	app := studentApp(t, mux)
	_, cmd := app.openScreen(ScreenAttendance)
	if cmd == nil {
		t.Fatal("expected a load command")
	}

	updated, _ := app.Update(cmd())
	result := updated.(*App)

	if result.screen != ScreenAttendance {
		t.Errorf("expected attendance screen, got %d", result.screen)
	}
	view := result.View()
	if !strings.Contains(view, "Data Structures") {
		t.Errorf("expected records in view:\n%s", view)
	}
	if !strings.Contains(view, "90.0%") {
		t.Errorf("expected stats in view:\n%s", view)
	}
}

func TestApp_StaleAttendanceDropped(t *testing.T) {
	app := studentApp(t, http.NewServeMux())
	app.attendance = newAttendanceScreen(workflow.NewStudentAttendance(app.api, "alex.j"))
	app.screen = ScreenAttendance

	staleGen := app.attendance.wf.Begin()
	app.attendance.wf.Begin() // newer load supersedes the first

	stale := &workflow.StudentData{
		Records: []client.AttendanceRecord{{ID: 1, Subject: "Old"}},
	}
	app.Update(studentAttendanceMsg{gen: staleGen, data: stale})

	if len(app.attendance.wf.Records()) != 0 {
		t.Error("stale response must not be applied")
	}
}

func TestApp_SessionExpiryQuits(t *testing.T) {
	app := studentApp(t, http.NewServeMux())
	app.attendance = newAttendanceScreen(workflow.NewStudentAttendance(app.api, "alex.j"))
	app.screen = ScreenAttendance

	gen := app.attendance.wf.Begin()
	_, cmd := app.Update(studentAttendanceMsg{gen: gen, err: client.ErrUnauthorized})

	if cmd == nil {
		t.Fatal("expected quit command on expired session")
	}
	if app.err == nil || !strings.Contains(app.err.Error(), "hireprep login") {
		t.Errorf("expected re-login instruction, got %v", app.err)
	}
}

func TestApp_EscReturnsToMenu(t *testing.T) {
	app := facultyApp(t, http.NewServeMux())
	app.marking = newMarkingScreen(workflow.NewFacultyAttendance(app.api, "john.doe", time.Second))
	app.screen = ScreenMarking

	updated, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(*App).screen != ScreenMenu {
		t.Error("expected esc to return to the menu")
	}
}
