// ABOUTME: Tests for the faculty marking screen
// ABOUTME: Drives the sheet through key events and verifies the submit path

package tui

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumitmadaan16/HirePrep/internal/client"
)

func markingMux(t *testing.T, markCalls *int32, gotMark *client.MarkAttendanceRequest) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile/faculty/john.doe/mentees", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.ProfileSummary{
			{Username: "alex.j", FirstName: "Alex", LastName: "Johnson"},
			{Username: "sam.r", FirstName: "Sam", LastName: "Rivera"},
		})
	})
	mux.HandleFunc("/api/attendance/subjects", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Data Structures", "Operating Systems"})
	})
	mux.HandleFunc("/api/attendance/mark", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(markCalls, 1)
		if err := json.NewDecoder(r.Body).Decode(gotMark); err != nil {
			t.Fatalf("bad mark body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func loadedMarkingScreen(t *testing.T, app *App) *markingScreen {
	t.Helper()
	_, cmd := app.openScreen(ScreenMarking)
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	app.Update(cmd())
	if app.marking.loading {
		t.Fatal("expected roster loaded")
	}
	return app.marking
}

func TestMarking_DefaultsEveryonePresent(t *testing.T) {
	var markCalls int32
	var gotMark client.MarkAttendanceRequest
	app := facultyApp(t, markingMux(t, &markCalls, &gotMark))

	s := loadedMarkingScreen(t, app)
	view := s.view()

	if strings.Count(view, "[present]") != 2 {
		t.Errorf("expected both mentees present by default:\n%s", view)
	}
}

func TestMarking_ToggleAndRemark(t *testing.T) {
	var markCalls int32
	var gotMark client.MarkAttendanceRequest
	app := facultyApp(t, markingMux(t, &markCalls, &gotMark))

	s := loadedMarkingScreen(t, app)

	// Move to the second mentee, mark absent, add a remark
	s.handleKey(keyMsg("j"))
	s.handleKey(keyMsg(" "))
	s.handleKey(keyMsg("r"))
	for _, r := range "sick" {
		s.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	s.handleKey(keyMsg("enter"))

	mark, _ := s.wf.Sheet().Get("sam.r")
	if mark.Present {
		t.Error("expected sam.r toggled absent")
	}
	if mark.Remarks != "sick" {
		t.Errorf("expected remark recorded, got %q", mark.Remarks)
	}

	view := s.view()
	if !strings.Contains(view, "[absent]") {
		t.Errorf("expected absent row in view:\n%s", view)
	}
}

func TestMarking_SubmitWithoutSubject(t *testing.T) {
	var markCalls int32
	var gotMark client.MarkAttendanceRequest
	app := facultyApp(t, markingMux(t, &markCalls, &gotMark))

	s := loadedMarkingScreen(t, app)

	cmd := s.handleKey(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("validation failure must not produce a submit command")
	}

	if atomic.LoadInt32(&markCalls) != 0 {
		t.Error("missing subject must not reach the portal")
	}
	if !strings.Contains(s.view(), "Please select a subject") {
		t.Errorf("expected validation message in view:\n%s", s.view())
	}
}

func TestMarking_SubmitBatch(t *testing.T) {
	var markCalls int32
	var gotMark client.MarkAttendanceRequest
	app := facultyApp(t, markingMux(t, &markCalls, &gotMark))

	s := loadedMarkingScreen(t, app)

	s.handleKey(keyMsg("s")) // select first subject
	s.handleKey(keyMsg(" ")) // first mentee absent

	cmd := s.handleKey(keyMsg("enter"))
	app.Update(cmd())

	if atomic.LoadInt32(&markCalls) != 1 {
		t.Fatalf("expected one mark call, got %d", markCalls)
	}
	if gotMark.Subject != "Data Structures" {
		t.Errorf("unexpected subject %q", gotMark.Subject)
	}
	if gotMark.Date != time.Now().Format("2006-01-02") {
		t.Errorf("expected today's date, got %q", gotMark.Date)
	}
	if len(gotMark.Students) != 2 {
		t.Fatalf("expected both mentees in the batch, got %d", len(gotMark.Students))
	}
	if gotMark.Students[0].Present {
		t.Error("expected first mentee absent")
	}

	// Success resets the sheet and shows the notice
	mark, _ := s.wf.Sheet().Get("alex.j")
	if !mark.Present {
		t.Error("expected sheet reset to defaults after submit")
	}
	if !strings.Contains(s.view(), "Attendance marked successfully") {
		t.Errorf("expected success notice in view:\n%s", s.view())
	}
}

func TestMarking_InFlightSubmitKeepsSheetEditable(t *testing.T) {
	release := make(chan struct{})
	var gotMark client.MarkAttendanceRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile/faculty/john.doe/mentees", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.ProfileSummary{
			{Username: "alex.j", FirstName: "Alex", LastName: "Johnson"},
			{Username: "sam.r", FirstName: "Sam", LastName: "Rivera"},
		})
	})
	mux.HandleFunc("/api/attendance/subjects", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Data Structures"})
	})
	mux.HandleFunc("/api/attendance/mark", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotMark)
		<-release
		w.WriteHeader(http.StatusCreated)
	})
	app := facultyApp(t, mux)
	s := loadedMarkingScreen(t, app)

	s.handleKey(keyMsg("s"))
	cmd := s.handleKey(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	// The command runs on its own goroutine, exactly as the program runs
	// it. While the request is in flight the loop keeps editing rows and
	// rendering; only the staged snapshot may cross goroutines.
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	for i := 0; i < 51; i++ {
		s.handleKey(keyMsg(" "))
		_ = s.view()
	}
	close(release)

	app.Update(<-done)

	if !gotMark.Students[0].Present {
		t.Error("batch must carry the sheet as staged, not the in-flight edits")
	}
	mark, _ := s.wf.Sheet().Get("alex.j")
	if !mark.Present {
		t.Error("expected sheet reset to defaults once the result landed")
	}
	if !strings.Contains(s.view(), "Attendance marked successfully") {
		t.Errorf("expected success notice in view:\n%s", s.view())
	}
}

func TestMarking_EditingConsumesEsc(t *testing.T) {
	var markCalls int32
	var gotMark client.MarkAttendanceRequest
	app := facultyApp(t, markingMux(t, &markCalls, &gotMark))

	loadedMarkingScreen(t, app)
	app.marking.handleKey(keyMsg("r")) // start editing a remark

	updated, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(*App).screen != ScreenMarking {
		t.Error("esc while editing should cancel the edit, not leave the screen")
	}
	if app.marking.editing() {
		t.Error("expected edit cancelled")
	}
}
