// ABOUTME: Tests for the attendance commands
// ABOUTME: Verifies student output, faculty batch marking, and role guards

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sumitmadaan16/HirePrep/internal/client"
)

func attendanceServer(t *testing.T, gotMark *client.MarkAttendanceRequest) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/attendance/student/alex.j", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]client.AttendanceRecord{
			{ID: 1, Date: "2026-08-20", Subject: "Data Structures", Present: true, FacultyName: "John Doe"},
			{ID: 2, Date: "2026-08-21", Subject: "Operating Systems", Present: false, FacultyName: "John Doe", Remarks: "sick"},
		})
	})
	mux.HandleFunc("/api/attendance/student/alex.j/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.AttendanceStats{AttendancePercentage: 50, ClassesAttended: 1, ClassesMissed: 1})
	})
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
		if err := json.NewDecoder(r.Body).Decode(gotMark); err != nil {
			t.Fatalf("bad mark body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	return httptest.NewServer(mux)
}

func TestAttendanceShow(t *testing.T) {
	var gotMark client.MarkAttendanceRequest
	server := attendanceServer(t, &gotMark)
	defer server.Close()

	seedSession(t, server, "alex.j", "STUDENT")

	var buf bytes.Buffer
	if exitCode := runAttendanceShow(context.Background(), &buf, ""); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	checks := []string{"50.0%", "Data Structures", "Operating Systems", "ABSENT", "sick"}
	for _, check := range checks {
		if !bytes.Contains(buf.Bytes(), []byte(check)) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestAttendanceShow_SubjectFilter(t *testing.T) {
	var gotMark client.MarkAttendanceRequest
	server := attendanceServer(t, &gotMark)
	defer server.Close()

	seedSession(t, server, "alex.j", "STUDENT")

	var buf bytes.Buffer
	if exitCode := runAttendanceShow(context.Background(), &buf, "Data Structures"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if bytes.Contains(buf.Bytes(), []byte("Operating Systems")) {
		t.Error("filtered output must not contain other subjects")
	}
}

func TestAttendanceShow_FacultyRejected(t *testing.T) {
	seedSession(t, nil, "john.doe", "FACULTY")

	var buf bytes.Buffer
	if exitCode := runAttendanceShow(context.Background(), &buf, ""); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestAttendanceShow_NotLoggedIn(t *testing.T) {
	configDir = t.TempDir()
	defer func() { configDir = "" }()

	var buf bytes.Buffer
	if exitCode := runAttendanceShow(context.Background(), &buf, ""); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("hireprep login")) {
		t.Error("expected re-login instruction")
	}
}

func TestAttendanceMark(t *testing.T) {
	var gotMark client.MarkAttendanceRequest
	server := attendanceServer(t, &gotMark)
	defer server.Close()

	seedSession(t, server, "john.doe", "FACULTY")

	var buf bytes.Buffer
	exitCode := runAttendanceMark(context.Background(), &buf, "Data Structures", "2026-08-28",
		[]string{"sam.r"}, []string{"sam.r=medical leave"})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	if gotMark.Subject != "Data Structures" || gotMark.Date != "2026-08-28" {
		t.Errorf("unexpected batch metadata: %+v", gotMark)
	}
	if gotMark.FacultyUsername != "john.doe" {
		t.Errorf("expected faculty username, got %q", gotMark.FacultyUsername)
	}
	if len(gotMark.Students) != 2 {
		t.Fatalf("expected every mentee in the batch, got %d", len(gotMark.Students))
	}
	for _, s := range gotMark.Students {
		switch s.Username {
		case "alex.j":
			if !s.Present || s.Remarks != "" {
				t.Errorf("alex.j should default to present, got %+v", s)
			}
		case "sam.r":
			if s.Present || s.Remarks != "medical leave" {
				t.Errorf("sam.r should be absent with remark, got %+v", s)
			}
		}
	}
}

func TestAttendanceMark_MissingSubject(t *testing.T) {
	var gotMark client.MarkAttendanceRequest
	server := attendanceServer(t, &gotMark)
	defer server.Close()

	seedSession(t, server, "john.doe", "FACULTY")

	var buf bytes.Buffer
	exitCode := runAttendanceMark(context.Background(), &buf, "", time.Now().Format("2006-01-02"), nil, nil)
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Please select a subject")) {
		t.Errorf("expected validation message, got %s", buf.String())
	}
	if gotMark.Subject != "" || len(gotMark.Students) != 0 {
		t.Error("validation failure must not reach the portal")
	}
}

func TestAttendanceMark_UnknownMentee(t *testing.T) {
	var gotMark client.MarkAttendanceRequest
	server := attendanceServer(t, &gotMark)
	defer server.Close()

	seedSession(t, server, "john.doe", "FACULTY")

	var buf bytes.Buffer
	exitCode := runAttendanceMark(context.Background(), &buf, "Data Structures", "2026-08-28",
		[]string{"stranger"}, nil)
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestAttendanceMark_StudentRejected(t *testing.T) {
	seedSession(t, nil, "alex.j", "STUDENT")

	var buf bytes.Buffer
	exitCode := runAttendanceMark(context.Background(), &buf, "Data Structures", "2026-08-28", nil, nil)
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestParseRemarks(t *testing.T) {
	out, err := parseRemarks([]string{"alex.j=late", "sam.r=medical leave"})
	if err != nil {
		t.Fatal(err)
	}
	if out["alex.j"] != "late" || out["sam.r"] != "medical leave" {
		t.Errorf("unexpected remarks: %v", out)
	}

	if _, err := parseRemarks([]string{"no-separator"}); err == nil {
		t.Error("expected error for malformed remark")
	}
	if _, err := parseRemarks([]string{"=text"}); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestFormatAttendanceHuman_Empty(t *testing.T) {
	output := formatAttendanceHuman(nil, nil, "")
	if !bytes.Contains([]byte(output), []byte("No attendance records")) {
		t.Error("expected empty-state message")
	}

	output = formatAttendanceHuman(nil, nil, "Data Structures")
	if !bytes.Contains([]byte(output), []byte("Data Structures")) {
		t.Error("expected subject named in empty filter message")
	}
}
