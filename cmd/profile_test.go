// ABOUTME: Tests for the profile commands
// ABOUTME: Verifies display output and flag-driven partial edits

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sumitmadaan16/HirePrep/internal/client"
)

func profileServer(t *testing.T, gotUpdate *client.ProfileUpdate) *httptest.Server {
	base := client.Profile{
		Username: "alex.j", Email: "alex@x.edu", FirstName: "Alex", LastName: "Johnson",
		PhoneNumber: "555-0101", Role: "STUDENT",
		Mentor: &client.ProfileSummary{Username: "john.doe", FirstName: "John", LastName: "Doe"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/profile/alex.j", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			if err := json.NewDecoder(r.Body).Decode(gotUpdate); err != nil {
				t.Fatalf("bad update body: %v", err)
			}
			updated := base
			updated.Email = gotUpdate.Email
			updated.PhoneNumber = gotUpdate.PhoneNumber
			json.NewEncoder(w).Encode(updated)
			return
		}
		json.NewEncoder(w).Encode(base)
	})
	mux.HandleFunc("/api/attendance/student/alex.j/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.AttendanceStats{AttendancePercentage: 87.5})
	})
	return httptest.NewServer(mux)
}

func TestProfileShow(t *testing.T) {
	var gotUpdate client.ProfileUpdate
	server := profileServer(t, &gotUpdate)
	defer server.Close()

	seedSession(t, server, "alex.j", "STUDENT")

	var buf bytes.Buffer
	if exitCode := runProfileShow(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, check := range []string{"Alex Johnson", "alex@x.edu", "John Doe", "87.5%"} {
		if !bytes.Contains(buf.Bytes(), []byte(check)) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestProfileEdit_PartialUpdate(t *testing.T) {
	var gotUpdate client.ProfileUpdate
	server := profileServer(t, &gotUpdate)
	defer server.Close()

	seedSession(t, server, "alex.j", "STUDENT")

	var buf bytes.Buffer
	exitCode := runProfileEdit(context.Background(), &buf, map[string]string{"phone": "555-0199"})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	if gotUpdate.PhoneNumber != "555-0199" {
		t.Errorf("expected changed phone in update, got %+v", gotUpdate)
	}
	if gotUpdate.Email != "alex@x.edu" {
		t.Error("unchanged fields must keep their loaded values")
	}
}

func TestProfileEdit_NoFlags(t *testing.T) {
	seedSession(t, nil, "alex.j", "STUDENT")

	var buf bytes.Buffer
	if exitCode := runProfileEdit(context.Background(), &buf, nil); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestProfileEdit_ValidationFailure(t *testing.T) {
	var gotUpdate client.ProfileUpdate
	server := profileServer(t, &gotUpdate)
	defer server.Close()

	seedSession(t, server, "alex.j", "STUDENT")

	var buf bytes.Buffer
	exitCode := runProfileEdit(context.Background(), &buf, map[string]string{"email": ""})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Email is required")) {
		t.Errorf("expected validation message, got %s", buf.String())
	}
	if gotUpdate.PhoneNumber != "" {
		t.Error("validation failure must not reach the portal")
	}
}

func TestApplyProfileEdits(t *testing.T) {
	p := client.Profile{Email: "old@x.edu"}
	applyProfileEdits(&p, map[string]string{
		"email":      "new@x.edu",
		"mentor":     "jane.doe",
		"department": "CSE",
	})

	if p.Email != "new@x.edu" {
		t.Errorf("expected email updated, got %q", p.Email)
	}
	if p.Mentor == nil || p.Mentor.Username != "jane.doe" {
		t.Errorf("expected mentor set, got %+v", p.Mentor)
	}
	if p.Department != "CSE" {
		t.Errorf("expected department set, got %q", p.Department)
	}
}
