// ABOUTME: Shared test helpers for the cmd package
// ABOUTME: Mints session tokens and points commands at local fakes

package cmd

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sumitmadaan16/HirePrep/internal/session"
)

func mintToken(t *testing.T, username, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

// seedSession stores a valid token in a throwaway config dir and points the
// package-level overrides at it (and at the given server, when set).
func seedSession(t *testing.T, server *httptest.Server, username, role string) {
	t.Helper()

	configDir = t.TempDir()
	t.Cleanup(func() { configDir = "" })

	if server != nil {
		apiURL = server.URL
		t.Cleanup(func() { apiURL = "" })
	}

	store := session.NewStore(configDir)
	if err := store.Set(mintToken(t, username, role, time.Now().Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
}
