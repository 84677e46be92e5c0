// ABOUTME: HTTP client for the HirePrep portal gateway
// ABOUTME: Attaches the session credential and reacts to rejection by clearing it

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sumitmadaan16/HirePrep/internal/session"
)

// ErrUnauthorized is returned when the gateway rejects the session
// credential. By the time a caller sees it the stored credential has
// already been cleared.
var ErrUnauthorized = errors.New("session rejected by gateway")

// Client is the API client for the HirePrep portal gateway
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store

	// OnUnauthorized runs after a 401 clears the session, before the error
	// is returned. The CLI prints a re-login instruction; the TUI swaps to
	// its login notice.
	OnUnauthorized func()
}

// New creates a new API client with the given base URL and session store
func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store: store,
	}
}

// Do executes a prepared request against the gateway. Default headers
// (Content-Type, Authorization) are set only when the caller has not set
// them — caller-supplied headers win on conflict. A 401 clears the stored
// credential and fires OnUnauthorized, but the response is still returned:
// callers inspect the status themselves.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Authorization") == "" {
		if token, ok := c.store.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		slog.Debug("gateway rejected session", "path", req.URL.Path)
		if err := c.store.Clear(); err != nil {
			slog.Debug("failed to clear session", "error", err)
		}
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}

	return resp, nil
}

// call performs one JSON round trip. body and out may be nil. Exactly one
// attempt is made: expired sessions are handled reactively via the 401 path,
// never by retrying or refreshing.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from gateway: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to gateway at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses portal error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("gateway error: %s", errResp.Error)
}

// Login calls POST /api/auth/login. The returned token is NOT stored here;
// the login command owns the store write.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", nil, req, &auth); err != nil {
		return nil, err
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("invalid response: no token received")
	}
	return &auth, nil
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", nil, req, &auth); err != nil {
		return nil, err
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("invalid response: no token received")
	}
	return &auth, nil
}

// Profile calls GET /api/profile/{username}
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var p Profile
	if err := c.call(ctx, http.MethodGet, "/api/profile/"+url.PathEscape(username), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile calls PUT /api/profile/{username}
func (c *Client) UpdateProfile(ctx context.Context, username string, update ProfileUpdate) (*Profile, error) {
	var p Profile
	if err := c.call(ctx, http.MethodPut, "/api/profile/"+url.PathEscape(username), nil, update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Faculty calls GET /api/profile/faculty
func (c *Client) Faculty(ctx context.Context) ([]ProfileSummary, error) {
	var list []ProfileSummary
	if err := c.call(ctx, http.MethodGet, "/api/profile/faculty", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Mentees calls GET /api/profile/faculty/{username}/mentees
func (c *Client) Mentees(ctx context.Context, facultyUsername string) ([]ProfileSummary, error) {
	var list []ProfileSummary
	path := "/api/profile/faculty/" + url.PathEscape(facultyUsername) + "/mentees"
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// StudentAttendance calls GET /api/attendance/student/{username}
func (c *Client) StudentAttendance(ctx context.Context, username string) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	path := "/api/attendance/student/" + url.PathEscape(username)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AttendanceStats calls GET /api/attendance/student/{username}/stats
func (c *Client) AttendanceStats(ctx context.Context, username string) (*AttendanceStats, error) {
	var stats AttendanceStats
	path := "/api/attendance/student/" + url.PathEscape(username) + "/stats"
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Subjects calls GET /api/attendance/subjects
func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := c.call(ctx, http.MethodGet, "/api/attendance/subjects", nil, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// MarkAttendance calls POST /api/attendance/mark
func (c *Client) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) error {
	return c.call(ctx, http.MethodPost, "/api/attendance/mark", nil, req, nil)
}

// AvailablePlacements calls GET /api/placements/available?studentUsername=
func (c *Client) AvailablePlacements(ctx context.Context, studentUsername string) ([]Placement, error) {
	var list []Placement
	query := url.Values{"studentUsername": {studentUsername}}
	if err := c.call(ctx, http.MethodGet, "/api/placements/available", query, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AllPlacements calls GET /api/placements
func (c *Client) AllPlacements(ctx context.Context) ([]Placement, error) {
	var list []Placement
	if err := c.call(ctx, http.MethodGet, "/api/placements", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreatePlacement calls POST /api/placements
func (c *Client) CreatePlacement(ctx context.Context, input PlacementInput) (*Placement, error) {
	var created Placement
	if err := c.call(ctx, http.MethodPost, "/api/placements", nil, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Apply calls POST /api/placements/{id}/apply?studentUsername=
func (c *Client) Apply(ctx context.Context, placementID int64, studentUsername string) error {
	path := fmt.Sprintf("/api/placements/%d/apply", placementID)
	query := url.Values{"studentUsername": {studentUsername}}
	return c.call(ctx, http.MethodPost, path, query, nil, nil)
}

// StudentApplications calls GET /api/placements/applications/student/{username}
func (c *Client) StudentApplications(ctx context.Context, username string) ([]Application, error) {
	var apps []Application
	path := "/api/placements/applications/student/" + url.PathEscape(username)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
