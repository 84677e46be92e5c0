// ABOUTME: Attendance workflows for the two portal roles
// ABOUTME: Students review records and stats, faculty mark mentees in batch

package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/editor"
)

// StudentData is one consistent load of a student's attendance view.
type StudentData struct {
	Records  []client.AttendanceRecord
	Stats    *client.AttendanceStats
	Subjects []string
}

// StudentAttendance is the student-side attendance workflow: records plus
// stats, newest first, filterable by subject.
type StudentAttendance struct {
	api      *client.Client
	username string

	records  []client.AttendanceRecord
	filtered []client.AttendanceRecord
	stats    *client.AttendanceStats
	subjects []string
	filter   string

	gen generation
}

// NewStudentAttendance creates the workflow for the given student.
func NewStudentAttendance(api *client.Client, username string) *StudentAttendance {
	return &StudentAttendance{api: api, username: username}
}

// Begin starts a (re)load and returns its generation token.
func (w *StudentAttendance) Begin() uint64 {
	return w.gen.begin()
}

// Fetch loads records and stats concurrently. Both are required before the
// view is usable: if either fails the whole load fails and nothing partial
// is returned.
func (w *StudentAttendance) Fetch(ctx context.Context) (*StudentData, error) {
	var (
		records []client.AttendanceRecord
		stats   *client.AttendanceStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = w.api.StudentAttendance(ctx, w.username)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = w.api.AttendanceStats(ctx, w.username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch attendance data: %w", err)
	}

	// Newest first; dates are ISO, string order is date order
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	seen := make(map[string]bool)
	var subjects []string
	for _, r := range records {
		if !seen[r.Subject] {
			seen[r.Subject] = true
			subjects = append(subjects, r.Subject)
		}
	}

	return &StudentData{Records: records, Stats: stats, Subjects: subjects}, nil
}

// Apply installs a fetched result. Stale results (an older generation) are
// dropped and Apply reports false.
func (w *StudentAttendance) Apply(gen uint64, data *StudentData) bool {
	if !w.gen.current(gen) {
		return false
	}
	w.records = data.Records
	w.stats = data.Stats
	w.subjects = data.Subjects
	w.filter = ""
	w.filtered = data.Records
	return true
}

// Load is the synchronous Begin/Fetch/Apply sequence used by the CLI.
func (w *StudentAttendance) Load(ctx context.Context) error {
	gen := w.Begin()
	data, err := w.Fetch(ctx)
	if err != nil {
		return err
	}
	w.Apply(gen, data)
	return nil
}

// Filter narrows the visible records to one subject; the empty subject
// restores the full list.
func (w *StudentAttendance) Filter(subject string) {
	w.filter = subject
	if subject == "" {
		w.filtered = w.records
		return
	}
	var out []client.AttendanceRecord
	for _, r := range w.records {
		if r.Subject == subject {
			out = append(out, r)
		}
	}
	w.filtered = out
}

// Records returns the currently visible records.
func (w *StudentAttendance) Records() []client.AttendanceRecord {
	return w.filtered
}

// Stats returns the attendance summary.
func (w *StudentAttendance) Stats() *client.AttendanceStats {
	return w.stats
}

// Subjects returns the distinct subjects in first-seen order.
func (w *StudentAttendance) Subjects() []string {
	return w.subjects
}

// Mark is one mentee's editable attendance row.
type Mark struct {
	Present bool
	Remarks string
}

// FacultyData is one consistent load of the faculty marking view.
type FacultyData struct {
	Mentees  []client.ProfileSummary
	Subjects []string
}

// FacultyAttendance is the faculty-side workflow: a batch-editable sheet of
// mentee attendance rows submitted in one request.
type FacultyAttendance struct {
	api      *client.Client
	username string

	mentees  []client.ProfileSummary
	subjects []string
	sheet    *editor.Editor[string, Mark]

	gen generation
}

// NewFacultyAttendance creates the workflow for the given faculty member.
// noticeTTL controls how long the post-submit success notice stays visible.
func NewFacultyAttendance(api *client.Client, username string, noticeTTL time.Duration) *FacultyAttendance {
	return &FacultyAttendance{
		api:      api,
		username: username,
		sheet:    editor.New[string, Mark](noticeTTL),
	}
}

// Begin starts a (re)load and returns its generation token.
func (w *FacultyAttendance) Begin() uint64 {
	return w.gen.begin()
}

// Fetch loads mentees and the subject catalogue concurrently; either
// failure fails the whole load.
func (w *FacultyAttendance) Fetch(ctx context.Context) (*FacultyData, error) {
	var (
		mentees  []client.ProfileSummary
		subjects []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mentees, err = w.api.Mentees(ctx, w.username)
		return err
	})
	g.Go(func() error {
		var err error
		subjects, err = w.api.Subjects(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch marking data: %w", err)
	}

	return &FacultyData{Mentees: mentees, Subjects: subjects}, nil
}

// Apply installs a fetched result and rebuilds the sheet: one row per
// mentee, present with empty remarks. Stale results are dropped.
func (w *FacultyAttendance) Apply(gen uint64, data *FacultyData) bool {
	if !w.gen.current(gen) {
		return false
	}
	w.mentees = data.Mentees
	w.subjects = data.Subjects

	keys := make([]string, len(data.Mentees))
	for i, m := range data.Mentees {
		keys[i] = m.Username
	}
	w.sheet.Init(keys, func(string) Mark {
		return Mark{Present: true, Remarks: ""}
	})
	return true
}

// Load is the synchronous Begin/Fetch/Apply sequence used by the CLI.
func (w *FacultyAttendance) Load(ctx context.Context) error {
	gen := w.Begin()
	data, err := w.Fetch(ctx)
	if err != nil {
		return err
	}
	w.Apply(gen, data)
	return nil
}

// SetPresent marks one mentee present or absent.
func (w *FacultyAttendance) SetPresent(username string, present bool) {
	w.sheet.Update(username, func(m *Mark) { m.Present = present })
}

// Toggle flips one mentee between present and absent.
func (w *FacultyAttendance) Toggle(username string) {
	w.sheet.Update(username, func(m *Mark) { m.Present = !m.Present })
}

// SetRemarks sets one mentee's remarks.
func (w *FacultyAttendance) SetRemarks(username, remarks string) {
	w.sheet.Update(username, func(m *Mark) { m.Remarks = remarks })
}

// Mentees returns the mentee list in portal order.
func (w *FacultyAttendance) Mentees() []client.ProfileSummary {
	return w.mentees
}

// Subjects returns the subject catalogue.
func (w *FacultyAttendance) Subjects() []string {
	return w.subjects
}

// Sheet exposes the editable rows for the TUI.
func (w *FacultyAttendance) Sheet() *editor.Editor[string, Mark] {
	return w.sheet
}

// Stage validates the batch locally and snapshots it as one request. A
// validation failure lands on the sheet and makes no network call. The
// returned request is detached from the sheet: Send can carry it across
// goroutines while the sheet keeps accepting edits on the owning loop.
func (w *FacultyAttendance) Stage(subject, date string) (client.MarkAttendanceRequest, error) {
	if err := validateMarking(subject, date); err != nil {
		w.sheet.Fail(err)
		return client.MarkAttendanceRequest{}, err
	}

	students := make([]client.StudentMark, 0, len(w.mentees))
	for _, m := range w.mentees {
		mark, _ := w.sheet.Get(m.Username)
		students = append(students, client.StudentMark{
			Username: m.Username,
			Present:  mark.Present,
			Remarks:  mark.Remarks,
		})
	}
	return client.MarkAttendanceRequest{
		Subject:         subject,
		Date:            date,
		FacultyUsername: w.username,
		Students:        students,
	}, nil
}

func validateMarking(subject, date string) error {
	if subject == "" {
		return &editor.ValidationError{Msg: "Please select a subject"}
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return &editor.ValidationError{Msg: "Date must be in YYYY-MM-DD form"}
	}
	if day.After(time.Now()) {
		return &editor.ValidationError{Msg: "Date cannot be in the future"}
	}
	return nil
}

// Send posts one staged batch. It touches no workflow state, so callers may
// run it off the owning loop.
func (w *FacultyAttendance) Send(ctx context.Context, req client.MarkAttendanceRequest) error {
	return w.api.MarkAttendance(ctx, req)
}

// Finish installs a Send result on the owning loop: failure keeps the sheet
// for retry, success resets every row and shows the notice.
func (w *FacultyAttendance) Finish(req client.MarkAttendanceRequest, err error) error {
	if err != nil {
		w.sheet.Fail(err)
		return err
	}
	w.sheet.Succeed(fmt.Sprintf("Attendance marked successfully for %s on %s!", req.Subject, req.Date))
	return nil
}

// Submit is the synchronous Stage/Send/Finish sequence used by the CLI.
// An empty subject or a future date fails locally with no network call.
// Success resets every row; failure leaves the sheet untouched for retry.
func (w *FacultyAttendance) Submit(ctx context.Context, subject, date string) error {
	req, err := w.Stage(subject, date)
	if err != nil {
		return err
	}
	return w.Finish(req, w.Send(ctx, req))
}
