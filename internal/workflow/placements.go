// ABOUTME: Placement workflows for the two portal roles
// ABOUTME: Students browse and apply, faculty list and post openings

package workflow

import (
	"context"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/editor"
)

// Tab selects which placement list a student is viewing.
type Tab int

const (
	TabAvailable Tab = iota
	TabApplied
)

// PlacementView is a placement as shown to a student; the application
// fields are set only on the applied tab.
type PlacementView struct {
	client.Placement
	ApplicationID int64
	Status        string
	AppliedAt     string
}

// StudentPlacements is the student-side placement workflow. The list is a
// per-load cache: it reflects the portal as of the last load, never
// concurrent server-side changes.
type StudentPlacements struct {
	api      *client.Client
	username string

	tab  Tab
	list []PlacementView

	gen generation
}

// NewStudentPlacements creates the workflow for the given student.
func NewStudentPlacements(api *client.Client, username string) *StudentPlacements {
	return &StudentPlacements{api: api, username: username}
}

// SetTab switches between the available and applied lists. The stale list
// is kept until the next load.
func (w *StudentPlacements) SetTab(tab Tab) {
	w.tab = tab
}

// Tab returns the active tab.
func (w *StudentPlacements) Tab() Tab {
	return w.tab
}

// Begin starts a (re)load and returns its generation token.
func (w *StudentPlacements) Begin() uint64 {
	return w.gen.begin()
}

// Fetch loads the active tab's list.
func (w *StudentPlacements) Fetch(ctx context.Context) ([]PlacementView, error) {
	if w.tab == TabAvailable {
		placements, err := w.api.AvailablePlacements(ctx, w.username)
		if err != nil {
			return nil, err
		}
		views := make([]PlacementView, len(placements))
		for i, p := range placements {
			views[i] = PlacementView{Placement: p}
		}
		return views, nil
	}

	apps, err := w.api.StudentApplications(ctx, w.username)
	if err != nil {
		return nil, err
	}
	views := make([]PlacementView, len(apps))
	for i, a := range apps {
		views[i] = PlacementView{
			Placement:     a.Placement,
			ApplicationID: a.ID,
			Status:        a.Status,
			AppliedAt:     a.AppliedAt,
		}
	}
	return views, nil
}

// Apply installs a fetched list; stale results are dropped.
func (w *StudentPlacements) Apply(gen uint64, list []PlacementView) bool {
	if !w.gen.current(gen) {
		return false
	}
	w.list = list
	return true
}

// Load is the synchronous Begin/Fetch/Apply sequence used by the CLI.
func (w *StudentPlacements) Load(ctx context.Context) error {
	gen := w.Begin()
	list, err := w.Fetch(ctx)
	if err != nil {
		return err
	}
	w.Apply(gen, list)
	return nil
}

// List returns the placements for the active tab as of the last load.
func (w *StudentPlacements) List() []PlacementView {
	return w.list
}

// RecordApplication posts one application. It touches no workflow state, so
// callers may run it off the owning loop and reload afterwards.
func (w *StudentPlacements) RecordApplication(ctx context.Context, placementID int64) error {
	return w.api.Apply(ctx, placementID, w.username)
}

// ApplyTo applies to one placement, then reloads so the list reflects the
// new application. This is the synchronous sequence used by the CLI.
func (w *StudentPlacements) ApplyTo(ctx context.Context, placementID int64) error {
	if err := w.RecordApplication(ctx, placementID); err != nil {
		return err
	}
	return w.Load(ctx)
}

// FacultyPlacements is the faculty-side placement workflow.
type FacultyPlacements struct {
	api      *client.Client
	username string

	list []client.Placement

	gen generation
}

// NewFacultyPlacements creates the workflow for the given faculty member.
func NewFacultyPlacements(api *client.Client, username string) *FacultyPlacements {
	return &FacultyPlacements{api: api, username: username}
}

// Begin starts a (re)load and returns its generation token.
func (w *FacultyPlacements) Begin() uint64 {
	return w.gen.begin()
}

// Fetch loads every placement.
func (w *FacultyPlacements) Fetch(ctx context.Context) ([]client.Placement, error) {
	return w.api.AllPlacements(ctx)
}

// Apply installs a fetched list; stale results are dropped.
func (w *FacultyPlacements) Apply(gen uint64, list []client.Placement) bool {
	if !w.gen.current(gen) {
		return false
	}
	w.list = list
	return true
}

// Load is the synchronous Begin/Fetch/Apply sequence used by the CLI.
func (w *FacultyPlacements) Load(ctx context.Context) error {
	gen := w.Begin()
	list, err := w.Fetch(ctx)
	if err != nil {
		return err
	}
	w.Apply(gen, list)
	return nil
}

// List returns all placements as of the last load.
func (w *FacultyPlacements) List() []client.Placement {
	return w.list
}

// ValidatePlacement checks the required posting fields locally.
func ValidatePlacement(input client.PlacementInput) error {
	switch {
	case input.Title == "":
		return &editor.ValidationError{Msg: "Title is required"}
	case input.Role == "":
		return &editor.ValidationError{Msg: "Role is required"}
	case input.Experience == "":
		return &editor.ValidationError{Msg: "Experience is required"}
	case input.Description == "":
		return &editor.ValidationError{Msg: "Description is required"}
	case input.Type != "INTERNSHIP" && input.Type != "FULLTIME":
		return &editor.ValidationError{Msg: "Type must be INTERNSHIP or FULLTIME"}
	case input.DateOfDrive == "":
		return &editor.ValidationError{Msg: "Drive date is required"}
	case input.LastDateToApply == "":
		return &editor.ValidationError{Msg: "Last date to apply is required"}
	case input.Compensation <= 0:
		return &editor.ValidationError{Msg: "Compensation is required"}
	}
	return nil
}

// Create validates locally, posts the placement, and reloads. Validation
// failure makes no network call.
func (w *FacultyPlacements) Create(ctx context.Context, input client.PlacementInput) error {
	if err := ValidatePlacement(input); err != nil {
		return err
	}
	input.PostedByUsername = w.username
	if _, err := w.api.CreatePlacement(ctx, input); err != nil {
		return err
	}
	return w.Load(ctx)
}
