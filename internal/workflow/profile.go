// ABOUTME: Profile workflow shared by both roles
// ABOUTME: Loads the profile, tracks draft edits, saves the role-specific subset

package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/sumitmadaan16/HirePrep/internal/client"
	"github.com/sumitmadaan16/HirePrep/internal/editor"
	"github.com/sumitmadaan16/HirePrep/internal/session"
)

// Profile is the profile view/edit workflow. The draft is a single-row
// editable copy keyed by username; saving sends only the fields the portal
// accepts for the session's role.
type Profile struct {
	api      *client.Client
	username string
	role     session.Role

	profile *client.Profile
	stats   *client.AttendanceStats
	draft   *editor.Editor[string, client.Profile]

	gen generation
}

// NewProfile creates the workflow for the given user.
func NewProfile(api *client.Client, user session.User, noticeTTL time.Duration) *Profile {
	return &Profile{
		api:      api,
		username: user.Username,
		role:     user.Role,
		draft:    editor.New[string, client.Profile](noticeTTL),
	}
}

// Load fetches the profile, then for students the attendance stats. The
// stats fetch depends on the profile and is sequenced after it; its failure
// is non-fatal — the view shows a dash instead.
func (w *Profile) Load(ctx context.Context) error {
	gen := w.gen.begin()

	profile, err := w.api.Profile(ctx, w.username)
	if err != nil {
		return err
	}

	var stats *client.AttendanceStats
	if w.role == session.RoleStudent {
		stats, err = w.api.AttendanceStats(ctx, w.username)
		if err != nil {
			slog.Debug("stats unavailable for profile view", "error", err)
			stats = nil
		}
	}

	if !w.gen.current(gen) {
		return nil
	}
	w.install(profile, stats)
	return nil
}

func (w *Profile) install(profile *client.Profile, stats *client.AttendanceStats) {
	w.profile = profile
	w.stats = stats
	w.draft.Init([]string{w.username}, func(string) client.Profile {
		return *profile
	})
}

// Current returns the last loaded profile.
func (w *Profile) Current() *client.Profile {
	return w.profile
}

// Stats returns the attendance summary, nil when unavailable.
func (w *Profile) Stats() *client.AttendanceStats {
	return w.stats
}

// Draft returns the editable profile copy.
func (w *Profile) Draft() (client.Profile, bool) {
	return w.draft.Get(w.username)
}

// Edit mutates the draft. Edits never touch the loaded profile until Save
// succeeds.
func (w *Profile) Edit(mutate func(*client.Profile)) {
	w.draft.Update(w.username, mutate)
}

// Err returns the visible workflow error, if any.
func (w *Profile) Err() error {
	return w.draft.Err()
}

// Notice returns the success notice while fresh.
func (w *Profile) Notice() (string, bool) {
	return w.draft.Notice()
}

// Save sends the draft's role-dependent field subset. Failure keeps the
// draft so the user corrects and retries; success installs the updated
// profile as the new base.
func (w *Profile) Save(ctx context.Context) error {
	validate := func() error {
		draft, _ := w.Draft()
		switch {
		case draft.Email == "":
			return &editor.ValidationError{Msg: "Email is required"}
		case draft.FirstName == "":
			return &editor.ValidationError{Msg: "First name is required"}
		case draft.LastName == "":
			return &editor.ValidationError{Msg: "Last name is required"}
		}
		return nil
	}

	var updated *client.Profile
	send := func(ctx context.Context) error {
		draft, _ := w.Draft()
		var err error
		updated, err = w.api.UpdateProfile(ctx, w.username, w.updateFields(draft))
		return err
	}

	if err := w.draft.Submit(ctx, "Profile updated successfully!", validate, send); err != nil {
		return err
	}

	w.profile = updated
	w.draft.Rebase([]string{w.username}, func(string) client.Profile {
		return *updated
	})
	return nil
}

// updateFields builds the role-dependent update payload.
func (w *Profile) updateFields(draft client.Profile) client.ProfileUpdate {
	update := client.ProfileUpdate{
		Email:       draft.Email,
		FirstName:   draft.FirstName,
		LastName:    draft.LastName,
		PhoneNumber: draft.PhoneNumber,
		Gender:      draft.Gender,
	}

	switch w.role {
	case session.RoleStudent:
		update.PresentAddress = draft.PresentAddress
		update.PermanentAddress = draft.PermanentAddress
		update.Education = draft.Education
		update.Experience = draft.Experience
		update.Disabilities = draft.Disabilities
		update.ResumePath = draft.ResumePath
		if draft.Mentor != nil {
			update.MentorUsername = draft.Mentor.Username
		}
	case session.RoleFaculty:
		update.Department = draft.Department
		update.EmployeeID = draft.EmployeeID
	}

	return update
}
