// ABOUTME: Batch edit reconciler for multi-row data entry
// ABOUTME: Tracks per-row edits and submits them as one all-or-nothing batch

package editor

import (
	"context"
	"time"
)

// ValidationError is a local, pre-network failure. Submissions that fail
// validation never reach the gateway.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Editor holds a local editable copy of a list of row records. Rows are
// keyed by a stable key (typically a username) and carry one mutable field
// set each. The editor is confined to a single goroutine; the CLI and TUI
// only touch it between await points.
type Editor[K comparable, V any] struct {
	keys     []K
	defaults func(K) V
	entries  map[K]V

	err       error
	notice    string
	noticeAt  time.Time
	noticeTTL time.Duration

	now func() time.Time
}

// New creates an editor whose success notices auto-clear after noticeTTL.
func New[K comparable, V any](noticeTTL time.Duration) *Editor[K, V] {
	return &Editor[K, V]{
		noticeTTL: noticeTTL,
		now:       time.Now,
	}
}

// SetClock injects a clock for tests.
func (e *Editor[K, V]) SetClock(now func() time.Time) {
	e.now = now
}

// Init builds one editable entry per source row, each set to its default.
// It runs whenever the source list (re)loads and replaces any prior map:
// unsaved edits do not survive a reload.
func (e *Editor[K, V]) Init(keys []K, defaults func(K) V) {
	e.keys = make([]K, len(keys))
	copy(e.keys, keys)
	e.defaults = defaults
	e.reset()
	e.err = nil
	e.notice = ""
}

// Rebase replaces the row set and defaults without disturbing the visible
// notice or error. Init is for fresh loads; Rebase installs a server
// response as the new baseline after a successful submit.
func (e *Editor[K, V]) Rebase(keys []K, defaults func(K) V) {
	e.keys = make([]K, len(keys))
	copy(e.keys, keys)
	e.defaults = defaults
	e.reset()
}

func (e *Editor[K, V]) reset() {
	e.entries = make(map[K]V, len(e.keys))
	for _, k := range e.keys {
		e.entries[k] = e.defaults(k)
	}
}

// Update mutates exactly one row's entry. Unknown keys are ignored. Any
// visible error clears: an edit is the user's corrective action.
func (e *Editor[K, V]) Update(key K, mutate func(*V)) {
	entry, ok := e.entries[key]
	if !ok {
		return
	}
	mutate(&entry)
	e.entries[key] = entry
	e.err = nil
}

// Get returns the current field set for a row.
func (e *Editor[K, V]) Get(key K) (V, bool) {
	v, ok := e.entries[key]
	return v, ok
}

// Keys returns the row keys in source order.
func (e *Editor[K, V]) Keys() []K {
	out := make([]K, len(e.keys))
	copy(out, e.keys)
	return out
}

// Len returns the number of rows.
func (e *Editor[K, V]) Len() int {
	return len(e.keys)
}

// Snapshot returns a copy of the editable map.
func (e *Editor[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, len(e.entries))
	for k, v := range e.entries {
		out[k] = v
	}
	return out
}

// Submit drives one batch submission. validate runs first; on failure no
// network call is made and the map is untouched. send carries the whole
// batch in one request — all-or-nothing. On failure the map is preserved so
// the user retries without re-entering; on success every row resets to its
// default and the notice is shown until its TTL elapses.
func (e *Editor[K, V]) Submit(ctx context.Context, notice string, validate func() error, send func(context.Context) error) error {
	if err := validate(); err != nil {
		e.Fail(err)
		return err
	}

	if err := send(ctx); err != nil {
		e.Fail(err)
		return err
	}

	e.Succeed(notice)
	return nil
}

// Fail records a submission failure. The map is untouched so the user can
// retry without re-entering.
func (e *Editor[K, V]) Fail(err error) {
	e.err = err
}

// Succeed installs a successful submission: every row resets to its default
// and the notice is shown until its TTL elapses. Like every other mutator
// it must run on the editor's owning goroutine.
func (e *Editor[K, V]) Succeed(notice string) {
	e.reset()
	e.err = nil
	e.notice = notice
	e.noticeAt = e.now()
}

// Err returns the current visible error, if any.
func (e *Editor[K, V]) Err() error {
	return e.err
}

// Notice returns the success notice while it is still fresh.
func (e *Editor[K, V]) Notice() (string, bool) {
	if e.notice == "" {
		return "", false
	}
	if e.now().Sub(e.noticeAt) >= e.noticeTTL {
		e.notice = ""
		return "", false
	}
	return e.notice, true
}
