// ABOUTME: Shared pieces for the role-scoped workflows
// ABOUTME: Generation counter that drops stale fetch results

package workflow

// generation guards a workflow against stale responses. Every (re)load bumps
// the counter; a result produced under an older generation is dropped
// instead of applied. Workflows are single-goroutine: Begin and Apply run on
// the owning loop, only the state-free calls (Fetch, Send,
// RecordApplication) run concurrently.
type generation struct {
	n uint64
}

// begin starts a new load and returns its generation.
func (g *generation) begin() uint64 {
	g.n++
	return g.n
}

// current reports whether gen is still the live load.
func (g *generation) current(gen uint64) bool {
	return gen == g.n
}
