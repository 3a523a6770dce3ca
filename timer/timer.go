// Package timer measures elapsed wall time for a lexical scope and reports
// it as a single line in the form "[<label>] took <ms> ms.".
package timer

import (
	"fmt"
	"io"
	"time"
)

// Scope brackets one measured region. Begin it, run the region, and End it
// (deferring End guarantees the report fires on every exit path, including
// a panic). A Scope is not reused after End.
type Scope struct {
	w       io.Writer
	label   string
	start   time.Time
	elapsed time.Duration
	ended   bool
}

// Begin starts measuring and returns the scope handle. time.Since reads the
// monotonic clock, so the measurement is immune to wall-clock adjustments.
func Begin(w io.Writer, label string) *Scope {
	return &Scope{
		w:     w,
		label: label,
		start: time.Now(),
	}
}

// End stops the measurement and emits the report line. It reports exactly
// once: calling End again is a no-op, so an explicit End followed by a
// deferred one is safe.
func (s *Scope) End() {
	if s.ended {
		return
	}

	s.elapsed = time.Since(s.start)
	s.ended = true

	fmt.Fprintf(s.w, "[%s] took %.4f ms.\n", s.label, s.ElapsedMs())
}

// Elapsed returns the measured duration. Zero until End has run.
func (s *Scope) Elapsed() time.Duration { return s.elapsed }

// ElapsedMs returns the measured duration in milliseconds.
func (s *Scope) ElapsedMs() float64 {
	return float64(s.elapsed.Nanoseconds()) / 1e6
}
