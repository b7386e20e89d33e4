// Package drawing implements the continuous, localized re-assignment
// solver that backs interactive painting: it never converges and never
// terminates on its own, only on cancellation, and keeps contiguous
// stroke regions together via a large negative heuristic bonus.
package drawing

import "sync"

// Edit is one brush event from the host: position p now belongs to
// strokeID, as of this instant.
type Edit struct {
	Position int
	StrokeID int
}

// State is the per-pixel bookkeeping the solver reads every trial:
// which stroke (if any) owns each position, and how long it has been
// since that position was last touched by an edit. Spec frames this as a
// monotonically-decreasing logical tick ("lastEdited"); this keeps the
// equivalent information as a plain non-negative age that increments once
// per generation and resets to 0 on edit, which is simpler to reason about
// and identical in effect (maxDist only ever consumes the *age*, i.e.
// "0 - lastEdited").
type State struct {
	mu       sync.Mutex
	strokeID []int
	age      []int
}

// NewState builds drawing state for n positions, all unedited (age 0,
// stroke 0) to start.
func NewState(n int) *State {
	return &State{
		strokeID: make([]int, n),
		age:      make([]int, n),
	}
}

// Apply applies a batch of edits: each touched position's stroke id is set
// and its age resets to 0.
func (s *State) Apply(edits []Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range edits {
		s.strokeID[e.Position] = e.StrokeID
		s.age[e.Position] = 0
	}
}

// Tick ages every position by one generation. Called once per solver
// generation, after trials for that generation complete.
func (s *State) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.age {
		s.age[i]++
	}
}

// snapshot returns a private copy of the stroke/age arrays for the
// solver's trial loop to read without holding the lock across many trials.
func (s *State) snapshot() (strokeID, age []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strokeID = append([]int(nil), s.strokeID...)
	age = append([]int(nil), s.age...)
	return
}
