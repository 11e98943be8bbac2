// Package sequence runs timed action chains: respawn beats, level intros
// and other scripted moments that fire host actions after fixed delays.
package sequence

import "fmt"

// Step is one beat of a sequence: wait Delay seconds, then run Do.
type Step struct {
	Name  string
	Delay float64
	Do    func()
}

// Runner plays steps strictly in order. A large dt can complete several
// steps in one update, but never out of order.
type Runner struct {
	steps    []Step
	idx      int
	elapsed  float64
	canceled bool
}

func NewRunner(steps []Step) (*Runner, error) {
	for i, s := range steps {
		if s.Do == nil {
			return nil, fmt.Errorf("sequence: step %d (%q) has no action", i, s.Name)
		}
		if s.Delay < 0 {
			return nil, fmt.Errorf("sequence: step %d (%q) has negative delay %v", i, s.Name, s.Delay)
		}
	}
	return &Runner{steps: steps}, nil
}

// Update advances the sequence by dt seconds and fires every step whose
// delay has elapsed.
func (r *Runner) Update(dt float64) {
	if r.Done() {
		return
	}
	r.elapsed += dt
	for r.idx < len(r.steps) && !r.canceled {
		step := r.steps[r.idx]
		if r.elapsed < step.Delay {
			return
		}
		r.elapsed -= step.Delay
		r.idx++
		step.Do()
	}
}

// Cancel abandons the remaining steps. Steps already fired stay fired.
func (r *Runner) Cancel() {
	r.canceled = true
}

// Done reports whether the sequence has finished or was canceled.
func (r *Runner) Done() bool {
	return r.canceled || r.idx >= len(r.steps)
}
