// Package equilibrium implements the running-average steady-state test
// that terminates the meaningful portion of a trajectory.
package equilibrium

import "math"

// Detector decides whether a recorded signal has stabilized by comparing
// the mean of its trailing window against the most recent sample. It is a
// heuristic settled test, not a fixed-point proof: it assumes state
// magnitudes of order one, for which a tight absolute tolerance is
// meaningful.
type Detector struct {
	// Window is the number of most recent samples to average, clipped to
	// the history length.
	Window int

	// Tolerance is the absolute threshold on |mean(window) - last|.
	Tolerance float64
}

// Settled reports whether history has stabilized. A window holding fewer
// than two samples is never settled, so nothing fires at the very start of
// a trajectory. Non-finite samples make the mean non-finite and the
// comparison false.
func (d Detector) Settled(history []float64) bool {
	w := d.Window
	if w > len(history) {
		w = len(history)
	}
	if w < 2 {
		return false
	}
	sum := 0.0
	for _, v := range history[len(history)-w:] {
		sum += v
	}
	mean := sum / float64(w)
	return math.Abs(mean-history[len(history)-1]) < d.Tolerance
}

// SettledAll reports whether every history has independently settled.
// Equilibrium is a property of the coupled system, so the joint test is a
// conjunction over all tracked quantities.
func (d Detector) SettledAll(histories ...[]float64) bool {
	if len(histories) == 0 {
		return false
	}
	for _, h := range histories {
		if !d.Settled(h) {
			return false
		}
	}
	return true
}
