package dynamics

import (
	"errors"
	"fmt"
)

var (
	// ErrDiverged indicates a non-finite state in strict mode.
	ErrDiverged = errors.New("dynamics: trajectory diverged (NaN or Inf state)")

	// ErrInvalidConfig indicates an unusable grid configuration.
	ErrInvalidConfig = errors.New("dynamics: invalid config")
)

// RunError wraps an error with the grid position where it occurred.
type RunError struct {
	Step    int
	U       float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d (u=%.6f): %v", e.Step, e.U, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
