package sandphys

import "errors"

// Construction-time preconditions are the only hard failures this
// engine surfaces; every per-tick and per-cell condition degrades
// silently instead of erroring.
var (
	ErrZeroDimensions = errors.New("sandphys: world width and height must be positive")
	ErrEmptyWorld     = errors.New("sandphys: world must contain at least one chunk")
)

// WorldError wraps a construction-time failure with the offending
// dimensions, while still satisfying errors.Is against the sentinels
// above.
type WorldError struct {
	Op   string
	Err  error
	W, H int
}

func (e *WorldError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *WorldError) Unwrap() error { return e.Err }
