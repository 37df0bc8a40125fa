package sampling

import "errors"

// ErrDimension indicates a density matrix whose dimension is not the expected
// power of two. This is a contract violation between the simulation adapter
// and the distribution builder — a bug, not a recoverable user error.
var ErrDimension = errors.New("density matrix dimension mismatch")
