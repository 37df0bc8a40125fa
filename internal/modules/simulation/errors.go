package simulation

import "errors"

var (
	// ErrSimulation indicates the simulation primitive failed. The original
	// cause is attached via wrapping. Fatal, never retried: the solve is
	// deterministic for fixed inputs, so a retry cannot change the outcome.
	ErrSimulation = errors.New("simulation failed")

	// ErrConvergence indicates the solver did not meet its tolerances within
	// the configured iteration limit. Fatal, never retried for the same reason.
	ErrConvergence = errors.New("simulation did not converge within iteration limit")
)
