package ising

import "errors"

// ErrModelExtraction indicates a problem that cannot be expressed in spin
// domain (unsupported vartype or invalid variable indexing). Fatal, surfaced
// immediately, never retried.
var ErrModelExtraction = errors.New("model cannot be cast to spin domain")
