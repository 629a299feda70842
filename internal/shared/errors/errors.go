package errors

import "errors"

// Domain errors. Probe failures are values inside results and never
// surface here; these sentinels cover invalid input rejected at the
// API and CLI boundaries.
var (
	ErrInvalidMode = errors.New("invalid explanation mode")
	ErrEmptyTarget = errors.New("target cannot be empty")
)
