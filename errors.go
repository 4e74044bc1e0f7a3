package shapelets

import "errors"

// Configuration and dataset errors are surfaced before any mining work
// begins, per the error-handling contract: no partial output on failure.
var (
	ErrInvalidWindowRange = errors.New("shapelets: maxWindowSize is smaller than minWindowSize")
	ErrInvalidStride      = errors.New("shapelets: windowStride must be positive")
	ErrInvalidAlpha       = errors.New("shapelets: alpha must be in (0, 1)")
)
