package model

import "errors"

// Error taxonomy shared by both pipelines. Failures are wrapped with
// fmt.Errorf("...: %w", ...) and matched with errors.Is.
var (
	// ErrInvalidInput marks malformed or insufficient telemetry input.
	ErrInvalidInput = errors.New("invalid telemetry input")

	// ErrInvalidOrbit marks non-physical orbit parameters or insufficient
	// trajectory sampling.
	ErrInvalidOrbit = errors.New("invalid orbit")

	// ErrNumerical marks non-finite intermediate results, e.g. a NaN
	// distance out of a degenerate propagation.
	ErrNumerical = errors.New("numerical error")
)
