package grover

import "errors"

/*
Sentinel errors returned by the simulator. Every one of them describes a
programmer or input-validation mistake, so none is ever retried. Callers match
them with errors.Is; context is added at the boundary with fmt.Errorf("...: %w").
*/
var (
	// ErrInvalidDimension is returned when the qubit count is out of the
	// supported range, or an operator does not match the register size.
	ErrInvalidDimension = errors.New("grover: invalid dimension")

	// ErrInvalidTrialCount is returned when fewer than one trial is requested.
	ErrInvalidTrialCount = errors.New("grover: invalid trial count")

	// ErrImmutableCircuit is returned when the qubit count or oracle of an
	// already built circuit is changed.
	ErrImmutableCircuit = errors.New("grover: circuit is immutable once built")

	// ErrNumericDrift is returned when the state vector is no longer normalized
	// within tolerance. It points at a simulation bug and is never corrected.
	ErrNumericDrift = errors.New("grover: normalization drift beyond tolerance")
)
