package grover

import (
	"fmt"
	"runtime"
)

// amplitudeBytes is the size of one complex128 amplitude.
const amplitudeBytes = 16

/*
ResourceGovernor decides whether a register of n qubits may be allocated. The
state vector grows as 2^n, so an absurd n is memory-bound rather than slow, and
it has to be refused before anything is allocated.

Two limits apply:
  - a qubit ceiling (Config.MaxQubits, capped at DefaultMaxQubits unless
    AllowLargeRegisters is set, and at HardMaxQubits always)
  - an optional byte budget for the amplitude array
*/
type ResourceGovernor struct {
	maxQubits    int
	memoryBudget uint64
}

func NewResourceGovernor(cfg *Config) *ResourceGovernor {
	cfg = cfg.normalized()

	limit := cfg.MaxQubits
	if !cfg.AllowLargeRegisters && limit > DefaultMaxQubits {
		limit = DefaultMaxQubits
	}
	if limit > HardMaxQubits {
		limit = HardMaxQubits
	}

	return &ResourceGovernor{
		maxQubits:    limit,
		memoryBudget: cfg.MemoryBudget,
	}
}

// MaxQubits returns the effective qubit ceiling.
func (rg *ResourceGovernor) MaxQubits() int {
	return rg.maxQubits
}

// RegisterBytes is the size of the amplitude array for n qubits.
func RegisterBytes(n int) uint64 {
	return uint64(amplitudeBytes) << uint(n)
}

/*
Admit returns ErrInvalidDimension when an n-qubit register is out of range or
would not fit the configured budget.
*/
func (rg *ResourceGovernor) Admit(n int) error {
	if n <= 0 {
		return fmt.Errorf("%d qubits: %w", n, ErrInvalidDimension)
	}

	if n > rg.maxQubits {
		return fmt.Errorf("%d qubits exceeds ceiling of %d: %w", n, rg.maxQubits, ErrInvalidDimension)
	}

	need := RegisterBytes(n)
	if rg.memoryBudget > 0 && need > rg.memoryBudget {
		return fmt.Errorf(
			"%d qubits needs %d bytes, budget is %d: %w",
			n, need, rg.memoryBudget, ErrInvalidDimension,
		)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	Logger.Debug("register admitted", "qubits", n, "bytes", need, "heap_alloc", memStats.HeapAlloc)

	return nil
}
