package grover

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
Solver is the entry point: give it a qubit count and an oracle, and it builds
the reflections, runs the Grover circuit to its final state and samples
measurements from it on demand.

	solver, err := grover.NewSolver(3, grover.MatchOracle("100"))
	if err != nil {
		return err
	}
	defer solver.Close()

	counts, err := solver.Run(ctx, 1000)

The register size and oracle are fixed for the lifetime of the solver.
*/
type Solver struct {
	mu      sync.Mutex
	config  *Config
	backend Backend
	circuit *Circuit
	rng     *rand.Rand
}

func NewSolver(n int, oracle Oracle, opts ...Option) (*Solver, error) {
	o := &solverOptions{
		config:  NewConfig(),
		backend: func(n int, cfg *Config) (Backend, error) { return NewSimulator(n, cfg) },
	}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.config.normalized()

	if err := NewResourceGovernor(cfg).Admit(n); err != nil {
		return nil, err
	}

	ops, err := BuildOperators(n, oracle)
	if err != nil {
		return nil, err
	}

	backend, err := o.backend(n, cfg)
	if err != nil {
		return nil, err
	}

	circuit, err := NewCircuit(backend, ops, cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}

	errnie.Info("NewSolver - qubits %d, backend %s, seed %d", n, backend.Capabilities().Name, cfg.Seed)

	return &Solver{
		config:  cfg,
		backend: backend,
		circuit: circuit,
		rng:     rngFromSeed(cfg.Seed),
	}, nil
}

/*
Run measures the register trials times and returns how often each outcome bit
string occurred. Each call draws a fresh sampling seed from the solver's seeded
stream, so two solvers built with the same seed return the same sequence of
results.
*/
func (s *Solver) Run(ctx context.Context, trials int) (Counts, error) {
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()

	return s.RunSeeded(ctx, trials, seed)
}

// RunSeeded measures with an explicit seed. Same seed, same trials, same counts.
func (s *Solver) RunSeeded(ctx context.Context, trials int, seed int64) (Counts, error) {
	return s.circuit.Run(ctx, trials, seed)
}

/*
RunAndMeasure returns, per qubit index, that qubit's measured bit in every
trial. Qubit k is character k of the outcome bit string. Entry t of every slice
belongs to the same trial.
*/
func (s *Solver) RunAndMeasure(ctx context.Context, trials int) (map[int][]int, error) {
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()

	counts, err := s.RunSeeded(ctx, trials, seed)
	if err != nil {
		return nil, err
	}

	return PerQubitShots(counts, s.Qubits(), seed)
}

/*
PerQubitShots expands counts into one trial sequence and splits it per qubit.
The trial order is a shuffle seeded by seed, so the same counts and seed always
give the same arrays, and every array tallies back to exactly counts.
*/
func PerQubitShots(counts Counts, n int, seed int64) (map[int][]int, error) {
	shots := make([]string, 0, counts.Total())
	for _, outcome := range counts.Sorted() {
		if _, err := ParseBitstring(outcome.Bits); err != nil || len(outcome.Bits) != n {
			return nil, fmt.Errorf("outcome %q for %d qubits: %w", outcome.Bits, n, ErrInvalidDimension)
		}
		for i := 0; i < outcome.Count; i++ {
			shots = append(shots, outcome.Bits)
		}
	}

	shuffler := deriveRNG(seed, uint64(len(shots)))
	shuffler.Shuffle(len(shots), func(i, j int) {
		shots[i], shots[j] = shots[j], shots[i]
	})

	perQubit := make(map[int][]int, n)
	for q := 0; q < n; q++ {
		perQubit[q] = make([]int, len(shots))
	}

	for t, bits := range shots {
		for q := 0; q < n; q++ {
			if bits[q] == '1' {
				perQubit[q][t] = 1
			}
		}
	}

	return perQubit, nil
}

func (s *Solver) Qubits() int {
	return s.backend.Qubits()
}

func (s *Solver) Iterations() int {
	return s.circuit.Iterations()
}

// Marked is how many bit strings the oracle marks.
func (s *Solver) Marked() int {
	return s.circuit.Operators().Marked
}

func (s *Solver) State() CircuitState {
	return s.circuit.State()
}

// Probabilities returns the exact Born-rule distribution of the final state.
func (s *Solver) Probabilities() []float64 {
	return s.backend.Probabilities()
}

// QubitProbabilities returns the exact marginal P(0)/P(1) of every qubit.
func (s *Solver) QubitProbabilities() []QubitProbability {
	return marginals(s.backend.Probabilities(), s.Qubits())
}

// Circuit exposes the underlying circuit, mainly to observe its state.
func (s *Solver) Circuit() *Circuit {
	return s.circuit
}

func (s *Solver) Config() Config {
	return *s.config
}

// Metrics exports the sampling pool metrics, or nil for a backend without any.
func (s *Solver) Metrics() map[string]any {
	if m, ok := s.backend.(interface{ Metrics() *Metrics }); ok {
		return m.Metrics().ExportMetrics()
	}
	return nil
}

func (s *Solver) Close() {
	s.backend.Close()
}
