package grover

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/theapemachine/errnie"
)

// CircuitState is the lifecycle stage of a Grover circuit.
type CircuitState int

const (
	CircuitBuilt    CircuitState = iota // initial Hadamard applied
	CircuitReady                        // all Grover iterations applied
	CircuitExecuted                     // sampled at least once
)

func (cs CircuitState) String() string {
	switch cs {
	case CircuitBuilt:
		return "built"
	case CircuitReady:
		return "ready"
	case CircuitExecuted:
		return "executed"
	default:
		return fmt.Sprintf("CircuitState(%d)", int(cs))
	}
}

// Iterations returns floor(π/4 · √(2^n)).
func Iterations(n int) int {
	if n < 0 {
		return 0
	}
	return int(math.Floor(math.Pi / 4 * math.Sqrt(float64(uint64(1)<<uint(n)))))
}

/*
Circuit is a Grover search circuit driven over a Backend. Construction does all
the unitary work: H⊗n on |0⟩, then Iterations(n) rounds of

	Z_f → H⊗n → Z_0 → H⊗n → -I

after which the final state is fixed and Run only samples it.

The iteration count assumes exactly one marked string. Several marked strings
are all reflected, which is the multi-solution generalization, but the count
is not adjusted for them. No marked string leaves the uniform superposition.
*/
type Circuit struct {
	mu         sync.Mutex
	backend    Backend
	operators  *Operators
	config     *Config
	iterations int
	state      CircuitState
}

func NewCircuit(backend Backend, ops *Operators, cfg *Config) (*Circuit, error) {
	cfg = cfg.normalized()

	if backend.Qubits() != ops.Qubits {
		return nil, fmt.Errorf(
			"operators for %d qubits on a %d-qubit backend: %w",
			ops.Qubits, backend.Qubits(), ErrInvalidDimension,
		)
	}

	c := &Circuit{
		backend:    backend,
		operators:  ops,
		config:     cfg,
		iterations: Iterations(ops.Qubits),
	}

	if ops.Marked != 1 {
		Logger.Warn(
			"oracle does not mark exactly one string, iteration count assumes one",
			"marked", ops.Marked, "iterations", c.iterations,
		)
	}

	if err := c.step("hadamard", c.backend.ApplyHadamard); err != nil {
		return nil, err
	}
	c.state = CircuitBuilt

	for round := 0; round < c.iterations; round++ {
		if err := c.iterate(); err != nil {
			return nil, fmt.Errorf("grover iteration %d: %w", round, err)
		}
	}

	if err := backend.Validate(cfg.Tolerance); err != nil {
		return nil, err
	}
	c.state = CircuitReady

	errnie.Info(
		"NewCircuit - qubits %d, iterations %d, marked %d",
		ops.Qubits, c.iterations, ops.Marked,
	)

	return c, nil
}

type circuitStep struct {
	name  string
	apply func() error
}

// iterate applies one Grover round.
func (c *Circuit) iterate() error {
	steps := []circuitStep{
		{"oracle", c.diagonal(c.operators.Oracle)},
		{"hadamard", c.backend.ApplyHadamard},
		{"zero", c.diagonal(c.operators.Zero)},
		{"hadamard", c.backend.ApplyHadamard},
	}

	if c.config.GlobalNegation {
		steps = append(steps, circuitStep{"negation", c.diagonal(c.operators.Negation)})
	}

	for _, s := range steps {
		if err := c.step(s.name, s.apply); err != nil {
			return err
		}
	}
	return nil
}

func (c *Circuit) diagonal(signs SignVector) func() error {
	return func() error {
		return c.backend.ApplyDiagonal(signs)
	}
}

// step applies one operator and, in strict mode, checks the norm right after.
func (c *Circuit) step(name string, apply func() error) error {
	if err := apply(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if c.config.StrictNormalization {
		if err := c.backend.Validate(c.config.Tolerance); err != nil {
			return fmt.Errorf("after %s: %w", name, err)
		}
	}
	return nil
}

/*
Run samples the final state trials times using seed. It may be called any
number of times; the circuit is never rebuilt, so the same seed always yields
the same counts.
*/
func (c *Circuit) Run(ctx context.Context, trials int, seed int64) (Counts, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%d trials: %w", trials, ErrInvalidTrialCount)
	}

	if c.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RunTimeout)
		defer cancel()
	}

	counts, err := c.backend.Sample(ctx, trials, seed)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.state = CircuitExecuted
	c.mu.Unlock()

	return counts, nil
}

// SetQubits always fails: the register size is fixed at construction.
func (c *Circuit) SetQubits(n int) error {
	return fmt.Errorf("set qubits to %d on %s circuit: %w", n, c.State(), ErrImmutableCircuit)
}

// SetOracle always fails: the oracle reflection is fixed at construction.
func (c *Circuit) SetOracle(Oracle) error {
	return fmt.Errorf("set oracle on %s circuit: %w", c.State(), ErrImmutableCircuit)
}

func (c *Circuit) State() CircuitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Circuit) Iterations() int {
	return c.iterations
}

func (c *Circuit) Operators() *Operators {
	return c.operators
}

func (c *Circuit) Backend() Backend {
	return c.backend
}
