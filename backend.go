package grover

import (
	"context"
	"fmt"
	"sync"
)

// Capabilities describes what a backend can do
type Capabilities struct {
	Name        string
	MaxQubits   int
	IsSimulator bool
	Parallel    bool
}

/*
Backend is everything a Grover circuit needs from whatever executes it: the
Hadamard transform over the whole register, diagonal ±1 operators, and
measurement sampling. The in-process state-vector Simulator is the only
implementation; a hardware adapter would slot in behind the same methods.
*/
type Backend interface {
	Qubits() int
	ApplyHadamard() error
	ApplyDiagonal(signs SignVector) error
	Probabilities() []float64
	Validate(tolerance float64) error
	Sample(ctx context.Context, trials int, seed int64) (Counts, error)
	Capabilities() Capabilities
	Close()
}

/*
Simulator runs a circuit on a StateVector and samples it on a worker pool.
The sampler is built lazily from the state on the first Sample call and
dropped again whenever the state is mutated.
*/
type Simulator struct {
	mu      sync.Mutex
	state   *StateVector
	config  *Config
	pool    *Q
	sampler *Sampler
}

func NewSimulator(n int, cfg *Config) (*Simulator, error) {
	cfg = cfg.normalized()

	state, err := NewStateVector(n, cfg)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		state:  state,
		config: cfg,
		pool:   NewQ(context.Background(), cfg.Workers, cfg),
	}, nil
}

func (sim *Simulator) Qubits() int {
	return sim.state.NumQubits
}

// State exposes the underlying vector for inspection.
func (sim *Simulator) State() *StateVector {
	return sim.state
}

func (sim *Simulator) ApplyHadamard() error {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	sim.state.ApplyHadamardAll()
	sim.sampler = nil
	return nil
}

func (sim *Simulator) ApplyDiagonal(signs SignVector) error {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	sim.sampler = nil
	return sim.state.ApplyDiagonalSign(signs)
}

func (sim *Simulator) Probabilities() []float64 {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	return sim.state.Probabilities()
}

func (sim *Simulator) Validate(tolerance float64) error {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	return sim.state.Validate(tolerance)
}

func (sim *Simulator) Sample(ctx context.Context, trials int, seed int64) (Counts, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%d trials: %w", trials, ErrInvalidTrialCount)
	}

	sim.mu.Lock()
	if sim.sampler == nil {
		sampler, err := NewSampler(sim.state.Probabilities())
		if err != nil {
			sim.mu.Unlock()
			return nil, err
		}
		sim.sampler = sampler
	}
	sampler := sim.sampler
	sim.mu.Unlock()

	return sampler.SampleParallel(ctx, sim.pool, trials, seed, sim.config.Partitions)
}

func (sim *Simulator) Capabilities() Capabilities {
	return Capabilities{
		Name:        "statevector",
		MaxQubits:   NewResourceGovernor(sim.config).MaxQubits(),
		IsSimulator: true,
		Parallel:    sim.config.Workers > 1,
	}
}

// Metrics returns the sampling pool metrics.
func (sim *Simulator) Metrics() *Metrics {
	return sim.pool.Metrics()
}

// Close stops the sampling pool. Sampling afterwards fails with a scheduling error.
func (sim *Simulator) Close() {
	sim.pool.Close()

	sim.mu.Lock()
	sim.sampler = nil
	sim.mu.Unlock()
}
