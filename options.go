package grover

import "time"

// Option configures a Solver.
type Option func(*solverOptions)

type solverOptions struct {
	config  *Config
	backend func(n int, cfg *Config) (Backend, error)
}

// WithConfig replaces the whole configuration. Later options still apply on top.
func WithConfig(cfg *Config) Option {
	return func(o *solverOptions) {
		if cfg != nil {
			c := *cfg
			o.config = &c
		}
	}
}

// WithSeed seeds the stream Run draws its sampling seeds from.
func WithSeed(seed int64) Option {
	return func(o *solverOptions) {
		o.config.Seed = seed
	}
}

// WithWorkers sets the size of the sampling pool.
func WithWorkers(workers int) Option {
	return func(o *solverOptions) {
		o.config.Workers = workers
	}
}

// WithPartitions sets how many independent rng substreams a run is split into.
func WithPartitions(partitions int) Option {
	return func(o *solverOptions) {
		o.config.Partitions = partitions
	}
}

// WithTolerance sets the accepted normalization drift.
func WithTolerance(tolerance float64) Option {
	return func(o *solverOptions) {
		o.config.Tolerance = tolerance
	}
}

// WithStrictNormalization checks the norm after every operator, not just at the end.
func WithStrictNormalization() Option {
	return func(o *solverOptions) {
		o.config.StrictNormalization = true
	}
}

/*
WithoutGlobalNegation drops the -I step from every Grover round. Only the
global phase of the final state changes; every measured probability is the same.
*/
func WithoutGlobalNegation() Option {
	return func(o *solverOptions) {
		o.config.GlobalNegation = false
	}
}

// WithRunTimeout bounds each Run on top of the caller's context.
func WithRunTimeout(timeout time.Duration) Option {
	return func(o *solverOptions) {
		o.config.RunTimeout = timeout
	}
}

// WithBackend swaps the state-vector simulator for another Backend.
func WithBackend(factory func(n int, cfg *Config) (Backend, error)) Option {
	return func(o *solverOptions) {
		o.backend = factory
	}
}
