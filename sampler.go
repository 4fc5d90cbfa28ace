package grover

import (
	"context"
	"fmt"
	"math/bits"
	"sort"
)

/*
Sampler draws measurement outcomes from a fixed distribution by inverting its
cumulative distribution. The prefix sums are built once in O(N), every draw is
a binary search in O(log N). A Sampler never mutates, so one instance can be
shared by any number of goroutines as long as each brings its own Source.
*/
type Sampler struct {
	cdf    []float64
	total  float64
	qubits int
}

/*
NewSampler prepares a sampler over 2^n outcomes. probabilities need not sum to
exactly one; draws are scaled by the actual total.
*/
func NewSampler(probabilities []float64) (*Sampler, error) {
	n := len(probabilities)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%d outcomes is not a register of n >= 1 qubits: %w", n, ErrInvalidDimension)
	}

	cdf := make([]float64, n)
	total := 0.0
	for i, p := range probabilities {
		if p > 0 {
			total += p
		}
		cdf[i] = total
	}

	if total <= 0 {
		return nil, fmt.Errorf("distribution has no mass: %w", ErrNumericDrift)
	}

	return &Sampler{
		cdf:    cdf,
		total:  total,
		qubits: bits.TrailingZeros(uint(n)),
	}, nil
}

// Qubits returns n for the 2^n outcomes.
func (s *Sampler) Qubits() int {
	return s.qubits
}

// Draw returns the basis index of one measurement.
func (s *Sampler) Draw(rng Source) int {
	r := rng.Float64() * s.total

	idx := sort.Search(len(s.cdf), func(i int) bool {
		return s.cdf[i] > r
	})
	if idx == len(s.cdf) {
		idx--
	}
	return idx
}

/*
Sample draws trials outcomes and returns the counts of those that occurred.
Outcomes never drawn are absent. A nil rng uses the default seed.
*/
func (s *Sampler) Sample(trials int, rng Source) (Counts, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%d trials: %w", trials, ErrInvalidTrialCount)
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}

	hits := make(map[int]int)
	for t := 0; t < trials; t++ {
		hits[s.Draw(rng)]++
	}

	counts := make(Counts, len(hits))
	for idx, n := range hits {
		counts[Bitstring(idx, s.qubits)] = n
	}
	return counts, nil
}

// Sample is the one-shot form of NewSampler followed by Sampler.Sample.
func Sample(probabilities []float64, trials int, rng Source) (Counts, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%d trials: %w", trials, ErrInvalidTrialCount)
	}

	s, err := NewSampler(probabilities)
	if err != nil {
		return nil, err
	}
	return s.Sample(trials, rng)
}

/*
SampleParallel splits trials into partitions and runs them on the pool. Each
partition draws from its own rng stream derived from (seed, partition index),
and the partial counts are summed. The result depends on seed and the number of
partitions only, never on how many workers happen to run them.
*/
func (s *Sampler) SampleParallel(ctx context.Context, q *Q, trials int, seed int64, partitions int) (Counts, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%d trials: %w", trials, ErrInvalidTrialCount)
	}

	partitions = max(1, min(partitions, trials))
	batch := q.nextBatch()

	results := make([]chan QuantumValue, partitions)
	for p := 0; p < partitions; p++ {
		share := trials / partitions
		if p < trials%partitions {
			share++
		}

		rng := deriveRNG(seed, uint64(p))
		results[p] = q.Schedule(fmt.Sprintf("sample-%d-%d", batch, p), func() (any, error) {
			return s.Sample(share, rng)
		})
	}

	total := make(Counts)
	for p, ch := range results {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("sampling partition %d: %w", p, ctx.Err())
		case qv := <-ch:
			if qv.Error != nil {
				return nil, fmt.Errorf("sampling partition %d: %w", p, qv.Error)
			}
			total.merge(qv.Value.(Counts))
		}
	}

	q.metrics.recordSamples(trials)
	Logger.Debug("sampled", "trials", trials, "partitions", partitions, "outcomes", len(total))

	return total, nil
}
