package grover

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

/*
Q is the worker pool that sampling partitions run on. Jobs go through a single
channel, any idle worker picks them up, and results come back through the
QuantumSpace keyed by job id.
*/
type Q struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	jobs      chan Job
	space     *QuantumSpace
	metrics   *Metrics
	config    *Config
	batch     atomic.Uint64
	closeMu   sync.RWMutex
	closeOnce sync.Once
}

// NewQ starts a pool with the given number of workers
func NewQ(ctx context.Context, workers int, config *Config) *Q {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Q{
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan Job, workers*10),
		space:   newQuantumSpace(),
		metrics: NewMetrics(),
		config:  config.normalized(),
	}

	for i := 0; i < workers; i++ {
		q.startWorker()
	}

	return q
}

/*
Schedule queues fn under id and returns the channel its result arrives on. If
the queue stays full past the scheduling timeout, or the pool is closed, the
channel carries the error instead.
*/
func (q *Q) Schedule(id string, fn func() (any, error)) chan QuantumValue {
	ctx, cancel := context.WithTimeout(q.ctx, q.getSchedulingTimeout())
	defer cancel()

	job := Job{
		ID:        id,
		Fn:        fn,
		StartTime: time.Now(),
	}

	result := q.space.Await(id)

	// Close waits for the write lock, so nothing is queued after the final drain.
	q.closeMu.RLock()
	defer q.closeMu.RUnlock()

	if err := q.ctx.Err(); err != nil {
		q.metrics.recordSchedulingFailure()
		q.space.Store(id, nil, fmt.Errorf("pool closed: %w", err))
		return result
	}

	select {
	case q.jobs <- job:
		return result
	case <-ctx.Done():
		q.metrics.recordSchedulingFailure()
		Logger.Warn("job not scheduled", "job", id, "err", ctx.Err())
		q.space.Store(id, nil, fmt.Errorf("job scheduling timeout: %w", ctx.Err()))
		return result
	}
}

// nextBatch returns a fresh id prefix for one sampling run.
func (q *Q) nextBatch() uint64 {
	return q.batch.Add(1)
}

func (q *Q) Metrics() *Metrics {
	return q.metrics
}

func (q *Q) startWorker() {
	worker := &Worker{pool: q}

	q.metrics.mu.Lock()
	q.metrics.WorkerCount++
	q.metrics.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		worker.run()
	}()
}

func (q *Q) getSchedulingTimeout() time.Duration {
	if q.config != nil && q.config.SchedulingTimeout > 0 {
		return q.config.SchedulingTimeout
	}
	return 5 * time.Second
}

/*
Close stops every worker and waits for them to exit. Jobs still queued at that
point are answered with a "pool closed" error, so no caller of Schedule waits
forever. Safe to call twice.
*/
func (q *Q) Close() {
	if q == nil {
		return
	}

	q.closeOnce.Do(func() {
		q.cancel()

		// barrier: every Schedule that saw the pool open has finished queueing
		q.closeMu.Lock()
		q.closeMu.Unlock()

		q.wg.Wait()
		dropped := q.drain()

		Logger.Debug("pool closed", "jobs", q.metrics.JobCount, "dropped", dropped)
	})
}

// drain answers every job left in the queue with the closing error.
func (q *Q) drain() int {
	dropped := 0
	for {
		select {
		case job := <-q.jobs:
			q.space.Store(job.ID, nil, fmt.Errorf("pool closed: %w", q.ctx.Err()))
			dropped++
		default:
			return dropped
		}
	}
}
