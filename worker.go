package grover

import "fmt"

// Worker processes jobs
type Worker struct {
	pool *Q
}

func (w *Worker) run() {
	for {
		select {
		case <-w.pool.ctx.Done():
			return
		case job := <-w.pool.jobs:
			if err := w.pool.ctx.Err(); err != nil {
				w.pool.space.Store(job.ID, nil, fmt.Errorf("pool closed: %w", err))
				continue
			}

			result, err := w.processJob(job)
			w.pool.space.Store(job.ID, result, err)
		}
	}
}

/*
processJob runs a job exactly once. Sampling jobs fail only on programmer
error, so there is nothing worth retrying. A panicking job is turned into an
error so the waiting scheduler is always answered.
*/
func (w *Worker) processJob(job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
		w.pool.metrics.recordJobExecution(job.StartTime, err == nil)
		if err != nil {
			Logger.Warn("job failed", "job", job.ID, "err", err)
		}
	}()

	return job.Fn()
}
