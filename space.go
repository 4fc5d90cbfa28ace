package grover

import (
	"sync"
	"time"
)

// QuantumValue wraps a job result with metadata
type QuantumValue struct {
	Value     any
	Error     error
	CreatedAt time.Time
}

/*
QuantumSpace is the rendezvous between workers and whoever scheduled a job.
Workers Store results by job id, schedulers Await them. A value is handed out
exactly once and forgotten afterwards, so the space does not grow across runs.
*/
type QuantumSpace struct {
	mu      sync.Mutex
	values  map[string]QuantumValue
	waiting map[string][]chan QuantumValue
}

func newQuantumSpace() *QuantumSpace {
	return &QuantumSpace{
		values:  make(map[string]QuantumValue),
		waiting: make(map[string][]chan QuantumValue),
	}
}

// Store stores a value and wakes up anyone waiting for it
func (qs *QuantumSpace) Store(id string, value any, err error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qv := QuantumValue{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
	}

	channels, ok := qs.waiting[id]
	if !ok {
		qs.values[id] = qv
		return
	}

	for _, ch := range channels {
		ch <- qv
		close(ch)
	}
	delete(qs.waiting, id)
	Logger.Debug("delivered result", "job", id, "waiters", len(channels))
}

// Await returns a channel that receives the value once it is stored
func (qs *QuantumSpace) Await(id string) chan QuantumValue {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	ch := make(chan QuantumValue, 1)

	if qv, ok := qs.values[id]; ok {
		ch <- qv
		close(ch)
		delete(qs.values, id)
		return ch
	}

	qs.waiting[id] = append(qs.waiting[id], ch)
	return ch
}

// Pending reports how many stored values and waiters are outstanding.
func (qs *QuantumSpace) Pending() (values, waiters int) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	for _, chans := range qs.waiting {
		waiters += len(chans)
	}
	return len(qs.values), waiters
}
