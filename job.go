package grover

import "time"

// Job represents one unit of sampling work
type Job struct {
	ID        string
	Fn        func() (any, error)
	StartTime time.Time
}
