// Package trace records what happened at the clerk during a simulation run.
// This package has no dependencies on sim/: it stores plain data types.
package trace

import "time"

// Outcome describes how an occupancy interval ended.
type Outcome string

const (
	// OutcomeCompleted means the occupant's remaining service ran out.
	OutcomeCompleted Outcome = "completed"
	// OutcomePreempted means a higher-ranked customer took the clerk.
	OutcomePreempted Outcome = "preempted"
	// OutcomeOpen marks an interval that never closed (the task failed).
	OutcomeOpen Outcome = "open"
)

// EventRecord captures a single scheduling notification.
type EventRecord struct {
	Kind       string        `yaml:"kind"`
	CustomerID int           `yaml:"customer"`
	OtherID    int           `yaml:"other,omitempty"`
	At         time.Duration `yaml:"at"`
	Remaining  int64         `yaml:"remaining"` // ticks
}

// ArrivalRecord captures when a customer showed up and how much service it declared.
type ArrivalRecord struct {
	CustomerID int           `yaml:"customer"`
	At         time.Duration `yaml:"at"`
	Service    int64         `yaml:"service"` // ticks
}

// ServiceRecord captures one interval during which a customer held the clerk.
type ServiceRecord struct {
	CustomerID int           `yaml:"customer"`
	Start      time.Duration `yaml:"start"`
	End        time.Duration `yaml:"end"`
	Outcome    Outcome       `yaml:"outcome"`
}

// Duration returns the length of the interval.
func (r ServiceRecord) Duration() time.Duration {
	return r.End - r.Start
}
