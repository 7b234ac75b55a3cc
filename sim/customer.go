// Defines the Customer struct that models one customer competing for the clerk.
// Tracks arrival, remaining service, priority and how much clerk time was consumed.

package sim

import (
	"fmt"
	"time"
)

// CustomerState represents the lifecycle state of a customer task.
type CustomerState string

const (
	StateWaitingArrival CustomerState = "waiting-arrival"
	StateRequesting     CustomerState = "requesting"
	StateInService      CustomerState = "in-service"
	StatePreempted      CustomerState = "preempted"
	StateCompleted      CustomerState = "completed"
	StateFailed         CustomerState = "failed"
)

// Customer is owned by its CustomerTask. The ClerkMonitor reads it only while
// holding its admission lock.
type Customer struct {
	ID           int   // Unique identifier, final tie-break key
	ArrivalTime  int64 // Arrival offset from simulation origin (in ticks)
	ServiceTime  int64 // Remaining service (in ticks); decremented on preemption
	TotalService int64 // Declared total service (in ticks), never modified
	Priority     int   // Higher = more urgent

	State       CustomerState
	Served      time.Duration // Wall time spent as occupant across all admissions
	Preemptions int           // Number of times this customer was evicted
}

// NewCustomer creates a Customer in StateWaitingArrival.
func NewCustomer(id int, arrival, service int64, priority int) *Customer {
	return &Customer{
		ID:           id,
		ArrivalTime:  arrival,
		ServiceTime:  service,
		TotalService: service,
		Priority:     priority,
		State:        StateWaitingArrival,
	}
}

// Rank returns the comparator snapshot of the customer's current attributes.
func (c *Customer) Rank() Rank {
	return Rank{ID: c.ID, Priority: c.Priority, ArrivalTime: c.ArrivalTime, ServiceTime: c.ServiceTime}
}

// This method returns a human-readable string representation of a Customer.
func (c Customer) String() string {
	return fmt.Sprintf("Customer: (ID: %d, State: %s, Priority: %d, ArrivalTime: %d, Remaining: %d)",
		c.ID, c.State, c.Priority, c.ArrivalTime, c.ServiceTime)
}
