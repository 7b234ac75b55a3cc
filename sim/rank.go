package sim

import "fmt"

// Rank is the comparator snapshot of a customer. The occupant of the clerk is
// held as a Rank so preemption checks never touch another task's Customer.
type Rank struct {
	ID          int
	Priority    int
	ArrivalTime int64
	ServiceTime int64 // remaining service at the time the snapshot was taken
}

// Outranks reports whether a must be served before b.
// Order: priority (descending), then arrival time (ascending), then remaining
// service (ascending), then ID (ascending).
//
// Two different customers never tie because IDs are unique.
func Outranks(a, b Rank) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	if a.ServiceTime != b.ServiceTime {
		return a.ServiceTime < b.ServiceTime
	}
	return a.ID < b.ID
}

// CanPreempt reports whether a challenger may evict the current occupant.
// It applies Outranks, except that at equal priority only a customer with the
// same arrival time may preempt: arrival order alone never evicts an occupant.
func CanPreempt(challenger, occupant Rank) bool {
	if challenger.Priority != occupant.Priority {
		return challenger.Priority > occupant.Priority
	}
	return challenger.ArrivalTime == occupant.ArrivalTime && Outranks(challenger, occupant)
}

func (r Rank) String() string {
	return fmt.Sprintf("#%d(p=%d, a=%d, s=%d)", r.ID, r.Priority, r.ArrivalTime, r.ServiceTime)
}
