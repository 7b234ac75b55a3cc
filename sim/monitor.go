package sim

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// WaitOutcome classifies how an occupant's timed service wait ended.
type WaitOutcome int

const (
	// OutcomeError means the wait was invalid and nothing about the service is known.
	OutcomeError WaitOutcome = iota
	// OutcomeTimedOut means the remaining service elapsed: the customer is done.
	OutcomeTimedOut
	// OutcomeSignaled means a higher-ranked customer took the clerk.
	OutcomeSignaled
)

func (o WaitOutcome) String() string {
	switch o {
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomeSignaled:
		return "signaled"
	default:
		return "error"
	}
}

// Occupancy is the synchronization point for one admission of one customer.
// The preempting customer closes preempted; the occupant races it against its deadline.
type Occupancy struct {
	customer    *Customer
	admittedAt  time.Time
	deadline    time.Time
	preempted   chan struct{}
	preemptedAt time.Time // set under the monitor lock before preempted is closed
}

// Customer returns the admitted customer.
func (o *Occupancy) Customer() *Customer { return o.customer }

// AdmittedAt returns the admission instant.
func (o *Occupancy) AdmittedAt() time.Time { return o.admittedAt }

// Deadline returns the instant at which the remaining service runs out.
func (o *Occupancy) Deadline() time.Time { return o.deadline }

// ClerkMonitor owns the clerk: its availability, the occupant snapshot and the
// wait queue. All of them are guarded by mu; queued customers block on enter.
type ClerkMonitor struct {
	clock *Clock
	sink  EventSink

	mu        sync.Mutex
	enter     *sync.Cond
	available bool
	occupant  Rank
	current   *Occupancy // nil iff available
	queue     WaitQueue
}

// NewClerkMonitor creates a monitor with an available clerk and an empty queue.
// A nil sink discards events.
func NewClerkMonitor(clock *Clock, sink EventSink) *ClerkMonitor {
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	m := &ClerkMonitor{
		clock:     clock,
		sink:      sink,
		available: true,
	}
	m.enter = sync.NewCond(&m.mu)
	return m
}

// Arrive announces that c has shown up.
func (m *ClerkMonitor) Arrive(c *Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emit(EventArrival, c, 0)
}

// Complete announces that c needs no more service. Used for customers that
// never hold the clerk when they retire.
func (m *ClerkMonitor) Complete(c *Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.State = StateCompleted
	m.emit(EventCompletion, c, 0)
}

// Admit blocks until c holds the clerk and returns the resulting occupancy.
//
// The clerk is granted at once when it is free and nobody is queued. A customer
// that can preempt the occupant takes the clerk immediately, bypassing the queue.
// Anyone else is queued by rank and waits until it is the head of the queue
// while the clerk is free.
func (m *ClerkMonitor) Admit(c *Customer) *Occupancy {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.State = StateRequesting

	if m.available && m.queue.Len() == 0 {
		return m.grant(c)
	}

	if m.current != nil && CanPreempt(c.Rank(), m.occupant) {
		prev := m.current
		prev.preemptedAt = m.clock.Now()
		m.emit(EventPreemption, c, prev.customer.ID)
		logrus.Debugf("customer %d preempts %s", c.ID, m.occupant)
		close(prev.preempted)
		m.current = nil
		return m.grant(c)
	}

	m.queue.Insert(c)
	m.queue.validate()
	announced := false
	lastOccupant := 0
	for m.queue.Peek() != c || !m.available {
		if m.current != nil && (!announced || lastOccupant != m.occupant.ID) {
			m.emit(EventWaiting, c, m.occupant.ID)
			announced, lastOccupant = true, m.occupant.ID
		}
		m.enter.Wait()
	}
	m.queue.PopHead()
	m.queue.validate()
	return m.grant(c)
}

// grant makes c the occupant. Caller holds mu.
func (m *ClerkMonitor) grant(c *Customer) *Occupancy {
	now := m.clock.Now()
	occ := &Occupancy{
		customer:   c,
		admittedAt: now,
		deadline:   m.clock.Deadline(now, c.ServiceTime),
		preempted:  make(chan struct{}),
	}
	m.available = false
	m.occupant = c.Rank()
	m.current = occ
	c.State = StateInService
	m.emit(EventServiceStart, c, 0)
	return occ
}

// Release frees the clerk held by occ and wakes every queued customer; each
// re-checks whether it is now the head. Releasing an occupancy that no longer
// holds the clerk is a protocol error.
//
// AwaitService already releases the clerk when service runs out. Release is for
// callers that drive an occupancy without waiting on it, such as ending
// service early.
func (m *ClerkMonitor) Release(occ *Occupancy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if occ == nil || m.current != occ {
		return errors.Wrap(ErrWaitProtocol, "release of an occupancy that does not hold the clerk")
	}
	m.release()
	return nil
}

// Withdraw removes c from scheduling after its task failed: a queued c leaves
// the queue, and a c holding the clerk gives it up. Queued customers are woken
// either way so the new head can proceed.
func (m *ClerkMonitor) Withdraw(c *Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil && m.current.customer == c {
		logrus.Debugf("customer %d withdrawn while holding the clerk", c.ID)
		m.release()
		return
	}
	if m.queue.Remove(c) {
		logrus.Debugf("customer %d withdrawn from the queue", c.ID)
		m.enter.Broadcast()
	}
}

// release clears the occupant and broadcasts. Caller holds mu.
func (m *ClerkMonitor) release() {
	m.available = true
	m.current = nil
	m.occupant = Rank{}
	m.enter.Broadcast()
}

// AwaitService blocks the occupant until either its remaining service elapses
// or it is preempted. The outcome is decided under the monitor lock, so a
// deadline that fires at the same moment as a preemption is reported as
// exactly one of the two.
//
// On OutcomeTimedOut the customer's remaining service is zero and the clerk has
// been released. On OutcomeSignaled the remaining service has been reduced by
// the whole ticks served and the clerk already belongs to someone else.
func (m *ClerkMonitor) AwaitService(occ *Occupancy) (WaitOutcome, error) {
	if occ == nil || occ.customer == nil {
		return OutcomeError, errors.Wrap(ErrWaitProtocol, "timed wait without an occupancy")
	}
	c := occ.customer

	m.mu.Lock()
	owned := m.current == occ || isClosed(occ.preempted)
	m.mu.Unlock()
	if !owned {
		return OutcomeError, errors.Wrapf(ErrWaitProtocol, "customer %d waits on an occupancy it no longer holds", c.ID)
	}
	if !occ.deadline.After(occ.admittedAt) {
		return OutcomeError, errors.Wrapf(ErrWaitProtocol, "customer %d: deadline %s is not after admission %s",
			c.ID, m.clock.Since(occ.deadline), m.clock.Since(occ.admittedAt))
	}

	timer := time.NewTimer(occ.deadline.Sub(m.clock.Now()))
	defer timer.Stop()
	for {
		select {
		case <-occ.preempted:
			m.mu.Lock()
			defer m.mu.Unlock()
			m.settlePreempted(occ)
			return OutcomeSignaled, nil
		case <-timer.C:
			outcome, rearm, err := m.deadlineReached(occ)
			if rearm > 0 {
				timer.Reset(rearm)
				continue
			}
			return outcome, err
		}
	}
}

// deadlineReached classifies a fired timer. A positive rearm means the timer
// fired early and must wait that much longer.
func (m *ClerkMonitor) deadlineReached(occ *Occupancy) (WaitOutcome, time.Duration, error) {
	c := occ.customer
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != occ {
		if !isClosed(occ.preempted) {
			return OutcomeError, 0, errors.Wrapf(ErrWaitProtocol, "customer %d lost the clerk without being preempted", c.ID)
		}
		// Preempted between the timer firing and taking the lock.
		m.settlePreempted(occ)
		return OutcomeSignaled, 0, nil
	}
	now := m.clock.Now()
	if now.Before(occ.deadline) {
		return OutcomeError, occ.deadline.Sub(now), nil
	}
	c.Served += now.Sub(occ.admittedAt)
	c.ServiceTime = 0
	c.State = StateCompleted
	m.release()
	m.emit(EventCompletion, c, 0)
	return OutcomeTimedOut, 0, nil
}

// settlePreempted charges the served time to the evicted customer. Caller holds mu.
func (m *ClerkMonitor) settlePreempted(occ *Occupancy) {
	c := occ.customer
	elapsed := occ.preemptedAt.Sub(occ.admittedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	c.Served += elapsed
	c.ServiceTime -= m.clock.Ticks(elapsed)
	if c.ServiceTime < 0 {
		c.ServiceTime = 0
	}
	c.Preemptions++
	c.State = StatePreempted
}

// emit stamps and forwards an event. Caller holds mu.
func (m *ClerkMonitor) emit(kind EventKind, c *Customer, other int) {
	m.sink.Emit(Event{
		Kind:        kind,
		CustomerID:  c.ID,
		OtherID:     other,
		At:          m.clock.Elapsed(),
		ArrivalTime: c.ArrivalTime,
		ServiceTime: c.ServiceTime,
		Priority:    c.Priority,
	})
}

// Occupant returns the snapshot of the customer holding the clerk, if any.
func (m *ClerkMonitor) Occupant() (Rank, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.occupant, m.current != nil
}

// Available reports whether the clerk is free.
func (m *ClerkMonitor) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// Waiting returns the IDs of queued customers in service order.
func (m *ClerkMonitor) Waiting() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.IDs()
}

// consistent reports whether availability, occupant and queue agree.
func (m *ClerkMonitor) consistent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available == (m.current == nil) && m.queue.IsSorted()
}

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
