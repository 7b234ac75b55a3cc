package sim

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CustomerTask drives one customer through its lifecycle:
//
//	waiting-arrival → requesting → in-service → completed
//	                      ↑              │
//	                      └─ preempted ←─┘
type CustomerTask struct {
	customer *Customer
	monitor  *ClerkMonitor
	clock    *Clock
	sleep    func(time.Duration)
}

// NewCustomerTask takes ownership of c.
func NewCustomerTask(c *Customer, m *ClerkMonitor, clock *Clock) *CustomerTask {
	return &CustomerTask{customer: c, monitor: m, clock: clock, sleep: time.Sleep}
}

// Customer returns the customer owned by the task.
func (t *CustomerTask) Customer() *Customer {
	return t.customer
}

// Run waits for the arrival time, then repeatedly requests the clerk until the
// remaining service reaches zero. A wait protocol error ends the task, and so
// does a panic, which is returned as an error after the customer is withdrawn
// from the monitor.
func (t *CustomerTask) Run() (err error) {
	c := t.customer
	defer func() {
		if p := recover(); p != nil {
			t.monitor.Withdraw(c)
			c.State = StateFailed
			err = errors.Errorf("customer %d task panicked: %v", c.ID, p)
		}
	}()
	if d := time.Until(t.clock.At(c.ArrivalTime)); d > 0 {
		t.sleep(d)
	}
	t.monitor.Arrive(c)

	if c.ServiceTime <= 0 {
		t.monitor.Complete(c)
		return nil
	}

	for c.ServiceTime > 0 {
		occ := t.monitor.Admit(c)
		outcome, err := t.monitor.AwaitService(occ)
		switch outcome {
		case OutcomeTimedOut:
			logrus.Debugf("customer %d completed after %v at the clerk", c.ID, c.Served)
			return nil
		case OutcomeSignaled:
			logrus.Debugf("customer %d preempted, %d ticks remaining", c.ID, c.ServiceTime)
			if c.ServiceTime == 0 {
				t.monitor.Complete(c)
				return nil
			}
		default:
			c.State = StateFailed
			if err == nil {
				err = errors.Wrapf(ErrWaitProtocol, "customer %d: unclassified wait outcome", c.ID)
			}
			return err
		}
	}
	return nil
}
