package sim

import (
	"time"

	"github.com/pkg/errors"

	"github.com/clerk-sim/clerk-sim/sim/trace"
)

// SimConfig groups the knobs of a simulation run.
type SimConfig struct {
	Tick         time.Duration     // wall length of one input time unit (default 100ms)
	MaxCustomers int               // upper bound on the number of customers (0 = unlimited)
	Trace        trace.TraceConfig // trace collection; zero value records services
}

// DefaultSimConfig returns the configuration matching the input format:
// times in tenths of a second and no customer limit.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Tick:  DefaultTick,
		Trace: trace.TraceConfig{Level: trace.TraceLevelServices},
	}
}

// Validate checks the configuration against the customers to be simulated.
func (c SimConfig) Validate(customers []*Customer) error {
	if c.Tick < 0 {
		return errors.Wrapf(ErrConfig, "tick must not be negative, got %v", c.Tick)
	}
	if c.MaxCustomers < 0 {
		return errors.Wrapf(ErrConfig, "max customers must be non-negative, got %d", c.MaxCustomers)
	}
	if c.MaxCustomers > 0 && len(customers) > c.MaxCustomers {
		return errors.Wrapf(ErrConfig, "%d customers exceed the limit of %d", len(customers), c.MaxCustomers)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return errors.Wrapf(ErrConfig, "unknown trace level %q", c.Trace.Level)
	}
	seen := make(map[int]bool, len(customers))
	for _, cust := range customers {
		if cust == nil {
			return errors.Wrap(ErrConfig, "nil customer")
		}
		if seen[cust.ID] {
			return errors.Wrapf(ErrConfig, "duplicate customer ID %d", cust.ID)
		}
		seen[cust.ID] = true
		if cust.ArrivalTime < 0 || cust.ServiceTime < 0 {
			return errors.Wrapf(ErrConfig, "customer %d: arrival and service times must be non-negative", cust.ID)
		}
	}
	return nil
}
