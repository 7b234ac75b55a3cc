package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomer_InitialState(t *testing.T) {
	c := NewCustomer(5, 10, 30, 2)

	assert.Equal(t, StateWaitingArrival, c.State)
	assert.Equal(t, int64(30), c.ServiceTime)
	assert.Equal(t, int64(30), c.TotalService)
	assert.Zero(t, c.Served)
	assert.Zero(t, c.Preemptions)
}

func TestCustomer_Rank_TracksRemainingService(t *testing.T) {
	// GIVEN a customer whose remaining service shrank after a preemption
	c := NewCustomer(5, 10, 30, 2)
	c.ServiceTime = 12

	// WHEN its rank is taken
	r := c.Rank()

	// THEN the snapshot reflects the current remaining service
	assert.Equal(t, Rank{ID: 5, Priority: 2, ArrivalTime: 10, ServiceTime: 12}, r)
	assert.Equal(t, int64(30), c.TotalService)
}

func TestCustomer_String(t *testing.T) {
	c := NewCustomer(1, 2, 3, 4)
	assert.Equal(t, "Customer: (ID: 1, State: waiting-arrival, Priority: 4, ArrivalTime: 2, Remaining: 3)", c.String())
}
