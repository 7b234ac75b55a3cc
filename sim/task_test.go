package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskFixture(tick time.Duration) (*Clock, *ClerkMonitor, *Recorder) {
	clock := NewClock(tick)
	clock.Start()
	rec := &Recorder{}
	return clock, NewClerkMonitor(clock, rec), rec
}

func TestCustomerTask_Run_SleepsUntilArrival(t *testing.T) {
	// GIVEN a customer arriving 5 ticks after the origin
	clock, m, rec := newTaskFixture(20 * time.Millisecond)
	c := NewCustomer(1, 5, 1, 1)
	task := NewCustomerTask(c, m, clock)
	var slept time.Duration
	task.sleep = func(d time.Duration) { slept = d }

	// WHEN the task runs
	require.NoError(t, task.Run())

	// THEN it slept for at most the arrival offset before announcing itself
	assert.Greater(t, slept, time.Duration(0))
	assert.LessOrEqual(t, slept, 100*time.Millisecond)
	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, EventArrival, events[0].Kind)
	assert.Equal(t, StateCompleted, c.State)
}

func TestCustomerTask_Run_ServesFullDemand(t *testing.T) {
	// GIVEN a lone customer needing 3 ticks
	tick := 10 * time.Millisecond
	clock, m, rec := newTaskFixture(tick)
	c := NewCustomer(1, 0, 3, 1)

	// WHEN its task runs
	start := time.Now()
	require.NoError(t, NewCustomerTask(c, m, clock).Run())

	// THEN it held the clerk for the whole demand in one admission
	assert.GreaterOrEqual(t, time.Since(start), 3*tick)
	assert.Equal(t, 1, rec.Count(EventServiceStart))
	assert.Equal(t, 1, rec.Count(EventCompletion))
	assertConserved(t, c, tick)
	assert.True(t, m.Available())
}

func TestCustomerTask_Run_ZeroService_NeverAdmitted(t *testing.T) {
	clock, m, rec := newTaskFixture(10 * time.Millisecond)
	c := NewCustomer(4, 0, 0, 1)

	require.NoError(t, NewCustomerTask(c, m, clock).Run())

	assert.Equal(t, StateCompleted, c.State)
	assert.Equal(t, 0, rec.Count(EventServiceStart))
	assert.Equal(t, []EventKind{EventArrival, EventCompletion}, []EventKind{rec.Events()[0].Kind, rec.Events()[1].Kind})
}

func TestCustomerTask_Run_PreemptedThenResumes(t *testing.T) {
	// GIVEN a low-priority customer already running its task
	tick := 20 * time.Millisecond
	clock, m, rec := newTaskFixture(tick)
	low := NewCustomer(1, 0, 6, 1)
	done := make(chan error, 1)
	go func() { done <- NewCustomerTask(low, m, clock).Run() }()
	require.Eventually(t, func() bool {
		occ, held := m.Occupant()
		return held && occ.ID == 1
	}, time.Second, time.Millisecond)

	// WHEN a higher-priority customer runs after 2 ticks
	time.Sleep(2 * tick)
	high := NewCustomer(2, 0, 1, 9)
	require.NoError(t, NewCustomerTask(high, m, clock).Run())

	// THEN the low-priority task resumes and finishes its remaining demand
	require.NoError(t, <-done)
	assert.Equal(t, 1, low.Preemptions)
	assert.Equal(t, []int{2, 1}, completionOrder(rec.Events()))
	assertConserved(t, low, tick)
}
