package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/clerk-sim/clerk-sim/sim"
)

func TestConsoleSink_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := newConsoleSink(&buf)

	sink.Emit(sim.Event{Kind: sim.EventArrival, CustomerID: 4, ArrivalTime: 20, ServiceTime: 15, Priority: 2})
	sink.Emit(sim.Event{Kind: sim.EventWaiting, CustomerID: 4, OtherID: 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "customer  4 arrives: arrival time (2.0), service time (1.5), priority ( 2)", lines[0])
	assert.Equal(t, "customer  4 waits for customer  1 to leave the clerk", lines[1])
}

func TestProgressSink_TracksServedTicks(t *testing.T) {
	// GIVEN a progress sink that saw a customer arrive with 4 ticks of service
	var buf bytes.Buffer
	ps := newProgressSink(&buf)
	ps.Emit(sim.Event{Kind: sim.EventArrival, CustomerID: 1, ServiceTime: 4})
	ps.Emit(sim.Event{Kind: sim.EventServiceStart, CustomerID: 1, ServiceTime: 4})

	// WHEN it is resumed with 1 tick left and then completes
	ps.Emit(sim.Event{Kind: sim.EventServiceStart, CustomerID: 1, ServiceTime: 1})
	assert.Equal(t, int64(3), ps.bars[1].Current())
	ps.Emit(sim.Event{Kind: sim.EventCompletion, CustomerID: 1})

	// THEN the bar is full and rendering terminates
	assert.Equal(t, int64(4), ps.bars[1].Current())
	ps.Wait()
}

func TestProgressSink_ZeroServiceCustomer_NoBar(t *testing.T) {
	ps := newProgressSink(&bytes.Buffer{})

	ps.Emit(sim.Event{Kind: sim.EventArrival, CustomerID: 9})
	ps.Emit(sim.Event{Kind: sim.EventCompletion, CustomerID: 9})
	ps.Wait()

	assert.Empty(t, ps.bars)
}
