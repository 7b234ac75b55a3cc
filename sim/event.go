package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clerk-sim/clerk-sim/sim/trace"
)

// EventKind identifies a scheduling notification.
type EventKind string

const (
	EventArrival      EventKind = "arrival"
	EventWaiting      EventKind = "waiting"
	EventServiceStart EventKind = "service-start"
	EventPreemption   EventKind = "preemption"
	EventCompletion   EventKind = "completion"
)

// Event is a timestamped notification emitted by the ClerkMonitor.
// OtherID is only meaningful for EventWaiting (the occupant being waited on)
// and EventPreemption (the evicted occupant).
type Event struct {
	Kind        EventKind
	CustomerID  int
	OtherID     int
	At          time.Duration // relative to the simulation origin
	ArrivalTime int64         // ticks
	ServiceTime int64         // remaining service at the time of the event (ticks)
	Priority    int
}

// Seconds returns the event timestamp in seconds.
func (e Event) Seconds() float64 {
	return e.At.Seconds()
}

func (e Event) String() string {
	switch e.Kind {
	case EventArrival:
		return fmt.Sprintf("customer %2d arrives: arrival time (%.1f), service time (%.1f), priority (%2d)",
			e.CustomerID, float64(e.ArrivalTime)/10, float64(e.ServiceTime)/10, e.Priority)
	case EventWaiting:
		return fmt.Sprintf("customer %2d waits for customer %2d to leave the clerk", e.CustomerID, e.OtherID)
	case EventServiceStart:
		return fmt.Sprintf("clerk starts serving customer %2d at time %.2f", e.CustomerID, e.Seconds())
	case EventPreemption:
		return fmt.Sprintf("customer %2d interrupts the service of lower-priority customer %2d at time %.2f",
			e.CustomerID, e.OtherID, e.Seconds())
	case EventCompletion:
		return fmt.Sprintf("clerk finishes serving customer %2d at time %.2f", e.CustomerID, e.Seconds())
	default:
		return fmt.Sprintf("unknown event %q for customer %d at time %.2f", e.Kind, e.CustomerID, e.Seconds())
	}
}

// EventSink receives events in monitor order.
// Emit is called while the monitor lock is held: implementations must be quick
// and MUST NOT call back into the ClerkMonitor.
type EventSink interface {
	Emit(Event)
}

// SinkFunc adapts a plain function to EventSink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// MultiSink fans every event out to each sink in order.
type MultiSink []EventSink

func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// LogSink writes events to logrus at debug level.
type LogSink struct {
	Logger logrus.FieldLogger
}

func (l *LogSink) Emit(e Event) {
	logger := l.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"event":    e.Kind,
		"customer": e.CustomerID,
	}).Debugf("[%8.2fs] %s", e.Seconds(), e)
}

// Recorder keeps every event it receives. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many recorded events are of the given kind.
func (r *Recorder) Count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// TraceSink records events and occupancy intervals into a SimulationTrace.
type TraceSink struct {
	Trace *trace.SimulationTrace
}

func (t *TraceSink) Emit(e Event) {
	if t.Trace == nil {
		return
	}
	t.Trace.RecordEvent(trace.EventRecord{
		Kind:       string(e.Kind),
		CustomerID: e.CustomerID,
		OtherID:    e.OtherID,
		At:         e.At,
		Remaining:  e.ServiceTime,
	})
	switch e.Kind {
	case EventArrival:
		t.Trace.RecordArrival(e.CustomerID, e.At, e.ServiceTime)
	case EventServiceStart:
		t.Trace.OpenService(e.CustomerID, e.At)
	case EventPreemption:
		t.Trace.CloseService(e.OtherID, e.At, trace.OutcomePreempted)
	case EventCompletion:
		t.Trace.CloseService(e.CustomerID, e.At, trace.OutcomeCompleted)
		t.Trace.RecordCompletion(e.CustomerID, e.At)
	}
}
