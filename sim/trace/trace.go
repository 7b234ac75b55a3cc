package trace

import (
	"io"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelServices captures arrivals and occupancy intervals.
	TraceLevelServices TraceLevel = "services"
	// TraceLevelEvents additionally captures every emitted event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelServices: true,
	TraceLevelEvents:   true,
	"":                 true, // empty defaults to services
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	RunID string
}

// SimulationTrace collects records during a simulation. Safe for concurrent use.
type SimulationTrace struct {
	Config TraceConfig

	mu          sync.Mutex
	events      []EventRecord
	arrivals    []ArrivalRecord
	services    []ServiceRecord
	completions map[int]time.Duration
	open        map[int]int // customer ID -> index of its open interval in services
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == "" {
		config.Level = TraceLevelServices
	}
	return &SimulationTrace{
		Config:      config,
		events:      make([]EventRecord, 0),
		arrivals:    make([]ArrivalRecord, 0),
		services:    make([]ServiceRecord, 0),
		completions: make(map[int]time.Duration),
		open:        make(map[int]int),
	}
}

func (st *SimulationTrace) enabled() bool {
	return st.Config.Level != TraceLevelNone
}

// RecordEvent appends an event record when the level is TraceLevelEvents.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	if st.Config.Level != TraceLevelEvents {
		return
	}
	st.mu.Lock()
	st.events = append(st.events, record)
	st.mu.Unlock()
}

// RecordArrival appends an arrival record.
func (st *SimulationTrace) RecordArrival(customerID int, at time.Duration, service int64) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	st.arrivals = append(st.arrivals, ArrivalRecord{CustomerID: customerID, At: at, Service: service})
	st.mu.Unlock()
}

// OpenService starts an occupancy interval for the customer.
// An interval still open for the same customer is closed as OutcomeOpen first.
func (st *SimulationTrace) OpenService(customerID int, at time.Duration) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if idx, ok := st.open[customerID]; ok {
		st.services[idx].End = at
		st.services[idx].Outcome = OutcomeOpen
	}
	st.services = append(st.services, ServiceRecord{CustomerID: customerID, Start: at, End: at, Outcome: OutcomeOpen})
	st.open[customerID] = len(st.services) - 1
}

// CloseService ends the customer's open interval. A customer without an open
// interval (for example one with zero declared service) is ignored.
func (st *SimulationTrace) CloseService(customerID int, at time.Duration, outcome Outcome) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	idx, ok := st.open[customerID]
	if !ok {
		return
	}
	st.services[idx].End = at
	st.services[idx].Outcome = outcome
	delete(st.open, customerID)
}

// RecordCompletion marks the customer as retired at the given time.
func (st *SimulationTrace) RecordCompletion(customerID int, at time.Duration) {
	if !st.enabled() {
		return
	}
	st.mu.Lock()
	st.completions[customerID] = at
	st.mu.Unlock()
}

// Completions returns a copy of the completion times by customer ID.
func (st *SimulationTrace) Completions() map[int]time.Duration {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make(map[int]time.Duration, len(st.completions))
	for id, at := range st.completions {
		out[id] = at
	}
	return out
}

// Events returns a copy of the recorded events.
func (st *SimulationTrace) Events() []EventRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]EventRecord(nil), st.events...)
}

// Arrivals returns a copy of the recorded arrivals.
func (st *SimulationTrace) Arrivals() []ArrivalRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]ArrivalRecord(nil), st.arrivals...)
}

// Services returns a copy of the recorded occupancy intervals ordered by start time.
func (st *SimulationTrace) Services() []ServiceRecord {
	st.mu.Lock()
	out := append([]ServiceRecord(nil), st.services...)
	st.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// traceDocument is the YAML shape written by WriteYAML.
type traceDocument struct {
	RunID    string          `yaml:"run_id,omitempty"`
	Level    TraceLevel      `yaml:"level"`
	Arrivals []ArrivalRecord `yaml:"arrivals"`
	Services []ServiceRecord `yaml:"services"`
	Events   []EventRecord   `yaml:"events,omitempty"`
}

// WriteYAML serializes the trace to w.
func (st *SimulationTrace) WriteYAML(w io.Writer) error {
	doc := traceDocument{
		RunID:    st.Config.RunID,
		Level:    st.Config.Level,
		Arrivals: st.Arrivals(),
		Services: st.Services(),
		Events:   st.Events(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
