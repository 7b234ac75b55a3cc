// Package sim provides the clerk scheduling monitor and the per-customer tasks
// that drive it.
//
// # Reading Guide
//
// Start with these three files to understand the scheduling kernel:
//   - customer.go: Customer lifecycle (waiting-arrival → requesting → in-service → completed)
//   - monitor.go: The ClerkMonitor, its admission decision and the timed service wait
//   - task.go: The loop each customer runs until its service is exhausted
//
// # Ordering
//
// Rank (rank.go) is the single ordering used everywhere: higher priority first,
// then earlier arrival, then shorter remaining service, then lower ID. The wait
// queue (queue.go) keeps customers sorted by it. CanPreempt narrows it for the
// preemption decision: at equal priority only a customer that arrived at the
// same time as the occupant may take over.
//
// # Architecture
//
// Sub-packages:
//   - sim/workload/: customer file parsing (text and YAML)
//   - sim/trace/: decision trace recording and run summaries
//
// Simulator (simulator.go) validates the configuration, starts one task per
// customer on a goroutine pool and joins them. Every state change is reported
// as an Event through an EventSink while the monitor lock is held, so sinks
// observe a single total order.
package sim
