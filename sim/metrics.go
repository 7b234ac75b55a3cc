// Tracks per-run and per-customer figures such as:
// served time, preemptions, turnaround and waiting time.

package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/clerk-sim/clerk-sim/sim/trace"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	CompletedCustomers int
	TotalAdmissions    int
	TotalPreemptions   int
	Makespan           time.Duration
	MeanTurnaround     time.Duration
	MeanWaiting        time.Duration
	Customers          []trace.CustomerSummary
}

// NewMetrics builds Metrics from a trace summary.
func NewMetrics(s *trace.TraceSummary) *Metrics {
	if s == nil {
		return &Metrics{}
	}
	return &Metrics{
		CompletedCustomers: s.CompletedCount,
		TotalAdmissions:    s.TotalAdmissions,
		TotalPreemptions:   s.TotalPreemptions,
		Makespan:           s.Makespan,
		MeanTurnaround:     s.MeanTurnaround,
		MeanWaiting:        s.MeanWaiting,
		Customers:          s.Customers,
	}
}

// Print writes aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Completed Customers  : %d\n", m.CompletedCustomers)
	fmt.Fprintf(w, "Admissions           : %d\n", m.TotalAdmissions)
	fmt.Fprintf(w, "Preemptions          : %d\n", m.TotalPreemptions)
	fmt.Fprintf(w, "Makespan             : %.2f s\n", m.Makespan.Seconds())
	if m.CompletedCustomers > 0 {
		fmt.Fprintf(w, "Average Turnaround   : %.2f s\n", m.MeanTurnaround.Seconds())
		fmt.Fprintf(w, "Average Waiting      : %.2f s\n", m.MeanWaiting.Seconds())
	}
	if len(m.Customers) == 0 {
		return
	}
	fmt.Fprintln(w, "--- per customer ---")
	fmt.Fprintln(w, "  ID  declared(ticks)  served(s)  preempted  turnaround(s)")
	for _, c := range m.Customers {
		fmt.Fprintf(w, "%4d  %15d  %9.2f  %9d  %13.2f\n",
			c.CustomerID, c.Declared, c.Served.Seconds(), c.Preemptions, c.Turnaround().Seconds())
	}
}
