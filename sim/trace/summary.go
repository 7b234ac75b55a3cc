package trace

import (
	"sort"
	"time"
)

// CustomerSummary aggregates one customer's occupancy intervals.
type CustomerSummary struct {
	CustomerID  int
	Arrival     time.Duration
	Declared    int64         // declared total service (ticks)
	Served      time.Duration // sum of occupancy interval lengths
	Admissions  int
	Preemptions int
	Completed   bool
	Finish      time.Duration // completion time; zero if not completed
}

// Turnaround returns the time from arrival to completion.
func (c CustomerSummary) Turnaround() time.Duration {
	if !c.Completed {
		return 0
	}
	return c.Finish - c.Arrival
}

// Waiting returns the part of the turnaround not spent at the clerk.
func (c CustomerSummary) Waiting() time.Duration {
	if !c.Completed {
		return 0
	}
	return c.Turnaround() - c.Served
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAdmissions  int
	TotalPreemptions int
	CompletedCount   int
	Makespan         time.Duration // latest interval end
	MeanTurnaround   time.Duration
	MeanWaiting      time.Duration
	Customers        []CustomerSummary // sorted by customer ID
}

// Customer returns the summary for the given ID.
func (ts *TraceSummary) Customer(id int) (CustomerSummary, bool) {
	for _, c := range ts.Customers {
		if c.CustomerID == id {
			return c, true
		}
	}
	return CustomerSummary{}, false
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	byID := make(map[int]*CustomerSummary)
	get := func(id int) *CustomerSummary {
		c, ok := byID[id]
		if !ok {
			c = &CustomerSummary{CustomerID: id}
			byID[id] = c
		}
		return c
	}

	for _, a := range st.Arrivals() {
		c := get(a.CustomerID)
		c.Arrival = a.At
		c.Declared = a.Service
	}

	for _, s := range st.Services() {
		c := get(s.CustomerID)
		c.Admissions++
		c.Served += s.Duration()
		summary.TotalAdmissions++
		if s.Outcome == OutcomePreempted {
			c.Preemptions++
			summary.TotalPreemptions++
		}
		if s.End > summary.Makespan {
			summary.Makespan = s.End
		}
	}

	for id, at := range st.Completions() {
		c := get(id)
		c.Completed = true
		c.Finish = at
		if at > summary.Makespan {
			summary.Makespan = at
		}
	}

	var totalTurnaround, totalWaiting time.Duration
	for _, c := range byID {
		if c.Completed {
			summary.CompletedCount++
			totalTurnaround += c.Turnaround()
			totalWaiting += c.Waiting()
		}
		summary.Customers = append(summary.Customers, *c)
	}
	sort.Slice(summary.Customers, func(i, j int) bool {
		return summary.Customers[i].CustomerID < summary.Customers[j].CustomerID
	})
	if summary.CompletedCount > 0 {
		summary.MeanTurnaround = totalTurnaround / time.Duration(summary.CompletedCount)
		summary.MeanWaiting = totalWaiting / time.Duration(summary.CompletedCount)
	}
	return summary
}
