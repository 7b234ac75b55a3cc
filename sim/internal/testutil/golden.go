// Package testutil provides shared test infrastructure for the clerk simulator.
// It holds the golden scenario types and the loader used by sim/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// GoldenDataset represents the structure of testdata/golden_scenarios.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one workload with its expected scheduling outcome.
// Every scenario keeps at least two ticks between competing events so the
// outcome does not depend on goroutine start-up jitter.
type GoldenScenario struct {
	Name      string           `json:"name"`
	TickMs    int              `json:"tick_ms"`
	Customers []GoldenCustomer `json:"customers"`
	Expected  GoldenExpected   `json:"expected"`
}

// Tick returns the scenario's tick as a duration.
func (g GoldenScenario) Tick() time.Duration {
	return time.Duration(g.TickMs) * time.Millisecond
}

// GoldenCustomer mirrors one input record: ID:arrival,service,priority.
type GoldenCustomer struct {
	ID       int   `json:"id"`
	Arrival  int64 `json:"arrival"`
	Service  int64 `json:"service"`
	Priority int   `json:"priority"`
}

// GoldenExpected represents the deterministic results of a scenario.
type GoldenExpected struct {
	CompletionOrder []int `json:"completion_order"`
	Preemptions     int   `json:"preemptions"`
	Admissions      int   `json:"admissions"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("golden dataset has no scenarios")
	}

	return &dataset
}
