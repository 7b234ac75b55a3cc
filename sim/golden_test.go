package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerk-sim/clerk-sim/sim/internal/testutil"
)

func TestSimulator_GoldenScenarios(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, sc := range dataset.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			// GIVEN the scenario's customers
			var customers []*Customer
			for _, gc := range sc.Customers {
				customers = append(customers, NewCustomer(gc.ID, gc.Arrival, gc.Service, gc.Priority))
			}

			// WHEN the simulation runs
			s, rec, _ := runScenario(t, sc.Tick(), customers)

			// THEN completion order and admission counts match the golden values
			assert.Equal(t, sc.Expected.CompletionOrder, completionOrder(rec.Events()))
			assert.Equal(t, sc.Expected.Preemptions, rec.Count(EventPreemption))
			require.NotNil(t, s.Metrics)
			assert.Equal(t, sc.Expected.Admissions, s.Metrics.TotalAdmissions)
			assert.Equal(t, len(customers), s.Metrics.CompletedCustomers)
			for _, c := range customers {
				assertConserved(t, c, sc.Tick())
			}
		})
	}
}
