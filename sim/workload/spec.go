package workload

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/clerk-sim/clerk-sim/sim"
)

// CustomerSpec is one customer in a YAML workload file. Times are in ticks.
type CustomerSpec struct {
	ID       int   `yaml:"id"`
	Arrival  int64 `yaml:"arrival"`
	Service  int64 `yaml:"service"`
	Priority int   `yaml:"priority"`
}

// WorkloadSpec is the top-level YAML workload:
//
//	customers:
//	  - {id: 1, arrival: 0, service: 30, priority: 1}
type WorkloadSpec struct {
	Customers []CustomerSpec `yaml:"customers"`
}

// ParseWorkloadSpec decodes a YAML workload with strict field checking and
// converts it to customers. Errors wrap sim.ErrConfig.
func ParseWorkloadSpec(data []byte) ([]*sim.Customer, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, errors.Wrapf(sim.ErrConfig, "parsing workload YAML: %v", err)
	}
	return spec.ToCustomers()
}

// ToCustomers converts the spec to simulation customers.
func (s *WorkloadSpec) ToCustomers() ([]*sim.Customer, error) {
	return customerSpecs(s.Customers).toCustomers()
}

type customerSpecs []CustomerSpec

func (specs customerSpecs) toCustomers() ([]*sim.Customer, error) {
	customers := make([]*sim.Customer, 0, len(specs))
	seen := make(map[int]bool, len(specs))
	for i, cs := range specs {
		if cs.Arrival < 0 || cs.Service < 0 {
			return nil, errors.Wrapf(sim.ErrConfig, "customers[%d]: arrival and service must be non-negative", i)
		}
		if seen[cs.ID] {
			return nil, errors.Wrapf(sim.ErrConfig, "customers[%d]: duplicate customer ID %d", i, cs.ID)
		}
		seen[cs.ID] = true
		customers = append(customers, sim.NewCustomer(cs.ID, cs.Arrival, cs.Service, cs.Priority))
	}
	return customers, nil
}
