package workload

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/clerk-sim/clerk-sim/sim"
)

// FormatCustomers writes customers in the plain-text format read by ParseCustomers.
func FormatCustomers(w io.Writer, customers []*sim.Customer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(customers))
	for _, c := range customers {
		fmt.Fprintf(bw, "%d:%d,%d,%d\n", c.ID, c.ArrivalTime, c.TotalService, c.Priority)
	}
	return bw.Flush()
}

// NewWorkloadSpec captures customers' declared attributes as a WorkloadSpec.
func NewWorkloadSpec(customers []*sim.Customer) *WorkloadSpec {
	spec := &WorkloadSpec{Customers: make([]CustomerSpec, 0, len(customers))}
	for _, c := range customers {
		spec.Customers = append(spec.Customers, CustomerSpec{
			ID:       c.ID,
			Arrival:  c.ArrivalTime,
			Service:  c.TotalService,
			Priority: c.Priority,
		})
	}
	return spec
}

// SaveCustomers writes customers to path on fs, choosing the format from the
// extension the same way LoadCustomers does.
func SaveCustomers(fs afero.Fs, path string, customers []*sim.Customer) error {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(NewWorkloadSpec(customers)); err != nil {
			return errors.Wrapf(err, "encoding %s", path)
		}
		return enc.Close()
	default:
		return errors.Wrapf(FormatCustomers(f, customers), "writing %s", path)
	}
}
