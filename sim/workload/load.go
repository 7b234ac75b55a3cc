package workload

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/clerk-sim/clerk-sim/sim"
)

// LoadCustomers reads customers from path on fs. Files ending in .yaml or .yml
// are decoded as a WorkloadSpec; anything else uses the plain-text format.
// An unreadable file or malformed content is a wrapped sim.ErrConfig.
func LoadCustomers(fs afero.Fs, path string) ([]*sim.Customer, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(sim.ErrConfig, "reading customer file: %v", err)
	}

	var customers []*sim.Customer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		customers, err = ParseWorkloadSpec(data)
	default:
		customers, err = ParseCustomers(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	logrus.Debugf("loaded %d customers from %s", len(customers), path)
	return customers, nil
}
