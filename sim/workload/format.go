package workload

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/clerk-sim/clerk-sim/sim"
)

// maxPreallocatedCustomers caps the capacity reserved from the header count,
// which is untrusted until the records have been read.
const maxPreallocatedCustomers = 1024

// ParseCustomers reads the plain-text customer format:
//
//	N
//	ID:ArrivalTime,ServiceTime,Priority
//	...
//
// with exactly N records. Times are in ticks (tenths of a second). Blank lines
// and surrounding whitespace are ignored. Any deviation is a wrapped sim.ErrConfig.
func ParseCustomers(r io.Reader) ([]*sim.Customer, error) {
	scanner := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			line++
			if text := strings.TrimSpace(scanner.Text()); text != "" {
				return text, true
			}
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrapf(sim.ErrConfig, "reading customer count: %v", err)
		}
		return nil, errors.Wrap(sim.ErrConfig, "empty input: missing customer count")
	}
	count, err := strconv.Atoi(header)
	if err != nil || count < 0 {
		return nil, errors.Wrapf(sim.ErrConfig, "line %d: invalid customer count %q", line, header)
	}

	hint := min(count, maxPreallocatedCustomers)
	customers := make([]*sim.Customer, 0, hint)
	seen := make(map[int]bool, hint)
	for len(customers) < count {
		text, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, errors.Wrapf(sim.ErrConfig, "reading customer %d: %v", len(customers)+1, err)
			}
			return nil, errors.Wrapf(sim.ErrConfig, "expected %d customers, found %d", count, len(customers))
		}
		c, err := parseRecord(text)
		if err != nil {
			return nil, errors.Wrapf(sim.ErrConfig, "line %d: %v", line, err)
		}
		if seen[c.ID] {
			return nil, errors.Wrapf(sim.ErrConfig, "line %d: duplicate customer ID %d", line, c.ID)
		}
		seen[c.ID] = true
		customers = append(customers, c)
	}

	if extra, ok := next(); ok {
		return nil, errors.Wrapf(sim.ErrConfig, "line %d: unexpected record %q after %d customers", line, extra, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(sim.ErrConfig, "reading input: %v", err)
	}
	return customers, nil
}

// parseRecord parses "ID:ArrivalTime,ServiceTime,Priority".
func parseRecord(text string) (*sim.Customer, error) {
	idPart, rest, ok := strings.Cut(text, ":")
	if !ok {
		return nil, errors.Errorf("record %q: missing ':' after customer ID", text)
	}
	fields := strings.Split(rest, ",")
	if len(fields) != 3 {
		return nil, errors.Errorf("record %q: want 3 comma-separated values after ':', got %d", text, len(fields))
	}

	var vals [4]int64
	for i, f := range append([]string{idPart}, fields...) {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Errorf("record %q: field %d is not an integer", text, i+1)
		}
		vals[i] = v
	}
	id, arrival, service, priority := vals[0], vals[1], vals[2], vals[3]
	if arrival < 0 || service < 0 {
		return nil, errors.Errorf("record %q: arrival and service times must be non-negative", text)
	}
	return sim.NewCustomer(int(id), arrival, service, int(priority)), nil
}
