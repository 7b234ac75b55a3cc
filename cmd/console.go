package cmd

import (
	"fmt"
	"io"
	"sync"

	sim "github.com/clerk-sim/clerk-sim/sim"
)

// consoleSink prints one line per event, in monitor order.
type consoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleSink(w io.Writer) *consoleSink {
	return &consoleSink{w: w}
}

func (c *consoleSink) Emit(e sim.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, e.String())
}
