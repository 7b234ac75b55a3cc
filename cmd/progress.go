package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	sim "github.com/clerk-sim/clerk-sim/sim"
)

// progressSink renders one bar per customer, measured in served ticks.
// Bars are created on arrival and advanced whenever service (re)starts or completes.
type progressSink struct {
	p *mpb.Progress

	mu    sync.Mutex
	bars  map[int]*mpb.Bar
	total map[int]int64
}

func newProgressSink(w io.Writer) *progressSink {
	return &progressSink{
		p:     mpb.New(mpb.WithOutput(w), mpb.WithWidth(48)),
		bars:  make(map[int]*mpb.Bar),
		total: make(map[int]int64),
	}
}

func (ps *progressSink) Emit(e sim.Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	switch e.Kind {
	case sim.EventArrival:
		if e.ServiceTime <= 0 {
			return
		}
		name := fmt.Sprintf("customer %2d (p%d)", e.CustomerID, e.Priority)
		ps.total[e.CustomerID] = e.ServiceTime
		ps.bars[e.CustomerID] = ps.p.AddBar(e.ServiceTime,
			mpb.PrependDecorators(
				decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d ticks", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
			),
		)
	case sim.EventServiceStart:
		if bar, ok := ps.bars[e.CustomerID]; ok {
			bar.SetCurrent(ps.total[e.CustomerID] - e.ServiceTime)
		}
	case sim.EventCompletion:
		if bar, ok := ps.bars[e.CustomerID]; ok {
			bar.SetCurrent(ps.total[e.CustomerID])
		}
	}
}

// Wait aborts bars that never completed and waits for rendering to finish.
func (ps *progressSink) Wait() {
	ps.mu.Lock()
	for _, bar := range ps.bars {
		if !bar.Completed() {
			bar.Abort(false)
		}
	}
	ps.mu.Unlock()
	ps.p.Wait()
}
