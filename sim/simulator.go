// sim/simulator.go
package sim

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/clerk-sim/clerk-sim/sim/trace"
)

// taskPool starts customer tasks. *ants.Pool satisfies it.
type taskPool interface {
	Submit(task func()) error
	Release()
}

func newAntsPool(size int) (taskPool, error) {
	return ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			logrus.Errorf("customer task panicked: %v", p)
		}),
	)
}

// Simulator is the core object that holds the clock, the clerk monitor and one
// task per customer.
type Simulator struct {
	Config    SimConfig
	RunID     string
	Clock     *Clock
	Monitor   *ClerkMonitor
	Trace     *trace.SimulationTrace
	Customers []*Customer
	Metrics   *Metrics

	newPool func(size int) (taskPool, error)
}

// NewSimulator validates the configuration and wires the monitor to the trace,
// the debug log and the optional caller sink.
func NewSimulator(config SimConfig, customers []*Customer, sink EventSink) (*Simulator, error) {
	if err := config.Validate(customers); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	config.Trace.RunID = runID
	st := trace.NewSimulationTrace(config.Trace)
	clock := NewClock(config.Tick)

	sinks := MultiSink{&TraceSink{Trace: st}, &LogSink{Logger: logrus.WithField("run", runID)}}
	if sink != nil {
		sinks = append(sinks, sink)
	}

	return &Simulator{
		Config:    config,
		RunID:     runID,
		Clock:     clock,
		Monitor:   NewClerkMonitor(clock, sinks),
		Trace:     st,
		Customers: customers,
		newPool:   newAntsPool,
	}, nil
}

// Run starts the clock and one task per customer, then waits for all of them.
// It returns a wrapped ErrTaskCreation if a task cannot be started (after the
// tasks already started have finished), or the aggregated task failures.
func (sim *Simulator) Run() error {
	log := logrus.WithField("run", sim.RunID)
	sim.Clock.Start()
	defer func() {
		sim.Metrics = NewMetrics(trace.Summarize(sim.Trace))
	}()

	if len(sim.Customers) == 0 {
		log.Info("no customers to simulate")
		return nil
	}

	pool, err := sim.newPool(len(sim.Customers))
	if err != nil {
		return errors.Wrapf(ErrTaskCreation, "creating task pool: %v", err)
	}
	defer pool.Release()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)
	for _, c := range sim.Customers {
		task := NewCustomerTask(c, sim.Monitor, sim.Clock)
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if err := task.Run(); err != nil {
				log.WithField("customer", task.Customer().ID).Errorf("customer task aborted: %v", err)
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			log.Errorf("could not start task for customer %d: %v", c.ID, err)
			wg.Wait()
			return errors.Wrapf(ErrTaskCreation, "customer %d: %v", c.ID, err)
		}
		log.Debugf("customer %2d task created", c.ID)
	}

	wg.Wait()
	log.Infof("all %d customer tasks finished in %v", len(sim.Customers), sim.Clock.Elapsed())
	return result.ErrorOrNil()
}
