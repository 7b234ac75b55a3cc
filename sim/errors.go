package sim

import "github.com/pkg/errors"

// Error kinds surfaced by the simulation. Call sites wrap these with context,
// so callers classify failures with errors.Is.
var (
	// ErrConfig reports bad input or invocation detected before any scheduling begins.
	ErrConfig = errors.New("configuration error")
	// ErrTaskCreation reports that a customer task could not be started.
	ErrTaskCreation = errors.New("task creation error")
	// ErrWaitProtocol reports a timed wait invoked with an invalid deadline or
	// outside the occupancy it was granted. Fatal to the affected task only.
	ErrWaitProtocol = errors.New("wait protocol error")
)
