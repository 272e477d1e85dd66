package boot

import (
	"context"

	"github.com/lumen-engine/lumen/errors"
	"github.com/lumen-engine/lumen/vm"
)

// DriverState tracks the entry coroutine's lifecycle. Created moves to
// Suspended or a terminal state on the first step; Suspended loops back
// through each subsequent step. Completed and Failed are terminal: a driver
// in either state must never be stepped again.
type DriverState int

const (
	DriverCreated DriverState = iota
	DriverSuspended
	DriverCompleted
	DriverFailed
)

func (s DriverState) String() string {
	switch s {
	case DriverCreated:
		return "created"
	case DriverSuspended:
		return "suspended"
	case DriverCompleted:
		return "completed"
	case DriverFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Driver owns the entry coroutine and resumes it on demand. It records the
// interpreter's stack depth immediately after the coroutine is created and
// trims back to that marker after every yielded resume, so leftover return
// values never accumulate across suspension points.
type Driver struct {
	interp vm.Interpreter
	co     vm.Coroutine
	marker int
	state  DriverState
	err    error
}

func newDriver(interp vm.Interpreter, entry vm.Callable) (*Driver, error) {
	co, err := interp.NewCoroutine(entry)
	if err != nil {
		return nil, err
	}
	return &Driver{
		interp: interp,
		co:     co,
		marker: interp.Depth(),
	}, nil
}

// newFailedDriver wraps an interpreter-level error raised while requiring
// the boot program. The bootstrapper does not catch such errors; they
// surface as the coroutine's terminal result on the first step.
func newFailedDriver(err error) *Driver {
	return &Driver{state: DriverCreated, err: err}
}

// Step performs exactly one resume. The returned error reports scheduler
// misuse (stepping a terminal driver); guest outcomes are reflected in the
// driver's state instead.
func (d *Driver) Step(ctx context.Context) error {
	switch d.state {
	case DriverCompleted, DriverFailed:
		return errors.Terminal("step after " + d.state.String())
	}

	if d.co == nil {
		// Bootstrap already failed at the interpreter level; deliver it
		// as this coroutine's terminal result.
		d.state = DriverFailed
		return nil
	}

	res, err := d.co.Resume(ctx)
	if err != nil {
		d.state = DriverFailed
		d.err = err
		return nil
	}

	switch res.State {
	case vm.StepYielded:
		d.interp.SetDepth(d.marker)
		d.state = DriverSuspended
	case vm.StepDone:
		d.state = DriverCompleted
	case vm.StepFailed:
		d.state = DriverFailed
		d.err = res.Err
	}
	return nil
}

func (d *Driver) State() DriverState { return d.state }

// Err returns the guest's unhandled error after a Failed step, or nil.
func (d *Driver) Err() error { return d.err }
