package engine

import (
	"context"
	stderrors "errors"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/errors"
	"github.com/lumen-engine/lumen/vm"
)

// errKilled aborts a suspended guest when the interpreter is torn down
// while the coroutine is still parked in yield.
var errKilled = stderrors.New("execution context torn down")

// coroutine drives the guest's boot function on a dedicated goroutine.
// The goroutine runs only between a resume and the next yield (or the final
// return); at every other moment it is parked, so the host side never
// observes the guest mid-operation.
type coroutine struct {
	interp *Interp
	fn     *callable

	started  bool
	terminal bool

	resume  chan struct{}
	yields  chan int32
	results chan error
	killed  chan struct{}
	exited  chan struct{}
}

func newCoroutine(i *Interp, c *callable) *coroutine {
	return &coroutine{
		interp:  i,
		fn:      c,
		resume:  make(chan struct{}),
		yields:  make(chan int32),
		results: make(chan error, 1),
		killed:  make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

// Resume advances the guest by one step. The first call starts the boot
// function and captures ctx for the whole execution; later calls unpark it.
// Yield hints left by the guest are pushed on the interpreter's stack above
// the driver's marker, for it to discard.
func (c *coroutine) Resume(ctx context.Context) (vm.StepResult, error) {
	if c.terminal {
		return vm.StepResult{}, errors.Terminal("resume after completion")
	}

	if !c.started {
		c.started = true
		c.interp.current = c
		go func() {
			defer close(c.exited)
			_, err := c.fn.fn.Call(ctx)
			c.results <- err
		}()
	} else {
		c.resume <- struct{}{}
	}

	select {
	case hint := <-c.yields:
		c.interp.push(lumen.Number(float64(hint)))
		return vm.StepResult{State: vm.StepYielded}, nil
	case err := <-c.results:
		c.terminal = true
		c.interp.current = nil
		if err != nil {
			return vm.StepResult{State: vm.StepFailed, Err: errors.GuestFault(c.fn.name, err)}, nil
		}
		return vm.StepResult{State: vm.StepDone}, nil
	}
}

// yieldFromGuest is called on the guest's goroutine by the native yield
// function. It hands the hint to the resumer and parks until the next
// Resume, or panics out of the guest when the interpreter is torn down.
func (c *coroutine) yieldFromGuest(hint int32) {
	select {
	case c.yields <- hint:
	case <-c.killed:
		panic(errKilled)
	}
	select {
	case <-c.resume:
	case <-c.killed:
		panic(errKilled)
	}
}

// kill tears down a suspended context and waits for its goroutine to exit.
// Safe to call on a context that never started or already finished.
func (c *coroutine) kill() {
	if !c.started || c.terminal {
		return
	}
	close(c.killed)
	<-c.exited
	c.terminal = true
}

// yieldCurrent routes a guest yield to the live execution context. A yield
// with no driven context is ignored.
func (i *Interp) yieldCurrent(hint int32) {
	if c := i.current; c != nil {
		c.yieldFromGuest(hint)
	}
}
