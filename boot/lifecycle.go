package boot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/vm"
)

// Result is what each lifecycle callback reports to the host scheduler.
// The scheduler keeps calling Iterate while it sees Continue and stops on
// the first Success or Failure; mapping to a process exit code is the
// scheduler's business.
type Result int

const (
	Continue Result = iota
	Success
	Failure
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is the opaque handle threaded through the lifecycle callbacks.
// It exists if and only if the interpreter is live: Init creates it, Quit
// destroys it, and nothing may touch it after Quit has run.
type State struct {
	env    *Env
	interp vm.Interpreter
	driver *Driver
}

// Driver exposes the coroutine driver for diagnostic consumers such as the
// interactive debugger.
func (s *State) Driver() *Driver { return s.driver }

// Init runs the version gate, the argument preprocessor and the interpreter
// bootstrap, and resolves the entry routine into a resumable coroutine.
//
// A --version or --help invocation prints its text and returns Success with
// a nil state before any interpreter is created. A version mismatch or
// fatal bootstrap error returns Failure with a nil state; Quit must not be
// called for either early exit. Otherwise the returned state is live and
// the result is Continue.
func (e *Env) Init(ctx context.Context, argv []string) (*State, Result) {
	library := e.factory.LibraryVersion()
	if err := gateVersions(lumen.Version, library); err != nil {
		e.printMismatch(library)
		e.Log.Error("version gate failed", zap.Error(err))
		return nil, Failure
	}

	if len(argv) > 1 {
		switch argv[1] {
		case "--version":
			printVersion(e.Out, library)
			return nil, Success
		case "--help":
			printUsage(e.Out)
			return nil, Success
		}
	}

	if len(argv) == 0 {
		fmt.Fprintln(e.Out, "Error: empty argument vector")
		return nil, Failure
	}

	interp, err := e.factory.New(ctx)
	if err != nil {
		fmt.Fprintf(e.Out, "Error: %v\n", err)
		e.Log.Error("create interpreter", zap.Error(err))
		return nil, Failure
	}

	driver, err := e.bootstrap(ctx, interp, argv)
	if err != nil {
		fmt.Fprintf(e.Out, "Error: %v\n", err)
		e.Log.Error("bootstrap failed", zap.Error(err))
		if cerr := interp.Close(ctx); cerr != nil {
			e.Log.Warn("close interpreter", zap.Error(cerr))
		}
		return nil, Failure
	}

	e.Log.Debug("bootstrap complete")
	return &State{env: e, interp: interp, driver: driver}, Continue
}

// Iterate performs exactly one resume of the entry coroutine. Continue
// means the coroutine yielded and wants another frame; Success and Failure
// are terminal, and the scheduler must proceed to Quit without calling
// Iterate again.
func (s *State) Iterate(ctx context.Context) Result {
	if err := s.driver.Step(ctx); err != nil {
		// Scheduler contract violation: the driver was already terminal.
		s.env.Log.Error("iterate after terminal state", zap.Error(err))
		return Failure
	}

	switch s.driver.State() {
	case DriverSuspended:
		return Continue
	case DriverCompleted:
		return Success
	case DriverFailed:
		if err := s.driver.Err(); err != nil {
			fmt.Fprintf(s.env.Out, "Error: %v\n", err)
			s.env.Log.Error("guest error", zap.Error(err))
		}
		return Failure
	default:
		return Continue
	}
}

// Event is a pass-through hook reserved for forwarding host-level events
// into the interpreter. Forwarding is not implemented yet; the hook accepts
// anything and reports Continue to satisfy the host callback contract.
func (s *State) Event(ctx context.Context, ev any) Result {
	_ = ev
	return Continue
}

// Quit releases the interpreter and invalidates the state. It must be
// called exactly once per successful Init, and never when Init returned a
// nil state; a second call on the same state is a caller bug.
func (s *State) Quit(ctx context.Context) {
	if err := s.interp.Close(ctx); err != nil {
		s.env.Log.Warn("close interpreter", zap.Error(err))
	}
	s.interp = nil
	s.driver = nil
}
