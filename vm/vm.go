package vm

import (
	"context"

	"github.com/lumen-engine/lumen"
)

// Host is a native module the interpreter exposes to the guest program
// under its namespace name. Concrete hosts are owned by the interpreter
// implementation; the boot layer only knows them by name.
type Host interface {
	// Namespace returns the module's well-known name (e.g. "lumen").
	Namespace() string
}

// Module is a handle to a module table returned by Require. The boot layer
// uses it to tag the application module with invocation metadata.
type Module interface {
	Name() string
	// SetFlag sets a boolean field on the module (e.g. "exe").
	SetFlag(name string, value bool) error
	// SetVariant sets a polymorphic field on the module (e.g. "restart").
	SetVariant(name string, value lumen.Variant) error
}

// Callable is an entry routine returned by RequireEntry, not yet executed.
type Callable interface {
	Name() string
}

// StepState is the outcome of a single coroutine resume.
type StepState int

const (
	// StepYielded means the context gave control back at a frame boundary
	// and can be resumed again.
	StepYielded StepState = iota
	// StepDone means the context ran to normal completion.
	StepDone
	// StepFailed means the context raised an unhandled error.
	StepFailed
)

func (s StepState) String() string {
	switch s {
	case StepYielded:
		return "yielded"
	case StepDone:
		return "done"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepResult reports one resume of a coroutine. Err is set only for
// StepFailed and carries the guest's unhandled error.
type StepResult struct {
	State StepState
	Err   error
}

// Coroutine is a suspendable execution context. Resume advances it by one
// step; the returned error reports native-level misuse (such as resuming a
// terminal context), while guest faults arrive as StepFailed results.
type Coroutine interface {
	Resume(ctx context.Context) (StepResult, error)
}

// Interpreter is one live script VM instance. Operations must be invoked in
// bootstrap order: OpenStdlib before any Preload, Preload before Require of
// the same name, SetArgs before the entry module is required.
type Interpreter interface {
	// OpenStdlib opens the interpreter's own standard library surface.
	OpenStdlib(ctx context.Context) error

	// Preload registers a native host module so the guest can require it
	// by its namespace name.
	Preload(h Host) error

	// SetArgs installs the invocation-argument table as the global argument
	// state visible to the guest.
	SetArgs(args Args) error

	// Require loads a native module by name and returns its table handle.
	Require(ctx context.Context, name string) (Module, error)

	// RequireEntry loads the boot program by name and returns its entry
	// routine without executing it.
	RequireEntry(ctx context.Context, name string) (Callable, error)

	// NewCoroutine wraps an entry routine as a resumable execution context.
	NewCoroutine(entry Callable) (Coroutine, error)

	// Depth reports the current depth of the interpreter's value stack.
	Depth() int

	// SetDepth discards any values above depth, restoring the stack to a
	// previously recorded marker.
	SetDepth(depth int)

	// Close destroys the instance. Must be called exactly once.
	Close(ctx context.Context) error
}

// Factory creates interpreter instances and reports the linked runtime
// library's version before any instance exists, so the version gate can run
// without allocating anything.
type Factory interface {
	LibraryVersion() string
	New(ctx context.Context) (Interpreter, error)
}
