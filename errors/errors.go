package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the launcher lifecycle the error occurred
type Phase string

const (
	PhaseVersion   Phase = "version"   // version gate
	PhaseArgs      Phase = "args"      // argument preprocessing
	PhaseBootstrap Phase = "bootstrap" // interpreter setup and module registration
	PhaseRuntime   Phase = "runtime"   // coroutine execution
	PhaseShutdown  Phase = "shutdown"  // teardown
)

// Kind categorizes the error
type Kind string

const (
	KindMismatch       Kind = "version_mismatch"
	KindAllocation     Kind = "allocation"
	KindRegistration   Kind = "registration"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindGuestFault     Kind = "guest_fault"
	KindTerminal       Kind = "terminal_state"
)

// Error is the structured error type used throughout the launcher
type Error struct {
	Phase  Phase
	Kind   Kind
	Module string // native or guest module name, when one is involved
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Module != "" {
		b.WriteString(" in ")
		b.WriteString(e.Module)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's phase and kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// VersionMismatch reports disagreement between the launcher's compiled-in
// version and the version reported by the linked engine.
func VersionMismatch(binary, library string) *Error {
	return &Error{
		Phase:  PhaseVersion,
		Kind:   KindMismatch,
		Detail: fmt.Sprintf("binary is version %s, library is version %s", binary, library),
	}
}

// Registration creates a native module registration error
func Registration(phase Phase, module string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Module: module,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotInitialized creates a not-initialized error for a missing collaborator
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Allocation creates a fatal allocation error raised during bootstrap
func Allocation(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseBootstrap,
		Kind:   KindAllocation,
		Detail: detail,
		Cause:  cause,
	}
}

// GuestFault wraps an unhandled error raised inside the guest program.
// The launcher never catches these; they surface as a failed resume.
func GuestFault(module string, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindGuestFault,
		Module: module,
		Cause:  cause,
	}
}

// Terminal reports an attempt to resume an execution context that has
// already completed or failed.
func Terminal(detail string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindTerminal,
		Detail: detail,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
