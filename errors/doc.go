// Package errors provides structured error types for the lumen launcher.
//
// Errors are categorized by Phase (where in the bootstrap lifecycle the error
// occurred) and Kind (error category). The Error type carries the name of the
// module involved and a cause chain.
//
// Convenience constructors cover the common patterns:
//
//	err := errors.VersionMismatch("1.4.2", "1.3.0")
//	err := errors.Registration(errors.PhaseBootstrap, "lumen", cause)
//	err := errors.GuestFault("lumen.boot", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
