// Package vm defines the contract between the boot layer and the embedded
// interpreter.
//
// The boot layer treats the interpreter as an opaque machine with a minimal
// operation set: create, open the standard library surface, preload native
// host modules under well-known names, install the invocation-argument
// table, require modules by name, wrap an entry callable as a resumable
// coroutine, and close. Execution semantics, memory model and garbage
// collection are entirely the implementation's business; package engine
// provides the production implementation on top of wazero.
//
// Instances are NOT thread-safe. The launcher drives exactly one interpreter
// from a single goroutine.
package vm
