// Package engine implements the vm contract on top of wazero.
//
// The guest program is a WebAssembly module. The standard library surface is
// WASI preview1; the invocation-argument table travels to the guest as WASI
// argv, flattened in the vm.Args index convention. Native modules are wazero
// host modules instantiated on require, and the entry coroutine is a call
// into the guest's exported boot function driven on its own goroutine: the
// guest yields by calling the native yield function, which parks the
// goroutine until the next resume.
//
// Restart values cross the guest boundary as CBOR, so the guest sees the
// same polymorphic payload the host scheduled.
package engine
