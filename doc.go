// Package lumen is the launcher layer for script-driven applications.
//
// A lumen application's real logic lives in a guest program executed by an
// embedded WebAssembly VM. The packages in this module implement the
// bootstrap-and-drive protocol around that VM: they stand up the interpreter,
// inject the runtime environment, locate and start the application's entry
// program, and resume it in lock-step with a host-owned lifecycle scheduler.
//
// # Architecture Overview
//
//	lumen/          Root package with version identity and the Variant type
//	├── boot/       Lifecycle adapter, bootstrapper, coroutine driver
//	├── vm/         The opaque interpreter contract the boot layer drives
//	├── engine/     wazero-backed implementation of the vm contract
//	├── errors/     Structured error types for debugging
//	└── cmd/lumen/  The launcher binary and its host scheduler loop
//
// # Control Flow
//
// The boot layer never owns a loop. The host scheduler (cmd/lumen, or any
// embedder) drives it through exactly four callbacks:
//
//	st, res := env.Init(ctx, argv)    // version gate, bootstrap, entry resolve
//	for res == boot.Continue {
//	    res = st.Iterate(ctx)         // exactly one coroutine resume
//	}
//	st.Quit(ctx)                      // release the interpreter, once
//
// The guest program yields control back to the host at frame boundaries of
// its own choosing; the native layer never suspends mid-operation.
//
// # Thread Safety
//
// Everything here is single-threaded by contract. The scheduler guarantees
// serialized delivery of Init, Iterate, Event and Quit; there is exactly one
// live execution context at a time.
package lumen
