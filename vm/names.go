package vm

// Well-known module names on the environment boundary. The boot layer
// guarantees the guest can require the application's native module under
// CoreModule and that the entry program is loaded under BootModule.
const (
	// SetupModule is the interpreter-specific performance/setup module,
	// required eagerly before any argument-dependent logic runs.
	SetupModule = "lumen.setup"

	// CoreModule is the application's native module.
	CoreModule = "lumen"

	// BootModule is the script-level entry point, distinct from the
	// native module. Requiring it returns the entry routine.
	BootModule = "lumen.boot"
)

// ArgMarker is the synthetic argument installed at index 0 of the
// invocation-argument table instead of the executable path.
const ArgMarker = "embedded boot.wasm"
