package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/vm"
)

// moduleHandle is the host-side view of an instantiated native module:
// a table of boolean flags and variant fields the guest reads through the
// module's exported functions.
type moduleHandle struct {
	name  string
	mod   api.Module
	flags map[string]bool
	vars  map[string]lumen.Variant
	raw   map[string][]byte // CBOR form of vars, served to the guest
}

func newModuleHandle(name string) *moduleHandle {
	return &moduleHandle{
		name:  name,
		flags: make(map[string]bool),
		vars:  make(map[string]lumen.Variant),
		raw:   make(map[string][]byte),
	}
}

func (h *moduleHandle) Name() string { return h.name }

func (h *moduleHandle) SetFlag(name string, value bool) error {
	h.flags[name] = value
	return nil
}

func (h *moduleHandle) SetVariant(name string, value lumen.Variant) error {
	enc, err := encodeVariant(value)
	if err != nil {
		return err
	}
	h.vars[name] = value
	h.raw[name] = enc
	return nil
}

var _ vm.Module = (*moduleHandle)(nil)

// SetupHost is the interpreter-specific performance/setup module, required
// eagerly before any argument-dependent logic runs. Tune runs once at
// require time and is also exported to the guest so program-spawned threads
// can repeat the setup in their own context.
type SetupHost struct {
	Tune func()
}

func NewSetupHost() *SetupHost { return &SetupHost{} }

func (s *SetupHost) Namespace() string { return vm.SetupModule }

func (s *SetupHost) instantiate(ctx context.Context, i *Interp) (*moduleHandle, error) {
	h := newModuleHandle(s.Namespace())

	mod, err := i.rt.NewHostModuleBuilder(s.Namespace()).
		NewFunctionBuilder().
		WithFunc(func(context.Context) { s.tune() }).
		Export("tune").
		Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	h.mod = mod

	s.tune()
	return h, nil
}

func (s *SetupHost) tune() {
	if s.Tune != nil {
		s.Tune()
	}
}

// CoreConfig wires the application's native module to the process context.
type CoreConfig struct {
	// ScheduleRestart receives the restart value the guest sets before
	// asking for a fresh lifecycle. Nil drops such requests.
	ScheduleRestart func(lumen.Variant)
}

// CoreHost is the application's native module, exposed to the guest under
// vm.CoreModule. Its function surface:
//
//	yield(hint: i32)                   give control back to the host scheduler
//	exe() -> i32                       1 when running as a standalone launcher
//	restart-size() -> i32              size of the pending restart value (CBOR)
//	restart-copy(ptr: i32) -> i32      copy the restart value into guest memory
//	set-restart(ptr: i32, len: i32)    schedule a restart value for the next cycle
type CoreHost struct {
	cfg CoreConfig
}

func NewCoreHost(cfg CoreConfig) *CoreHost {
	return &CoreHost{cfg: cfg}
}

func (c *CoreHost) Namespace() string { return vm.CoreModule }

func (c *CoreHost) instantiate(ctx context.Context, i *Interp) (*moduleHandle, error) {
	h := newModuleHandle(c.Namespace())

	b := i.rt.NewHostModuleBuilder(c.Namespace())

	b.NewFunctionBuilder().
		WithFunc(func(_ context.Context, hint int32) { i.yieldCurrent(hint) }).
		Export("yield")

	b.NewFunctionBuilder().
		WithFunc(func(context.Context) int32 {
			if h.flags["exe"] {
				return 1
			}
			return 0
		}).
		Export("exe")

	b.NewFunctionBuilder().
		WithFunc(func(context.Context) int32 {
			return int32(len(h.raw["restart"]))
		}).
		Export("restart-size")

	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			ptr := api.DecodeU32(stack[0])
			raw := h.raw["restart"]
			if len(raw) == 0 || !mod.Memory().Write(ptr, raw) {
				stack[0] = api.EncodeI32(0)
				return
			}
			stack[0] = api.EncodeI32(int32(len(raw)))
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}).
		Export("restart-copy")

	b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
			ptr := api.DecodeU32(stack[0])
			size := api.DecodeU32(stack[1])
			raw, ok := mod.Memory().Read(ptr, size)
			if !ok || c.cfg.ScheduleRestart == nil {
				return
			}
			v, err := decodeVariant(raw)
			if err != nil {
				Logger().Warn("discarding malformed restart value")
				return
			}
			c.cfg.ScheduleRestart(v)
		}), []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, nil).
		Export("set-restart")

	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, err
	}
	h.mod = mod
	return h, nil
}
