package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/errors"
	"github.com/lumen-engine/lumen/vm"
)

// libraryVersion is the version this engine build reports to the version
// gate. It moves in lock-step with lumen.Version; a launcher binary linked
// against a different engine build refuses to start.
const libraryVersion = "1.4.2"

// Config carries everything an interpreter instance needs at creation.
type Config struct {
	// Boot is the compiled entry program, required under vm.BootModule.
	Boot []byte

	// Stdout and Stderr become the guest's standard streams. Nil leaves
	// them discarded.
	Stdout io.Writer
	Stderr io.Writer
}

// Factory creates wazero-backed interpreters.
type Factory struct {
	cfg Config
}

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

func (f *Factory) LibraryVersion() string {
	return libraryVersion
}

// New creates a fresh interpreter instance. The instance owns one wazero
// runtime; Close releases it.
func (f *Factory) New(ctx context.Context) (vm.Interpreter, error) {
	rt := wazero.NewRuntime(ctx)
	return &Interp{
		rt:      rt,
		cfg:     f.cfg,
		hosts:   make(map[string]hostModule),
		modules: make(map[string]*moduleHandle),
	}, nil
}

var _ vm.Factory = (*Factory)(nil)

// Interp is one live script VM instance. Not safe for concurrent use.
type Interp struct {
	rt  wazero.Runtime
	cfg Config

	hosts   map[string]hostModule // preloaded, not yet instantiated
	modules map[string]*moduleHandle

	args    vm.Args
	argsSet bool

	stack []lumen.Variant

	// current is the one live execution context, the target of guest
	// yields. Single-threaded by contract.
	current *coroutine

	closed bool
}

var _ vm.Interpreter = (*Interp)(nil)

// hostModule is the engine-side contract a native module implements on top
// of vm.Host. Instantiation is deferred until the module is required.
type hostModule interface {
	vm.Host
	instantiate(ctx context.Context, i *Interp) (*moduleHandle, error)
}

func (i *Interp) OpenStdlib(ctx context.Context) error {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, i.rt); err != nil {
		return errors.Allocation("open stdlib", err)
	}
	return nil
}

func (i *Interp) Preload(h vm.Host) error {
	hm, ok := h.(hostModule)
	if !ok {
		return errors.Registration(errors.PhaseBootstrap, h.Namespace(),
			fmt.Errorf("host %T is not an engine host module", h))
	}
	ns := hm.Namespace()
	if _, dup := i.hosts[ns]; dup {
		return errors.Registration(errors.PhaseBootstrap, ns, fmt.Errorf("already preloaded"))
	}
	i.hosts[ns] = hm
	return nil
}

func (i *Interp) SetArgs(args vm.Args) error {
	if args.Marker == "" {
		return errors.InvalidInput(errors.PhaseBootstrap, "argument marker must not be empty")
	}
	i.args = args
	i.argsSet = true
	return nil
}

// Require instantiates a preloaded native module. Requiring the same name
// twice returns the same handle, mirroring module-cache semantics.
func (i *Interp) Require(ctx context.Context, name string) (vm.Module, error) {
	if handle, ok := i.modules[name]; ok {
		return handle, nil
	}
	hm, ok := i.hosts[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseBootstrap, "native module", name)
	}

	handle, err := hm.instantiate(ctx, i)
	if err != nil {
		return nil, errors.Registration(errors.PhaseBootstrap, name, err)
	}
	i.modules[name] = handle
	i.push(lumen.String(name))
	Logger().Debug("native module instantiated", zap.String("module", name))
	return handle, nil
}

// RequireEntry compiles and instantiates the boot program and returns its
// exported boot function without calling it. A missing or faulty program is
// an interpreter-level error, not a native failure: it comes back as a
// guest fault for the driver to surface.
func (i *Interp) RequireEntry(ctx context.Context, name string) (vm.Callable, error) {
	if !i.argsSet {
		return nil, errors.NotInitialized(errors.PhaseBootstrap, "argument table")
	}
	if len(i.cfg.Boot) == 0 {
		return nil, errors.GuestFault(name, fmt.Errorf("boot program missing"))
	}

	compiled, err := i.rt.CompileModule(ctx, i.cfg.Boot)
	if err != nil {
		return nil, errors.GuestFault(name, err)
	}

	mcfg := wazero.NewModuleConfig().
		WithName(name).
		WithArgs(i.args.Flatten()...).
		WithStartFunctions() // the entry routine is returned, not executed
	if i.cfg.Stdout != nil {
		mcfg = mcfg.WithStdout(i.cfg.Stdout)
	}
	if i.cfg.Stderr != nil {
		mcfg = mcfg.WithStderr(i.cfg.Stderr)
	}

	mod, err := i.rt.InstantiateModule(ctx, compiled, mcfg)
	if err != nil {
		return nil, errors.GuestFault(name, err)
	}

	fn := mod.ExportedFunction(entryExport)
	if fn == nil {
		return nil, errors.GuestFault(name, fmt.Errorf("no %q export", entryExport))
	}

	i.push(lumen.String(name))
	return &callable{name: name, fn: fn}, nil
}

// entryExport is the function the boot program must export.
const entryExport = "boot"

type callable struct {
	name string
	fn   api.Function
}

func (c *callable) Name() string { return c.name }

func (i *Interp) NewCoroutine(entry vm.Callable) (vm.Coroutine, error) {
	c, ok := entry.(*callable)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseBootstrap,
			fmt.Sprintf("entry %T was not produced by this engine", entry))
	}
	return newCoroutine(i, c), nil
}

func (i *Interp) Depth() int { return len(i.stack) }

func (i *Interp) SetDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth < len(i.stack) {
		i.stack = i.stack[:depth]
	}
}

func (i *Interp) push(v lumen.Variant) {
	i.stack = append(i.stack, v)
}

// Close destroys the instance: any suspended execution context is torn
// down first, then the wazero runtime is released. Call exactly once.
func (i *Interp) Close(ctx context.Context) error {
	if i.closed {
		return errors.NotInitialized(errors.PhaseShutdown, "interpreter")
	}
	i.closed = true
	if i.current != nil {
		i.current.kill()
		i.current = nil
	}
	return i.rt.Close(ctx)
}
