package boot

import (
	"context"
	"fmt"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/errors"
	"github.com/lumen-engine/lumen/vm"
)

// The fakes below stand in for the engine so lifecycle tests can observe
// the exact operation order and inject failures at any bootstrap step.

type fakePlatform struct {
	bundle    string
	fused     bool
	drop      string
	dropCalls int
	noise     string
	tty       bool
}

func (p *fakePlatform) BundledApp() (string, bool) { return p.bundle, p.fused }

func (p *fakePlatform) DroppedFile() string {
	p.dropCalls++
	return p.drop
}

func (p *fakePlatform) NoisePrefix() string { return p.noise }

func (p *fakePlatform) InteractiveStdin() bool { return p.tty }

type fakeHost struct{ ns string }

func (h fakeHost) Namespace() string { return h.ns }

type fakeModule struct {
	name  string
	flags map[string]bool
	vars  map[string]lumen.Variant
}

func (m *fakeModule) Name() string { return m.name }

func (m *fakeModule) SetFlag(name string, v bool) error {
	m.flags[name] = v
	return nil
}

func (m *fakeModule) SetVariant(name string, v lumen.Variant) error {
	m.vars[name] = v
	return nil
}

// scriptedCoroutine replays a fixed sequence of step results. Every yielded
// step leaves a junk value on the interpreter's stack, the way a guest's
// yield hints would, so tests can check the driver trims them.
type scriptedCoroutine struct {
	interp *fakeInterp
	steps  []vm.StepResult
	idx    int
}

func (c *scriptedCoroutine) Resume(ctx context.Context) (vm.StepResult, error) {
	if c.idx >= len(c.steps) {
		return vm.StepResult{}, errors.Terminal("resume after completion")
	}
	res := c.steps[c.idx]
	c.idx++
	if res.State == vm.StepYielded {
		c.interp.depth += 2
	}
	return res, nil
}

type fakeInterp struct {
	ops        []string
	args       vm.Args
	argsSet    bool
	modules    map[string]*fakeModule
	steps      []vm.StepResult
	requireErr map[string]error
	depth      int
	closed     int
}

func newFakeInterp(steps ...vm.StepResult) *fakeInterp {
	return &fakeInterp{
		modules:    make(map[string]*fakeModule),
		requireErr: make(map[string]error),
		steps:      steps,
	}
}

func (f *fakeInterp) OpenStdlib(ctx context.Context) error {
	f.ops = append(f.ops, "openstdlib")
	return nil
}

func (f *fakeInterp) Preload(h vm.Host) error {
	f.ops = append(f.ops, "preload:"+h.Namespace())
	return nil
}

func (f *fakeInterp) SetArgs(args vm.Args) error {
	f.ops = append(f.ops, "setargs")
	f.args = args
	f.argsSet = true
	return nil
}

func (f *fakeInterp) Require(ctx context.Context, name string) (vm.Module, error) {
	f.ops = append(f.ops, "require:"+name)
	if err := f.requireErr[name]; err != nil {
		return nil, err
	}
	m := &fakeModule{name: name, flags: make(map[string]bool), vars: make(map[string]lumen.Variant)}
	f.modules[name] = m
	f.depth++
	return m, nil
}

func (f *fakeInterp) RequireEntry(ctx context.Context, name string) (vm.Callable, error) {
	f.ops = append(f.ops, "entry:"+name)
	if err := f.requireErr[name]; err != nil {
		return nil, err
	}
	f.depth++
	return fakeCallable(name), nil
}

type fakeCallable string

func (c fakeCallable) Name() string { return string(c) }

func (f *fakeInterp) NewCoroutine(entry vm.Callable) (vm.Coroutine, error) {
	f.ops = append(f.ops, "newcoroutine")
	return &scriptedCoroutine{interp: f, steps: f.steps}, nil
}

func (f *fakeInterp) Depth() int { return f.depth }

func (f *fakeInterp) SetDepth(d int) {
	if d < f.depth {
		f.depth = d
	}
}

func (f *fakeInterp) Close(ctx context.Context) error {
	f.closed++
	if f.closed > 1 {
		return fmt.Errorf("closed %d times", f.closed)
	}
	return nil
}

type fakeFactory struct {
	version string
	interp  *fakeInterp
	newErr  error
	created int
}

func (f *fakeFactory) LibraryVersion() string { return f.version }

func (f *fakeFactory) New(ctx context.Context) (vm.Interpreter, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	f.created++
	return f.interp, nil
}
