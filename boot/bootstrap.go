package boot

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/lumen-engine/lumen/errors"
	"github.com/lumen-engine/lumen/vm"
)

// bootstrap produces a ready-to-resume driver from a fresh interpreter.
// The step order matters: the setup module must run before the argument
// preprocessor because the preprocessor may load external code on some
// platforms, and the argument table must be installed before the entry
// program is required.
//
// Native-level failures (registration, allocation) abort with an error.
// Interpreter-level errors raised while requiring a module or the entry
// program are not caught here; they come back as a driver whose first step
// reports the failure.
func (e *Env) bootstrap(ctx context.Context, interp vm.Interpreter, argv []string) (*Driver, error) {
	if err := interp.OpenStdlib(ctx); err != nil {
		return nil, err
	}

	// Interpreter-specific setup runs as early as possible: later steps may
	// load external native libraries that assume it already happened.
	setup := e.hostByName(vm.SetupModule)
	if setup == nil {
		return nil, errors.NotFound(errors.PhaseBootstrap, "native module", vm.SetupModule)
	}
	if err := interp.Preload(setup); err != nil {
		return nil, err
	}
	if _, err := interp.Require(ctx, vm.SetupModule); err != nil {
		return nil, err
	}

	args := e.rewriteArgs(argv)

	for _, h := range e.hosts {
		if h.Namespace() == vm.SetupModule {
			continue
		}
		if err := interp.Preload(h); err != nil {
			return nil, err
		}
	}

	if err := interp.SetArgs(vm.Args{
		Marker: vm.ArgMarker,
		Exe:    args[0],
		User:   args[1:],
	}); err != nil {
		return nil, err
	}
	e.Log.Debug("arguments installed", zap.Strings("args", args))

	mod, err := interp.Require(ctx, vm.CoreModule)
	if err != nil {
		if isGuestFault(err) {
			return newFailedDriver(err), nil
		}
		return nil, err
	}
	// Tag the module as a standalone-executable invocation, as opposed to
	// the library embedding use case.
	if err := mod.SetFlag("exe", true); err != nil {
		return nil, err
	}
	if err := mod.SetVariant("restart", e.takeRestart()); err != nil {
		return nil, err
	}

	entry, err := interp.RequireEntry(ctx, vm.BootModule)
	if err != nil {
		if isGuestFault(err) {
			return newFailedDriver(err), nil
		}
		return nil, err
	}

	return newDriver(interp, entry)
}

func (e *Env) hostByName(name string) vm.Host {
	for _, h := range e.hosts {
		if h.Namespace() == name {
			return h
		}
	}
	return nil
}

func isGuestFault(err error) bool {
	return stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindGuestFault})
}
