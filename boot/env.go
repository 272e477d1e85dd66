package boot

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/vm"
)

// Env is the process-scoped context the lifecycle runs in. It carries the
// interpreter factory, the platform collaborator, the native host modules to
// preload, and the two pieces of state that survive a restart: the pending
// restart value and the cached dropped-file query.
//
// One Env serves any number of Init/Quit cycles; all access is from the
// scheduler's single thread.
type Env struct {
	factory  vm.Factory
	platform Platform
	hosts    []vm.Host

	// Out receives version, usage and error text. External tooling matches
	// against it, so the text printed here must stay stable.
	Out io.Writer

	Log *zap.Logger

	restart lumen.Variant

	dropChecked bool
	dropPath    string
}

// NewEnv creates the process context. hosts are preloaded during bootstrap
// in the order given; one of them should be named vm.SetupModule and one
// vm.CoreModule.
func NewEnv(factory vm.Factory, platform Platform, hosts ...vm.Host) *Env {
	return &Env{
		factory:  factory,
		platform: platform,
		hosts:    hosts,
		Out:      os.Stdout,
		Log:      zap.NewNop(),
	}
}

// ScheduleRestart stores v as the restart value for the next Init cycle,
// replacing any previous one. The guest program calls this (through the
// native module) before asking the scheduler for a restart.
func (e *Env) ScheduleRestart(v lumen.Variant) {
	e.restart = v
}

// RestartPending reports whether a restart value is waiting to be consumed.
// The host scheduler checks this after Quit to decide between exiting and
// re-invoking Init.
func (e *Env) RestartPending() bool {
	return !e.restart.IsNil()
}

// takeRestart consumes the pending restart value. At most one value is
// pending at a time; consuming it clears it.
func (e *Env) takeRestart() lumen.Variant {
	v := e.restart
	e.restart = lumen.Nil()
	return v
}

// droppedFile returns the platform's dropped-file path, querying it at most
// once per process. The query is stateful on some platforms, so a restart
// must see the first cycle's answer rather than repeat it.
func (e *Env) droppedFile() string {
	if !e.dropChecked {
		e.dropChecked = true
		e.dropPath = e.platform.DroppedFile()
	}
	return e.dropPath
}
