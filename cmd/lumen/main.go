// Command lumen launches a guest application: it bootstraps the embedded
// interpreter, hands it the command line, and drives the application's entry
// coroutine until it finishes or asks for a restart.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lumen-engine/lumen"
	"github.com/lumen-engine/lumen/boot"
	"github.com/lumen-engine/lumen/engine"
)

// bootProgram is the built-in guest entry module. It receives the rewritten
// argument vector and is responsible for locating and running the actual
// application named there.
//
//go:embed boot.wasm
var bootProgram []byte

func main() {
	os.Exit(realMain(os.Args))
}

// realMain returns the exit code instead of calling os.Exit directly so
// deferred cleanup, such as the log flush, still runs.
func realMain(args []string) int {
	argv, debug, interactive := splitHostFlags(args)

	log := zap.NewNop()
	if debug {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		log = dev
		defer log.Sync()
	}
	engine.SetLogger(log)

	env := newEnv(log)

	if interactive {
		if err := runInteractive(env, argv); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	return run(env, argv)
}

// splitHostFlags strips the launcher's own flags out of the argument vector
// before the guest sees it. This is a manual scan rather than the flag
// package: guest-bound arguments like --version and --help must pass through
// untouched, and flag.Parse would claim them. The scan stops at the first
// positional argument; anything after the application path belongs to the
// guest even when it looks like a host flag.
func splitHostFlags(raw []string) (argv []string, debug, interactive bool) {
	argv = make([]string, 0, len(raw))
	scanning := true
	for i, a := range raw {
		if i > 0 && scanning {
			switch a {
			case "-debug":
				debug = true
				continue
			case "-i":
				interactive = true
				continue
			}
			scanning = false
		}
		argv = append(argv, a)
	}
	return argv, debug, interactive
}

func newEnv(log *zap.Logger) *boot.Env {
	factory := engine.NewFactory(engine.Config{
		Boot:   bootProgram,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	var env *boot.Env
	env = boot.NewEnv(factory, boot.HostPlatform{},
		engine.NewSetupHost(),
		engine.NewCoreHost(engine.CoreConfig{
			ScheduleRestart: func(v lumen.Variant) { env.ScheduleRestart(v) },
		}),
	)
	env.Log = log
	return env
}

// run is the host scheduler: one Init/Iterate/Quit cycle per application run,
// looping while the guest keeps scheduling restarts.
func run(env *boot.Env, argv []string) int {
	ctx := context.Background()

	for {
		st, res := env.Init(ctx, argv)
		if st == nil {
			if res == boot.Success {
				return 0
			}
			return 1
		}

		for res == boot.Continue {
			res = st.Iterate(ctx)
		}
		st.Quit(ctx)

		if !env.RestartPending() {
			if res == boot.Success {
				return 0
			}
			return 1
		}
	}
}
