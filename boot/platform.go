package boot

import (
	"os"

	"golang.org/x/term"
)

// Platform is the argument-preprocessing collaborator. It answers the
// platform-specific questions the preprocessor asks; lookup failures are
// reported as "nothing found", never as errors.
type Platform interface {
	// BundledApp returns the path to an application package bundled with
	// the launcher, and whether the process runs in fused mode. An empty
	// path means no bundle.
	BundledApp() (path string, fused bool)

	// DroppedFile returns the path of a file handed to the process by the
	// desktop environment, or "". The query is stateful; callers must
	// cache the result for the process lifetime.
	DroppedFile() string

	// NoisePrefix returns the prefix of launcher-injected junk arguments
	// to drop, or "" when the platform injects none.
	NoisePrefix() string

	// InteractiveStdin reports whether stdin is attached to a terminal.
	InteractiveStdin() bool
}

// HostPlatform is the default Platform for the current process: no bundled
// package, no dropped files, and the desktop session-identifier noise
// prefix.
type HostPlatform struct{}

func (HostPlatform) BundledApp() (string, bool) { return "", false }

func (HostPlatform) DroppedFile() string { return "" }

func (HostPlatform) NoisePrefix() string { return "-psn_" }

func (HostPlatform) InteractiveStdin() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
