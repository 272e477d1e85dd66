package boot

import "strings"

// rewriteArgs normalizes a raw argument vector into the list the guest
// environment will see. The original is never mutated; the returned vector
// is freshly allocated and owned by the caller until it has been copied into
// the interpreter's global state.
//
// Policies, in order:
//   - a launcher-injected noise argument (session identifier) in the first
//     user position is dropped;
//   - a bundled application package, when the platform has one, is inserted
//     as the new first user argument, followed by a synthetic --fused flag
//     when the bundle runs in fused mode;
//   - otherwise, when stdin is not interactive, a dropped-file path is
//     inserted as the first user argument. That query is cached on Env so a
//     self-restart does not repeat it.
//
// The executable path at index 0 is always preserved, and the relative
// order of surviving user arguments never changes.
func (e *Env) rewriteArgs(raw []string) []string {
	out := make([]string, 0, len(raw)+2)
	for i, a := range raw {
		if i == 1 {
			if prefix := e.platform.NoisePrefix(); prefix != "" && strings.HasPrefix(a, prefix) {
				continue
			}
		}
		out = append(out, a)
	}

	if bundle, fused := e.platform.BundledApp(); bundle != "" {
		insert := []string{bundle}
		if fused {
			insert = append(insert, "--fused")
		}
		out = insertAfterExe(out, insert...)
	} else if !e.platform.InteractiveStdin() {
		if drop := e.droppedFile(); drop != "" {
			out = insertAfterExe(out, drop)
		}
	}

	return out
}

// insertAfterExe splices extra in at position 1, shifting existing user
// arguments right.
func insertAfterExe(args []string, extra ...string) []string {
	out := make([]string, 0, len(args)+len(extra))
	if len(args) > 0 {
		out = append(out, args[0])
	}
	out = append(out, extra...)
	if len(args) > 1 {
		out = append(out, args[1:]...)
	}
	return out
}
