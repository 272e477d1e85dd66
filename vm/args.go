package vm

// Args is the invocation-argument table installed into the interpreter's
// global state during bootstrap.
//
// Index convention, as seen by the guest: index 0 holds Marker, a synthetic
// entry that is deliberately not the executable path; its presence signals
// embedded invocation semantics to the guest environment. The real
// executable path follows at index 1, then the user-supplied arguments in
// their original order.
type Args struct {
	Marker string
	Exe    string
	User   []string
}

// Flatten returns the table in guest order: [Marker, Exe, User...].
// The returned slice is freshly allocated; the interpreter owns its copy.
func (a Args) Flatten() []string {
	out := make([]string, 0, 2+len(a.User))
	out = append(out, a.Marker, a.Exe)
	out = append(out, a.User...)
	return out
}
