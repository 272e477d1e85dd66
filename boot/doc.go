// Package boot turns a raw command-line invocation into a running,
// cooperatively scheduled guest program and keeps it alive until the program
// signals completion or the host tears it down.
//
// The package owns no loop. An external host scheduler drives it through
// four serialized callbacks: Init, Iterate, Event and Quit. Init runs the
// version gate, preprocesses arguments, bootstraps the interpreter and
// resolves the entry routine into a resumable coroutine; each Iterate
// performs exactly one resume; Quit releases the interpreter exactly once.
//
// Process-wide state that must outlive a single Init/Quit cycle (the
// pending restart value and the cached dropped-file query) lives on Env,
// which the embedder creates once per process.
package boot
