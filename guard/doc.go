// Package guard binds a value to a one-shot cleanup action.
//
// Many types need teardown that nothing in their own API performs for you: a
// started *exec.Cmd has to be waited on, a temp dir has to be removed, a
// pinned page has to be unpinned. WithDrop pairs such a value with the action
// that tears it down and guarantees the action runs exactly once.
//
// # Scope exit
//
// Go has no destructors, so the scope exit is spelled with defer:
//
//	g := guard.New(cmd, guard.BestEffort((*exec.Cmd).Wait))
//	defer g.Drop()
//
// Drop runs on every exit path of the surrounding function: fall-through,
// early return and panic. Using wraps the same pattern around a body function
// for callers that prefer a block.
//
// # Access
//
// Get returns the current value and Ptr returns a pointer to it. Whatever the
// value is when the guard drops is what the action receives, so mutations made
// through Ptr are visible to the action.
//
// # Opting out
//
// IntoInnerAndAction hands the value and the action back to the caller and
// disarms the guard; IntoInner does the same and throws the action away. A
// deferred Drop on a disarmed guard does nothing, so it is fine to defer Drop
// first and consume later on the success path.
//
// # Failures inside the action
//
// The guard does not recover, wrap or log anything the action does. An action
// that can fail is expected to deal with the failure itself. BestEffort and
// Logged adapt error-returning teardown (Close, Wait, Remove) into actions
// that discard or log the error.
//
// # Ownership
//
// A guard is owned by one goroutine at a time and does no locking of its own.
// It can be handed to another goroutine if the value and the action can be.
// Move transfers ownership to a fresh guard and leaves the old one inert.
//
// Example:
//
//	func open(path string) (*guard.WithDrop[*os.File, func(*os.File)], error) {
//	    f, err := os.Open(path)
//	    if err != nil {
//	        return nil, err
//	    }
//	    g := guard.New(f, guard.BestEffort((*os.File).Close))
//	    defer g.Drop()
//
//	    if err := checkHeader(g.Get()); err != nil {
//	        return nil, err
//	    }
//	    return g.Move(), nil
//	}
package guard
