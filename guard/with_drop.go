package guard

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/with_drop/guard/internal/scope"
	"go.uber.org/zap"
)

// ErrConsumed is the panic value (wrapped) for using a guard whose value has
// already been handed to its action or back to the caller.
var ErrConsumed = errors.New("guard already consumed")

// WithDrop holds a value together with the action that tears it down.
//
// The action runs at most once: on Drop, with whatever the value is at that
// moment. After IntoInner, IntoInnerAndAction or Move the guard is inert and
// Drop does nothing.
//
// This is safe only in a single goroutine at a time. Hand it over, don't share it.
type WithDrop[T any, F ~func(T)] struct {
	inner  T
	dropFn F

	scope *scope.Scope
	cfg   Config
}

// New wraps inner and arms dropFn to run when the guard is dropped.
// A nil dropFn is allowed and does nothing on drop.
//
// Usage:
//
//	g := guard.New(conn, func(c net.Conn) { _ = c.Close() })
//	defer g.Drop()
func New[T any, F ~func(T)](inner T, dropFn F, opts ...Option) *WithDrop[T, F] {
	return arm(inner, dropFn, newConfig(opts))
}

// With is an alias for New.
func With[T any, F ~func(T)](inner T, dropFn F, opts ...Option) *WithDrop[T, F] {
	return New(inner, dropFn, opts...)
}

func arm[T any, F ~func(T)](inner T, dropFn F, cfg Config) *WithDrop[T, F] {
	w := &WithDrop[T, F]{
		inner:  inner,
		dropFn: dropFn,
		scope:  scope.New(cfg.Name, cfg.instrumented),
		cfg:    cfg,
	}
	if cfg.LeakCheck {
		watchLeak(w)
	}
	w.debug("guard armed")
	w.cfg.Observer.OnArm(w.event())
	return w
}

// Get returns the current value.
func (w *WithDrop[T, F]) Get() T {
	w.mustBeArmed("Get")
	return w.inner
}

// Ptr returns a pointer to the wrapped value. Writes through it change what
// the action receives. The pointer must not be used once the guard is dropped
// or consumed.
func (w *WithDrop[T, F]) Ptr() *T {
	w.mustBeArmed("Ptr")
	return &w.inner
}

// Set replaces the wrapped value. The action will receive v instead.
func (w *WithDrop[T, F]) Set(v T) {
	w.mustBeArmed("Set")
	w.inner = v
}

// Update mutates the wrapped value in place.
func (w *WithDrop[T, F]) Update(fn func(*T)) {
	w.mustBeArmed("Update")
	fn(&w.inner)
}

// Armed reports whether the guard still owns its value.
func (w *WithDrop[T, F]) Armed() bool {
	return w != nil && w.scope.Armed()
}

// ID returns the guard's uuid, or "" when no instrumentation option was given.
func (w *WithDrop[T, F]) ID() string {
	return w.scope.ID
}

// Name returns the label given with WithName.
func (w *WithDrop[T, F]) Name() string {
	return w.scope.Name
}

// Drop disarms the guard and runs the action with the current value.
//
// Drop is a no-op on a nil guard, on a guard that was already dropped or
// consumed, and when called again from inside the action. A panic raised by
// the action propagates to the caller of Drop; the guard stays disarmed.
func (w *WithDrop[T, F]) Drop() {
	if w == nil || !w.scope.Disarm() {
		return
	}
	inner, dropFn := w.take()
	w.debug("guard dropped")
	w.cfg.Observer.OnDrop(w.event())

	if fn := (func(T))(dropFn); fn != nil {
		fn(inner)
	}
}

// Close drops the guard. It always returns nil and exists so a guard can be
// used wherever an io.Closer is expected.
func (w *WithDrop[T, F]) Close() error {
	w.Drop()
	return nil
}

// IntoInnerAndAction disarms the guard and returns the value and the action
// without running it. Running the action afterwards is up to the caller.
func (w *WithDrop[T, F]) IntoInnerAndAction() (T, F) {
	if !w.scope.Disarm() {
		panic(w.consumedErr("IntoInnerAndAction"))
	}
	inner, dropFn := w.take()
	w.debug("guard consumed")
	w.cfg.Observer.OnConsume(w.event())
	return inner, dropFn
}

// IntoInner disarms the guard and returns the value. The action is discarded
// and never runs.
func (w *WithDrop[T, F]) IntoInner() T {
	inner, _ := w.IntoInnerAndAction()
	return inner
}

// Move transfers the value and the action to a new guard and leaves w inert.
// The new guard keeps w's id, name and instrumentation. No arm or consume
// event is emitted since ownership never leaves a guard.
//
// A constructor can defer Drop on its guard to cover failure paths and return
// Move() on success; the deferred Drop then does nothing.
func (w *WithDrop[T, F]) Move() *WithDrop[T, F] {
	if !w.scope.Disarm() {
		panic(w.consumedErr("Move"))
	}
	inner, dropFn := w.take()

	moved := &WithDrop[T, F]{
		inner:  inner,
		dropFn: dropFn,
		scope:  scope.New(w.scope.Name, false),
		cfg:    w.cfg,
	}
	moved.scope.ID = w.scope.ID
	if moved.cfg.LeakCheck {
		watchLeak(moved)
	}
	w.debug("guard moved")
	return moved
}

// Clone returns a new armed guard holding a shallow copy of the value and
// the same action. Each guard runs the action for its own copy. State captured
// by the action closure is shared between them.
func (w *WithDrop[T, F]) Clone() *WithDrop[T, F] {
	w.mustBeArmed("Clone")
	return arm(w.inner, w.dropFn, w.cfg)
}

func (w *WithDrop[T, F]) String() string {
	if !w.Armed() {
		return "WithDrop(<consumed>)"
	}
	return fmt.Sprintf("WithDrop(%v)", w.inner)
}

// take moves the value and the action out so the guard no longer references
// them.
func (w *WithDrop[T, F]) take() (T, F) {
	var (
		zeroT T
		zeroF F
	)
	inner, dropFn := w.inner, w.dropFn
	w.inner, w.dropFn = zeroT, zeroF
	return inner, dropFn
}

func (w *WithDrop[T, F]) mustBeArmed(op string) {
	if !w.scope.Armed() {
		panic(w.consumedErr(op))
	}
}

func (w *WithDrop[T, F]) consumedErr(op string) error {
	return fmt.Errorf("%w: %s on guard %q (id %q)", ErrConsumed, op, w.scope.Name, w.scope.ID)
}

func (w *WithDrop[T, F]) event() Event {
	return Event{ID: w.scope.ID, Name: w.scope.Name}
}

func (w *WithDrop[T, F]) debug(msg string) {
	if ce := w.cfg.Logger.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(
			zap.String("guard_id", w.scope.ID),
			zap.String("guard_name", w.scope.Name),
		)
	}
}
