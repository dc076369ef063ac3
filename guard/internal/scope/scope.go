package scope

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Scope tracks whether a guard still owns its value.
//
// A scope starts armed and can be disarmed exactly once. Whoever wins the
// Disarm call owns the value from then on: the cleanup action on drop, the
// caller on consumption.
type Scope struct {
	ID    string
	Name  string
	armed atomic.Bool
}

// New returns an armed scope. A uuid is assigned only when withID is set,
// since an un-instrumented guard has no use for one.
func New(name string, withID bool) *Scope {
	s := &Scope{Name: name}
	if withID {
		s.ID = uuid.New().String()
	}
	s.armed.Store(true)
	return s
}

// Armed reports whether the scope has not been disarmed yet.
func (s *Scope) Armed() bool {
	return s.armed.Load()
}

// Disarm flips the scope to disarmed and reports whether this call did it.
func (s *Scope) Disarm() bool {
	return s.armed.CompareAndSwap(true, false)
}
