package guard

import (
	"runtime"

	"github.com/on-the-ground/with_drop/guard/internal/scope"
	"go.uber.org/zap"
)

// leakReport must not reference the guard, or the guard never becomes
// unreachable.
type leakReport struct {
	scope    *scope.Scope
	logger   *zap.Logger
	observer Observer
}

func watchLeak[T any, F ~func(T)](w *WithDrop[T, F]) {
	runtime.AddCleanup(w, reportLeak, leakReport{
		scope:    w.scope,
		logger:   w.cfg.Logger,
		observer: w.cfg.Observer,
	})
}

// reportLeak runs on a runtime goroutine and never runs the action.
func reportLeak(r leakReport) {
	if !r.scope.Armed() {
		return
	}
	r.logger.Warn("guard collected while armed, cleanup action never ran",
		zap.String("guard_id", r.scope.ID),
		zap.String("guard_name", r.scope.Name),
	)
	r.observer.OnLeak(Event{ID: r.scope.ID, Name: r.scope.Name})
}
