package guard

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// BestEffort turns error-returning teardown into an action that ignores the
// error, e.g. BestEffort((*exec.Cmd).Wait).
func BestEffort[T any](fn func(T) error) func(T) {
	return func(v T) {
		_ = fn(v)
	}
}

// Logged turns error-returning teardown into an action that logs a failure
// at warn level and otherwise carries on.
func Logged[T any](logger *zap.Logger, msg string, fn func(T) error) func(T) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(v T) {
		if err := fn(v); err != nil {
			logger.Warn(msg, zap.Error(err))
		}
	}
}

// Sequence runs teardown steps on the same value in order. Every step runs
// even if an earlier one fails; the errors are combined.
func Sequence[T any](fns ...func(T) error) func(T) error {
	return func(v T) error {
		var err error
		for _, fn := range fns {
			err = multierr.Append(err, fn(v))
		}
		return err
	}
}
