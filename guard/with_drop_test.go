package guard_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/with_drop/guard"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithDrop_DropRunsActionWithMutatedValue(t *testing.T) {
	acc := 0

	func() {
		g := guard.New(32, func(v int) { acc += v })
		defer g.Drop()

		*g.Ptr() = 42
		require.Equal(t, 0, acc, "action must not run before scope exit")
	}()

	require.Equal(t, 42, acc)
}

func TestWithDrop_IntoInnerSkipsAction(t *testing.T) {
	flag := true
	var got string

	func() {
		g := guard.New("resource-A", func(string) { flag = false })
		defer g.Drop()

		got = g.IntoInner()
	}()

	require.Equal(t, "resource-A", got)
	require.True(t, flag)
}

func TestWithDrop_IntoInnerAndActionHandsOverAction(t *testing.T) {
	var dropped []int

	g := guard.New(7, func(v int) { dropped = append(dropped, v) })
	v, action := g.IntoInnerAndAction()
	g.Drop()

	require.Equal(t, 7, v)
	require.Empty(t, dropped)
	require.False(t, g.Armed())

	action(v + 1)
	require.Equal(t, []int{8}, dropped)
}

func TestWithDrop_DropRunsAtMostOnce(t *testing.T) {
	calls := 0
	g := guard.New(1, func(int) { calls++ })

	g.Drop()
	g.Drop()
	require.NoError(t, g.Close())

	require.Equal(t, 1, calls)
	require.False(t, g.Armed())
}

func TestWithDrop_ReentrantDrop(t *testing.T) {
	calls := 0
	var g *guard.WithDrop[int, func(int)]
	g = guard.New(1, func(int) {
		calls++
		g.Drop()
	})

	g.Drop()

	require.Equal(t, 1, calls)
}

func TestWithDrop_DropOnPanic(t *testing.T) {
	var got []string

	require.PanicsWithValue(t, "boom", func() {
		g := guard.New("conn", func(s string) { got = append(got, s) })
		defer g.Drop()

		panic("boom")
	})

	require.Equal(t, []string{"conn"}, got)
}

func TestWithDrop_DropOnEarlyReturn(t *testing.T) {
	var got []int
	errEarly := errors.New("early")

	run := func(fail bool) error {
		g := guard.New(len(got), func(v int) { got = append(got, v) })
		defer g.Drop()

		if fail {
			return errEarly
		}
		g.Set(100)
		return nil
	}

	require.ErrorIs(t, run(true), errEarly)
	require.NoError(t, run(false))
	require.Equal(t, []int{0, 100}, got)
}

func TestWithDrop_NestedScopes(t *testing.T) {
	var order []string

	func() {
		outer := guard.New("outer", func(s string) { order = append(order, s) })
		defer outer.Drop()

		func() {
			inner := guard.New("inner", func(s string) { order = append(order, s) })
			defer inner.Drop()
			defer outer.Drop()
		}()

		order = append(order, "between")
	}()

	require.Equal(t, []string{"outer", "inner", "between"}, order)
}

func TestWithDrop_ActionPanicPropagates(t *testing.T) {
	calls := 0
	g := guard.New(1, func(int) {
		calls++
		panic("cleanup failed")
	})

	require.PanicsWithValue(t, "cleanup failed", g.Drop)
	require.NotPanics(t, g.Drop)
	require.Equal(t, 1, calls)
}

func TestWithDrop_NilActionAndNilGuard(t *testing.T) {
	g := guard.New[int, func(int)](1, nil)
	require.NotPanics(t, g.Drop)

	var none *guard.WithDrop[int, func(int)]
	require.NotPanics(t, none.Drop)
	require.False(t, none.Armed())
}

func TestWithDrop_UseAfterConsumePanics(t *testing.T) {
	g := guard.New([]byte("x"), func([]byte) {})
	_ = g.IntoInner()

	for name, op := range map[string]func(){
		"Get":       func() { g.Get() },
		"Ptr":       func() { g.Ptr() },
		"Set":       func() { g.Set(nil) },
		"Update":    func() { g.Update(func(*[]byte) {}) },
		"Clone":     func() { g.Clone() },
		"Move":      func() { g.Move() },
		"IntoInner": func() { g.IntoInner() },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok)
				require.ErrorIs(t, err, guard.ErrConsumed)
			}()
			op()
		})
	}
}

func TestWithDrop_Update(t *testing.T) {
	var got []string
	g := guard.New([]string{"a"}, func(s []string) { got = s })

	g.Update(func(s *[]string) { *s = append(*s, "b") })
	g.Drop()

	require.Equal(t, []string{"a", "b"}, got)
}

func TestWithDrop_MoveDropsOnlyFromNewOwner(t *testing.T) {
	calls := 0
	build := func(fail bool) *guard.WithDrop[int, func(int)] {
		g := guard.New(5, func(int) { calls++ })
		defer g.Drop()

		if fail {
			return nil
		}
		return g.Move()
	}

	require.Nil(t, build(true))
	require.Equal(t, 1, calls)

	moved := build(false)
	require.Equal(t, 1, calls, "deferred drop of the moved-from guard must be inert")
	require.True(t, moved.Armed())
	require.Equal(t, 5, moved.Get())

	moved.Drop()
	require.Equal(t, 2, calls)
}

func TestWithDrop_CloneRunsActionPerGuard(t *testing.T) {
	var got []int
	a := guard.New(23, func(v int) { got = append(got, v) })
	c := a.Clone()

	*a.Ptr() += 42
	require.Equal(t, 23, c.Get())

	c.Drop()
	a.Drop()

	require.Equal(t, []int{23, 65}, got)
}

func TestWithDrop_String(t *testing.T) {
	g := guard.New(3, func(int) {})
	require.Equal(t, "WithDrop(3)", g.String())

	g.Drop()
	require.Equal(t, "WithDrop(<consumed>)", g.String())
}

func TestWithDrop_LogsLifecycle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	g := guard.New(1, func(int) {}, guard.WithLogger(logger), guard.WithName("pipe"))
	require.NotEmpty(t, g.ID())
	require.Equal(t, "pipe", g.Name())

	moved := g.Move()
	moved.Drop()

	require.Equal(t, 1, logs.FilterMessage("guard armed").Len())
	require.Equal(t, 1, logs.FilterMessage("guard moved").Len())

	dropped := logs.FilterMessage("guard dropped").All()
	require.Len(t, dropped, 1)
	require.Equal(t, g.ID(), dropped[0].ContextMap()["guard_id"])
	require.Equal(t, "pipe", dropped[0].ContextMap()["guard_name"])
}

func TestWithDrop_NoIDWithoutInstrumentation(t *testing.T) {
	g := guard.New(1, func(int) {})
	require.Empty(t, g.ID())
}

type recordingObserver struct {
	guard.BaseObserver
	events []string
}

func (o *recordingObserver) OnArm(ev guard.Event)     { o.events = append(o.events, "arm:"+ev.Name) }
func (o *recordingObserver) OnDrop(ev guard.Event)    { o.events = append(o.events, "drop:"+ev.Name) }
func (o *recordingObserver) OnConsume(ev guard.Event) { o.events = append(o.events, "consume:"+ev.Name) }

func TestWithDrop_ObserverEvents(t *testing.T) {
	obs := &recordingObserver{}

	a := guard.New(1, func(int) {}, guard.WithObserver(obs), guard.WithName("a"))
	b := guard.New(2, func(int) {}, guard.WithObserver(obs), guard.WithName("b"))
	b.IntoInner()
	a.Drop()
	a.Drop()

	require.Equal(t, []string{"arm:a", "arm:b", "consume:b", "drop:a"}, obs.events)
}
