package guard

// Event identifies the guard a lifecycle callback is about.
// ID is empty for guards built without instrumentation options.
type Event struct {
	ID   string
	Name string
}

// Observer receives lifecycle callbacks.
//
// OnArm fires on construction and on Clone, OnDrop right before the action
// runs, OnConsume when the value is handed back to the caller. OnLeak fires
// from a runtime goroutine, so implementations must be safe for concurrent
// use when leak checking is enabled.
type Observer interface {
	OnArm(ev Event)
	OnDrop(ev Event)
	OnConsume(ev Event)
	OnLeak(ev Event)
}

// BaseObserver implements Observer with no-ops. Embed it to override a subset.
type BaseObserver struct{}

func (BaseObserver) OnArm(Event)     {}
func (BaseObserver) OnDrop(Event)    {}
func (BaseObserver) OnConsume(Event) {}
func (BaseObserver) OnLeak(Event)    {}
