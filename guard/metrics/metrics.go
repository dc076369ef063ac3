// Package metrics exports guard lifecycle events to Prometheus.
package metrics

import (
	"github.com/on-the-ground/with_drop/guard"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	EventArmed    = "armed"
	EventDropped  = "dropped"
	EventConsumed = "consumed"
	EventLeaked   = "leaked"
)

// Observer implements guard.Observer with a counter per lifecycle event and
// a gauge of guards still holding their value. A leaked guard stays counted
// in the gauge.
type Observer struct {
	events *prometheus.CounterVec
	armed  *prometheus.GaugeVec
}

var _ guard.Observer = (*Observer)(nil)

// NewObserver registers the guard metrics with reg, or with the default
// registerer when reg is nil.
func NewObserver(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	obs := &Observer{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "with_drop_guards_total",
				Help: "Guard lifecycle events by guard name.",
			},
			[]string{"name", "event"},
		),
		armed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "with_drop_guards_armed",
				Help: "Guards that still own their value.",
			},
			[]string{"name"},
		),
	}

	reg.MustRegister(obs.events, obs.armed)
	return obs
}

func (o *Observer) OnArm(ev guard.Event) {
	o.events.WithLabelValues(ev.Name, EventArmed).Inc()
	o.armed.WithLabelValues(ev.Name).Inc()
}

func (o *Observer) OnDrop(ev guard.Event) {
	o.events.WithLabelValues(ev.Name, EventDropped).Inc()
	o.armed.WithLabelValues(ev.Name).Dec()
}

func (o *Observer) OnConsume(ev guard.Event) {
	o.events.WithLabelValues(ev.Name, EventConsumed).Inc()
	o.armed.WithLabelValues(ev.Name).Dec()
}

func (o *Observer) OnLeak(ev guard.Event) {
	o.events.WithLabelValues(ev.Name, EventLeaked).Inc()
}

// Events returns the lifecycle counter, labelled by guard name and event.
func (o *Observer) Events() *prometheus.CounterVec {
	return o.events
}

// Armed returns the gauge of guards still holding their value.
func (o *Observer) Armed() *prometheus.GaugeVec {
	return o.armed
}
