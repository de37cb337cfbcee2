// Package metrics exposes the reminder daemon's Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the daemon's collectors.
//
//   - bedtime_reminder_events_total{event} - scheduler events (armed, fired, skipped, ...)
//   - bedtime_store_changes_total{group} - store change notifications handled
//   - bedtime_alarms_fired_total{alarm} - alarm firings by name
//   - bedtime_minutes_past_bedtime - minutes past the reminder time at the last badge refresh
type Metrics struct {
	ReminderEvents *prometheus.CounterVec
	StoreChanges   *prometheus.CounterVec
	AlarmsFired    *prometheus.CounterVec
	MinutesPast    prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. A nil reg gets a fresh registry so
// tests and repeated daemons never collide on registration.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		ReminderEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedtime_reminder_events_total",
				Help: "Total number of reminder scheduler events",
			},
			[]string{"event"},
		),
		StoreChanges: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedtime_store_changes_total",
				Help: "Total number of store change notifications handled",
			},
			[]string{"group"},
		),
		AlarmsFired: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bedtime_alarms_fired_total",
				Help: "Total number of alarms fired",
			},
			[]string{"alarm"},
		),
		MinutesPast: f.NewGauge(prometheus.GaugeOpts{
			Name: "bedtime_minutes_past_bedtime",
			Help: "Minutes past the reminder time at the last badge refresh",
		}),
		gatherer: reg,
	}
}

// Observe counts a scheduler event. It satisfies reminder.Observer.
func (m *Metrics) Observe(event string) {
	if m == nil {
		return
	}
	m.ReminderEvents.WithLabelValues(event).Inc()
}

// AlarmFired counts a fired alarm.
func (m *Metrics) AlarmFired(name string) {
	if m == nil {
		return
	}
	m.AlarmsFired.WithLabelValues(name).Inc()
}

// StoreChanged counts a store notification for group.
func (m *Metrics) StoreChanged(group string) {
	if m == nil {
		return
	}
	if group == "" {
		group = "all"
	}
	m.StoreChanges.WithLabelValues(group).Inc()
}

// SetMinutesPast records the last computed minutes past bedtime.
func (m *Metrics) SetMinutesPast(n int) {
	if m == nil {
		return
	}
	m.MinutesPast.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
