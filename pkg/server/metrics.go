package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/toastline-dev/toastline/pkg/toast"
)

// Metrics implements toaster.Recorder on Prometheus collectors.
type Metrics struct {
	shown     *prometheus.CounterVec
	dismissed prometheus.Counter
	expired   prometheus.Counter
	cleared   prometheus.Counter
	active    prometheus.Gauge
}

// NewMetrics registers the toastline collectors with the given registry.
// Pass prometheus.DefaultRegisterer to use the process-global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toastline",
			Name:      "toasts_shown_total",
			Help:      "Total number of toasts shown, by level",
		}, []string{"level"}),

		dismissed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "toastline",
			Name:      "toasts_dismissed_total",
			Help:      "Total number of toasts dismissed by users or callers",
		}),

		expired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "toastline",
			Name:      "toasts_expired_total",
			Help:      "Total number of toasts removed by their expiry timer",
		}),

		cleared: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "toastline",
			Name:      "toasts_cleared_total",
			Help:      "Total number of toasts removed by clear-all operations",
		}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "toastline",
			Name:      "toasts_active",
			Help:      "Number of toasts currently in the store",
		}),
	}
}

func (m *Metrics) Shown(level toast.Level) {
	m.shown.WithLabelValues(string(level)).Inc()
	m.active.Inc()
}

func (m *Metrics) Dismissed() {
	m.dismissed.Inc()
	m.active.Dec()
}

func (m *Metrics) Expired() {
	m.expired.Inc()
	m.active.Dec()
}

func (m *Metrics) Cleared(n int) {
	m.cleared.Add(float64(n))
	m.active.Sub(float64(n))
}
