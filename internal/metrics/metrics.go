// Package metrics exposes Prometheus metrics for the strip and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmylchreest/ledstripd/pkg/strip"
)

const namespace = "ledstrip"

// Metrics holds every collector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	pushes       *prometheus.CounterVec
	pushDuration prometheus.Histogram
	channel      *prometheus.GaugeVec
	brightness   prometheus.Gauge
	power        prometheus.Gauge

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		pushes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "strip",
			Name:      "pushes_total",
			Help:      "Frames pushed to the LED device by result",
		}, []string{"result"}),
		pushDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "strip",
			Name:      "push_duration_seconds",
			Help:      "Time taken to push a frame to the LED device",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		channel: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "strip",
			Name:      "channel_value",
			Help:      "Current color channel value (0-255)",
		}, []string{"channel"}),
		brightness: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "strip",
			Name:      "brightness",
			Help:      "Current global brightness (0-255)",
		}),
		power: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "strip",
			Name:      "power",
			Help:      "1 when the strip is lit, 0 when blanked",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObservePush records a device push and the state it carried.
func (m *Metrics) ObservePush(s strip.State, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.pushes.WithLabelValues(result).Inc()
	m.pushDuration.Observe(d.Seconds())

	m.channel.WithLabelValues("r").Set(float64(s.R))
	m.channel.WithLabelValues("g").Set(float64(s.G))
	m.channel.WithLabelValues("b").Set(float64(s.B))
	m.brightness.Set(float64(s.Brightness))
	if s.Power {
		m.power.Set(1)
	} else {
		m.power.Set(0)
	}
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RegisterGaugeFunc exposes a value computed at scrape time, such as the
// number of WebSocket clients.
func (m *Metrics) RegisterGaugeFunc(subsystem, name, help string, fn func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, fn)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
