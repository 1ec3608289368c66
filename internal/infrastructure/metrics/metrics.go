// Package metrics expone contadores Prometheus de las mutaciones del store y de las peticiones HTTP.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labinventaris"

// Metrics agrupa los colectores sobre un registry propio (no el global, para tests aislados).
type Metrics struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registra los colectores junto con los de runtime de Go y del proceso.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		// Labels: op (add_item, borrow_item...), result (applied, persisted, failed, noop)
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Mutaciones del store por operación y resultado",
		}, []string{"op", "result"}),
		// Labels: op, resource (items, loans, logs, labs, notifications, profiles)
		persistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Llamadas al gateway que fallaron; el estado local puede divergir hasta la próxima carga",
		}, []string{"op", "resource"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP por ruta, método y código",
		}, []string{"route", "method", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method"}),
	}
}

// Mutation implementa inventory.Recorder.
func (m *Metrics) Mutation(op string, applied, persisted bool) {
	result := "noop"
	switch {
	case applied && persisted:
		result = "persisted"
	case applied:
		result = "failed"
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

// PersistFailure implementa inventory.Recorder.
func (m *Metrics) PersistFailure(op, resource string) {
	m.persistFailures.WithLabelValues(op, resource).Inc()
}

// ObserveHTTP registra una petición ya respondida.
func (m *Metrics) ObserveHTTP(route, method string, code int, seconds float64) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

// Handler expone /metrics en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry acceso directo (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
