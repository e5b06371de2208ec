// Package metrics exposes client-side counters for the live log stream and
// the API client in Prometheus format.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	StreamLines Counter

	Reconnects Counter

	APIRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "huntarr_client",
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{counter: newCounterVec(name, help, labels)}
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

// New registers the counters on the default registry. Call it once per
// process.
func New() *Counters {
	return &Counters{
		StreamLines: NewPrometheusCounter(
			"stream_lines_total",
			"Live log lines received, by classified source",
			[]string{"source"},
		),
		Reconnects: NewPrometheusCounter(
			"stream_reconnects_total",
			"Live log stream reconnect attempts",
			[]string{"source"},
		),
		APIRequests: NewPrometheusCounter(
			"api_requests_total",
			"Requests made to the Huntarr API",
			[]string{"method", "endpoint", "status"},
		),
	}
}

// NewTestCounters builds counters on a private registry so tests can
// create them repeatedly.
func NewTestCounters() (*Counters, *prometheus.Registry) {
	reg := prometheus.NewRegistry()

	lines := &PrometheusCounter{counter: newCounterVec(
		"stream_lines_total", "Live log lines received, by classified source", []string{"source"})}
	reconnects := &PrometheusCounter{counter: newCounterVec(
		"stream_reconnects_total", "Live log stream reconnect attempts", []string{"source"})}
	requests := &PrometheusCounter{counter: newCounterVec(
		"api_requests_total", "Requests made to the Huntarr API", []string{"method", "endpoint", "status"})}

	reg.MustRegister(lines.counter)
	reg.MustRegister(reconnects.counter)
	reg.MustRegister(requests.counter)

	return &Counters{
		StreamLines: lines,
		Reconnects:  reconnects,
		APIRequests: requests,
	}, reg
}

// ObserveRequest counts one API request. It matches api.Observer.
func (c *Counters) ObserveRequest(method, endpoint string, status int) {
	c.APIRequests.Inc(method, endpoint, strconv.Itoa(status))
}

// Discard is a Counter that records nothing.
var Discard Counter = discard{}

type discard struct{}

func (discard) Inc(...string) {}
