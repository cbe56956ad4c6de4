package metrics

import (
	"net/http"

	"pos-terminal/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos_terminal"

// Recorder implements shared.CheckoutRecorder on top of a prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	checkouts       *prometheus.CounterVec
	catalogRefresh  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ shared.CheckoutRecorder = (*Recorder)(nil)

func NewRecorder(registry *prometheus.Registry) *Recorder {
	r := &Recorder{
		registry: registry,
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome", "reason"}),
		catalogRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_refresh_total",
			Help:      "Catalog refreshes by list and result.",
		}, []string{"list", "result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Operator API latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	registry.MustRegister(r.checkouts, r.catalogRefresh, r.requestDuration)
	return r
}

// NewRegistry returns a registry with the process and Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (r *Recorder) CheckoutSettled() {
	r.checkouts.WithLabelValues("settled", "").Inc()
}

func (r *Recorder) CheckoutFailed(reason string) {
	r.checkouts.WithLabelValues("failed", reason).Inc()
}

func (r *Recorder) CatalogRefreshed(list string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.catalogRefresh.WithLabelValues(list, result).Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
