package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_total", Help: "Count of market ticks recorded into a series"},
		[]string{"symbol"},
	)
	ContrastEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "contrast_evaluations_total", Help: "Lags evaluated by a contrast estimator"},
		[]string{"estimator"},
	)
	ScanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lag_scan_duration_seconds",
			Help:    "Wall time of a full lag grid scan",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"estimator"},
	)
	LeadLag = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "lead_lag_estimate", Help: "Most recent lead-lag estimate"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, ContrastEvaluations, ScanDuration, LeadLag)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
