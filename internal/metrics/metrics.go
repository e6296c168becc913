package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selectflow_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	HTTPRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selectflow_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selectflow_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"route"},
	)
	AIRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selectflow_ai_requests_total",
			Help: "Total number of AI operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)
	RecommendationDuration = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Name:       "selectflow_recommendation_duration_seconds",
			Help:       "Duration of job recommendation scoring.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
	)
	StageTransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selectflow_stage_transitions_total",
			Help: "Total number of application stage moves.",
		},
		[]string{"from", "to"},
	)
	EntitiesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "selectflow_entities",
			Help: "Current number of stored entities by kind.",
		},
		[]string{"entity"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(HTTPRequestsCounter)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AIRequestsCounter)
		prometheus.MustRegister(RecommendationDuration)
		prometheus.MustRegister(StageTransitionsCounter)
		prometheus.MustRegister(EntitiesGauge)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
