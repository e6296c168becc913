package logger

import (
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const unknownErrorType = "unknown"

// errorCounter counts error-level entries by their error_type field.
type errorCounter struct {
	counter *prometheus.CounterVec
}

func (h *errorCounter) Fire(entry *log.Entry) error {
	h.counter.WithLabelValues(errorTypeOf(entry)).Inc()
	return nil
}

func (h *errorCounter) Levels() []log.Level {
	return log.AllLevels[:log.ErrorLevel+1]
}

func errorTypeOf(entry *log.Entry) string {
	if errorType, ok := entry.Data[ErrorTypeField].(string); ok && errorType != "" {
		return errorType
	}
	return unknownErrorType
}

func addPrometheusHook() {
	log.AddHook(&errorCounter{counter: metrics.ErrorsCounter})
}
