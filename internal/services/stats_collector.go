package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/domain/events"
	"github.com/maxaizer/selectflow/internal/logger"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type entityCounter interface {
	EntityCounts(ctx context.Context) (map[string]int64, error)
}

// StatsCollector periodically publishes stored entity counts as Prometheus gauges.
type StatsCollector struct {
	counter entityCounter
	cron    *cron.Cron
}

func NewStatsCollector(counter entityCounter, schedule string) (*StatsCollector, error) {

	if counter == nil {
		return nil, errors.New("entity counter must not be nil")
	}

	sc := &StatsCollector{
		counter: counter,
		cron:    cron.New(),
	}

	_, err := sc.cron.AddFunc(schedule, sc.Collect)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stats schedule %q", schedule)
	}

	sc.cron.Start()
	log.Infof("stats collector started, schedule: %s", schedule)
	return sc, nil
}

func (sc *StatsCollector) Stop() {
	<-sc.cron.Stop().Done()
}

func (sc *StatsCollector) Collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := sc.counter.EntityCounts(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to collect entity counts: %v", err)
		return
	}

	for entity, count := range counts {
		metrics.EntitiesGauge.WithLabelValues(entity).Set(float64(count))
	}
	log.Debugf("entity gauges updated: %v", counts)
}

// SubscribeTo counts application stage moves as they happen.
func (sc *StatsCollector) SubscribeTo(bus EventBus.Bus) error {
	return bus.Subscribe(events.StageChangedTopic, sc.onStageChanged)
}

func (sc *StatsCollector) onStageChanged(event events.StageChanged) {
	metrics.StageTransitionsCounter.WithLabelValues(string(event.From), string(event.To)).Inc()
	log.WithField("application_id", event.ApplicationID).
		Infof("application moved from %s to %s (%s)", event.From, event.To, event.Status)
}
