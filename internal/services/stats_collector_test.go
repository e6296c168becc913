package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_StatsCollector_Collect_SetsGauges(t *testing.T) {
	env := newTestEnv(t)
	collector, err := NewStatsCollector(env.stats, "@every 1h")
	require.NoError(t, err)
	defer collector.Stop()

	collector.Collect()

	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.EntitiesGauge.WithLabelValues("active_jobs")))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.EntitiesGauge.WithLabelValues("candidates")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.EntitiesGauge.WithLabelValues("companies")))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.EntitiesGauge.WithLabelValues("applications")))
}

func Test_StatsCollector_StageChanged_CountsTransition(t *testing.T) {
	env := newTestEnv(t)
	collector, err := NewStatsCollector(env.stats, "@every 1h")
	require.NoError(t, err)
	defer collector.Stop()
	require.NoError(t, collector.SubscribeTo(env.bus))

	transitions := metrics.StageTransitionsCounter.WithLabelValues(string(models.StageResumeAnalysis), string(models.StageInterview))
	before := testutil.ToFloat64(transitions)

	_, err = newApplicationService(env).AdvanceStage(context.Background(), env.identity(t, techCorpEmail),
		env.applicationID(t, carlaEmail, fullStackJob), StageMove{Stage: "interview"})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(transitions))
}

func Test_NewStatsCollector_InvalidSchedule_ReturnsError(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewStatsCollector(env.stats, "every now and then")

	assert.Error(t, err)
}

func Test_Health_ClosedDatabase_Unhealthy(t *testing.T) {
	env := newTestEnv(t)
	service := NewDashboardService(env.stats, env.db)
	ctx := context.Background()

	assert.True(t, service.Health(ctx).Healthy())

	require.NoError(t, env.db.Close())
	health := service.Health(ctx)

	assert.False(t, health.Healthy())
	assert.Equal(t, "unhealthy", health.Status)
	assert.NotEmpty(t, health.Error)
}

func Test_Metrics_DispatchesOnUserType(t *testing.T) {
	env := newTestEnv(t)
	service := NewDashboardService(env.stats, env.db)
	ctx := context.Background()

	company, err := service.Metrics(ctx, env.identity(t, techCorpEmail))
	require.NoError(t, err)
	assert.Equal(t, int64(3), company.TotalApplications)

	candidate, err := service.Metrics(ctx, env.identity(t, amandaEmail))
	require.NoError(t, err)
	assert.Equal(t, int64(1), candidate.TotalCandidates)
	assert.Equal(t, int64(1), candidate.ScheduledInterviews)
}
