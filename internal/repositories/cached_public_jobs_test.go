package repositories

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/domain/events"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type mockPublicJobs struct {
	mock.Mock
}

func (m *mockPublicJobs) ListPublic(ctx context.Context, limit int) ([]models.JobListing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.JobListing), args.Error(1)
}

func Test_CachedPublicJobs_SecondCall_ServedFromCache(t *testing.T) {
	repo := &mockPublicJobs{}
	repo.On("ListPublic", mock.Anything, 10).Return([]models.JobListing{{ID: 1}}, nil).Once()
	cached := NewCachedPublicJobs(repo, time.Minute)

	for i := 0; i < 3; i++ {
		jobs, err := cached.ListPublic(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, jobs, 1)
	}

	repo.AssertNumberOfCalls(t, "ListPublic", 1)
}

func Test_CachedPublicJobs_JobCreatedEvent_InvalidatesCache(t *testing.T) {
	repo := &mockPublicJobs{}
	repo.On("ListPublic", mock.Anything, 10).Return([]models.JobListing{{ID: 1}}, nil).Twice()
	cached := NewCachedPublicJobs(repo, time.Minute)

	bus := EventBus.New()
	require.NoError(t, cached.SubscribeTo(bus))

	_, err := cached.ListPublic(context.Background(), 10)
	require.NoError(t, err)

	bus.Publish(events.JobCreatedTopic, events.JobCreated{JobID: 2, CompanyID: 1})

	_, err = cached.ListPublic(context.Background(), 10)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListPublic", 2)
}

func Test_CachedPublicJobs_InvalidatedDuringRead_ResultNotCached(t *testing.T) {
	repo := &mockPublicJobs{}
	cached := NewCachedPublicJobs(repo, time.Minute)
	repo.On("ListPublic", mock.Anything, 10).
		Run(func(mock.Arguments) { cached.Invalidate() }).
		Return([]models.JobListing{{ID: 1}}, nil).Once()
	repo.On("ListPublic", mock.Anything, 10).Return([]models.JobListing{{ID: 1}, {ID: 2}}, nil).Once()

	stale, err := cached.ListPublic(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	fresh, err := cached.ListPublic(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	repo.AssertNumberOfCalls(t, "ListPublic", 2)
}
