package repositories

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/domain/events"
	"github.com/maxaizer/selectflow/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"strconv"
	"sync"
	"time"
)

type publicJobsRepository interface {
	ListPublic(ctx context.Context, limit int) ([]models.JobListing, error)
}

type CachedPublicJobs struct {
	repo  publicJobsRepository
	cache *gocache.Cache

	// generation grows on every invalidation; reads started before it are not cached
	mu         sync.Mutex
	generation uint64
}

func NewCachedPublicJobs(repo publicJobsRepository, ttl time.Duration) *CachedPublicJobs {
	return &CachedPublicJobs{repo: repo, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedPublicJobs) ListPublic(ctx context.Context, limit int) ([]models.JobListing, error) {
	key := strconv.Itoa(limit)
	if value, found := c.cache.Get(key); found {
		return value.([]models.JobListing), nil
	}

	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	jobs, err := c.repo.ListPublic(ctx, limit)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if generation == c.generation {
		c.cache.SetDefault(key, jobs)
	}
	c.mu.Unlock()
	return jobs, nil
}

func (c *CachedPublicJobs) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.cache.Flush()
}

// SubscribeTo drops the cached listing whenever a job is posted or receives an application.
func (c *CachedPublicJobs) SubscribeTo(bus EventBus.Bus) error {
	if err := bus.Subscribe(events.JobCreatedTopic, func(events.JobCreated) { c.Invalidate() }); err != nil {
		return err
	}
	return bus.Subscribe(events.ApplicationSubmittedTopic, func(events.ApplicationSubmitted) { c.Invalidate() })
}
