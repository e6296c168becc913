package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"time"
)

type statsRepository interface {
	Public(ctx context.Context) (models.PublicStats, error)
	Company(ctx context.Context, companyID int64) (models.DashboardMetrics, error)
	Candidate(ctx context.Context, candidateID int64) (models.DashboardMetrics, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type DashboardService struct {
	stats statsRepository
	db    pinger
}

func NewDashboardService(stats statsRepository, db pinger) *DashboardService {
	return &DashboardService{stats: stats, db: db}
}

func (s *DashboardService) PublicStats(ctx context.Context) (models.PublicStats, error) {
	return s.stats.Public(ctx)
}

func (s *DashboardService) Metrics(ctx context.Context, identity auth.Identity) (models.DashboardMetrics, error) {
	if identity.IsCompany() {
		return s.stats.Company(ctx, identity.UserID)
	}
	return s.stats.Candidate(ctx, identity.UserID)
}

func (s *DashboardService) Tags() []string {
	return models.Tags()
}

type Health struct {
	Status    string    `json:"status"`
	Database  string    `json:"database,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

func (s *DashboardService) Health(ctx context.Context) Health {
	if err := s.db.Ping(ctx); err != nil {
		return Health{Status: "unhealthy", Error: err.Error(), Timestamp: time.Now()}
	}
	return Health{Status: "healthy", Database: "connected", Timestamp: time.Now()}
}
