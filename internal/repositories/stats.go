package repositories

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Stats struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *Stats {
	return &Stats{db: db}
}

func (repo *Stats) Public(ctx context.Context) (models.PublicStats, error) {
	var stats models.PublicStats
	err := repo.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE status = ?) AS total_jobs,
			(SELECT COUNT(*) FROM users WHERE type = ?) AS total_companies,
			(SELECT COUNT(*) FROM users WHERE type = ?) AS total_candidates`,
		models.JobActive, models.CompanyUser, models.CandidateUser).Scan(&stats).Error
	return stats, errors.Wrap(err, "failed to count public stats")
}

func (repo *Stats) Company(ctx context.Context, companyID int64) (models.DashboardMetrics, error) {
	var metrics models.DashboardMetrics
	err := repo.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(DISTINCT a.candidate_id) AS total_candidates,
			(SELECT COUNT(*) FROM jobs WHERE company_id = ? AND status = ?) AS active_jobs,
			COUNT(CASE WHEN a.status = ? THEN 1 END) AS candidates_in_review,
			COUNT(CASE WHEN a.current_stage IN (?, ?) THEN 1 END) AS scheduled_interviews,
			COUNT(a.id) AS total_applications,
			COUNT(CASE WHEN a.current_stage = ? THEN 1 END) AS hired_candidates
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.company_id = ?`,
		companyID, models.JobActive,
		models.StatusUnderReview,
		models.StageInterview, models.StageFinalInterview,
		models.StageHired,
		companyID).Scan(&metrics).Error
	return metrics, errors.Wrap(err, "failed to count company metrics")
}

func (repo *Stats) Candidate(ctx context.Context, candidateID int64) (models.DashboardMetrics, error) {
	var metrics models.DashboardMetrics
	err := repo.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE status = ?) AS active_jobs,
			COUNT(CASE WHEN current_stage IN (?, ?) THEN 1 END) AS scheduled_interviews,
			COUNT(id) AS total_applications,
			COUNT(CASE WHEN current_stage = ? THEN 1 END) AS hired_candidates
		FROM applications
		WHERE candidate_id = ?`,
		models.JobActive,
		models.StageInterview, models.StageFinalInterview,
		models.StageHired,
		candidateID).Scan(&metrics).Error
	metrics.TotalCandidates = 1
	metrics.CandidatesInReview = 0
	return metrics, errors.Wrap(err, "failed to count candidate metrics")
}

// EntityCounts returns the number of stored rows per entity kind.
func (repo *Stats) EntityCounts(ctx context.Context) (map[string]int64, error) {
	var row struct {
		ActiveJobs   int64
		Candidates   int64
		Companies    int64
		Applications int64
	}
	err := repo.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE status = ?) AS active_jobs,
			(SELECT COUNT(*) FROM users WHERE type = ?) AS candidates,
			(SELECT COUNT(*) FROM users WHERE type = ?) AS companies,
			(SELECT COUNT(*) FROM applications) AS applications`,
		models.JobActive, models.CandidateUser, models.CompanyUser).Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count entities")
	}

	return map[string]int64{
		"active_jobs":  row.ActiveJobs,
		"candidates":   row.Candidates,
		"companies":    row.Companies,
		"applications": row.Applications,
	}, nil
}
