package repositories

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"time"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

type jobRow struct {
	ID             int64
	Title          string
	Description    string
	CompanyName    string
	Location       string
	WorkLocation   string
	Salary         string
	JobType        string
	EmploymentType string
	Status         models.JobStatus
	CreatedAt      time.Time
	Requirements   models.JSONList[string]
	Tags           models.JSONList[string]
	Applicants     int64
	IsFavorite     int64
	HasApplied     int64
}

const jobColumns = `
	j.id, j.title, j.description, j.location, j.work_location, j.salary,
	j.job_type, j.employment_type, j.status, j.created_at, j.requirements, j.tags,
	COALESCE(NULLIF(cp.company_name, ''), 'Empresa') AS company_name,
	COUNT(DISTINCT a.id) AS applicants`

const jobJoins = `
	FROM jobs j
	LEFT JOIN applications a ON a.job_id = j.id
	LEFT JOIN company_profiles cp ON cp.user_id = j.company_id`

func (repo *Jobs) Create(ctx context.Context, job *models.Job) error {
	return errors.Wrap(repo.db.WithContext(ctx).Omit("Company").Create(job).Error, "failed to create job")
}

func (repo *Jobs) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	var job models.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get job")
	}
	return &job, nil
}

// ListPublic returns the most recent active jobs for anonymous visitors.
func (repo *Jobs) ListPublic(ctx context.Context, limit int) ([]models.JobListing, error) {
	var rows []jobRow
	err := repo.db.WithContext(ctx).Raw(`SELECT `+jobColumns+jobJoins+`
		WHERE j.status = ?
		GROUP BY j.id
		ORDER BY j.created_at DESC, j.id DESC
		LIMIT ?`, models.JobActive, limit).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list public jobs")
	}

	return lo.Map(rows, func(row jobRow, _ int) models.JobListing {
		listing := row.listing()
		listing.EmploymentType = ""
		listing.Status = ""
		return listing
	}), nil
}

// ListByCompany returns every job of the company regardless of status.
func (repo *Jobs) ListByCompany(ctx context.Context, companyID int64) ([]models.JobListing, error) {
	var rows []jobRow
	err := repo.db.WithContext(ctx).Raw(`SELECT `+jobColumns+jobJoins+`
		WHERE j.company_id = ?
		GROUP BY j.id
		ORDER BY j.created_at DESC, j.id DESC`, companyID).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list company jobs")
	}

	return lo.Map(rows, func(row jobRow, _ int) models.JobListing {
		listing := row.listing()
		listing.Company = ""
		return listing
	}), nil
}

// ListActiveForCandidate returns active jobs flagged with the candidate's favorites and applications.
func (repo *Jobs) ListActiveForCandidate(ctx context.Context, candidateID int64) ([]models.JobListing, error) {
	var rows []jobRow
	err := repo.db.WithContext(ctx).Raw(`SELECT `+jobColumns+`,
		MAX(CASE WHEN f.id IS NOT NULL THEN 1 ELSE 0 END) AS is_favorite,
		MAX(CASE WHEN app.id IS NOT NULL THEN 1 ELSE 0 END) AS has_applied`+jobJoins+`
		LEFT JOIN favorites f ON f.job_id = j.id AND f.candidate_id = ?
		LEFT JOIN applications app ON app.job_id = j.id AND app.candidate_id = ?
		WHERE j.status = ?
		GROUP BY j.id
		ORDER BY j.created_at DESC, j.id DESC`, candidateID, candidateID, models.JobActive).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs for candidate")
	}

	return lo.Map(rows, func(row jobRow, _ int) models.JobListing {
		listing := row.listing()
		listing.IsFavorite = lo.ToPtr(row.IsFavorite > 0)
		listing.HasApplied = lo.ToPtr(row.HasApplied > 0)
		return listing
	}), nil
}

// ListFavorites returns the candidate's favorited active jobs, newest favorite first.
func (repo *Jobs) ListFavorites(ctx context.Context, candidateID int64) ([]models.JobListing, error) {
	var rows []jobRow
	err := repo.db.WithContext(ctx).Raw(`SELECT `+jobColumns+jobJoins+`
		JOIN favorites f ON f.job_id = j.id
		WHERE f.candidate_id = ? AND j.status = ?
		GROUP BY j.id
		ORDER BY f.created_at DESC, f.id DESC`, candidateID, models.JobActive).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	return lo.Map(rows, func(row jobRow, _ int) models.JobListing {
		listing := row.listing()
		listing.EmploymentType = ""
		listing.Status = ""
		listing.IsFavorite = lo.ToPtr(true)
		return listing
	}), nil
}

func (row jobRow) listing() models.JobListing {
	return models.JobListing{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Company:        row.CompanyName,
		Location:       row.Location,
		WorkLocation:   row.WorkLocation,
		Salary:         row.Salary,
		Type:           row.JobType,
		EmploymentType: row.EmploymentType,
		Status:         row.Status,
		Applicants:     row.Applicants,
		PostedAt:       row.CreatedAt,
		Requirements:   row.Requirements,
		Tags:           row.Tags,
	}
}
