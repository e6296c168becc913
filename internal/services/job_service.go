package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/events"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"strings"
)

const publicJobsLimit = 10

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.JobListing, error)
	ListActiveForCandidate(ctx context.Context, candidateID int64) ([]models.JobListing, error)
	ListFavorites(ctx context.Context, candidateID int64) ([]models.JobListing, error)
}

type publicJobsSource interface {
	ListPublic(ctx context.Context, limit int) ([]models.JobListing, error)
}

type JobService struct {
	jobs   jobRepository
	public publicJobsSource
	bus    EventBus.BusPublisher
}

func NewJobService(jobs jobRepository, public publicJobsSource, bus EventBus.BusPublisher) *JobService {
	return &JobService{jobs: jobs, public: public, bus: bus}
}

func (s *JobService) ListPublic(ctx context.Context) ([]models.JobListing, error) {
	return s.public.ListPublic(ctx, publicJobsLimit)
}

// List shows a company its own postings and a candidate every active posting.
func (s *JobService) List(ctx context.Context, identity auth.Identity) ([]models.JobListing, error) {
	if identity.IsCompany() {
		return s.jobs.ListByCompany(ctx, identity.UserID)
	}
	return s.jobs.ListActiveForCandidate(ctx, identity.UserID)
}

type NewJob struct {
	Title          string
	Description    string
	Requirements   []string
	Location       string
	WorkLocation   string
	Salary         string
	Type           string
	EmploymentType string
	Tags           []string
	Status         models.JobStatus
}

func (s *JobService) Create(ctx context.Context, identity auth.Identity, input NewJob) (int64, error) {
	if !identity.IsCompany() {
		return 0, errAccessDenied
	}

	if isBlank(input.Title) || isBlank(input.Description) || isBlank(input.Location) || isBlank(input.WorkLocation) {
		return 0, newError(ValidationError, "Campos obrigatórios não preenchidos")
	}

	job := &models.Job{
		CompanyID:      identity.UserID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Requirements:   input.Requirements,
		Location:       input.Location,
		WorkLocation:   input.WorkLocation,
		Salary:         input.Salary,
		JobType:        orDefault(input.Type, models.DefaultJobType),
		EmploymentType: orDefault(input.EmploymentType, models.DefaultEmploymentType),
		Tags:           input.Tags,
		Status:         models.JobActive,
	}

	if input.Status != "" {
		if !input.Status.IsValid() {
			return 0, newError(ValidationError, "Status de vaga inválido: %s", input.Status)
		}
		job.Status = input.Status
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return 0, err
	}

	s.bus.Publish(events.JobCreatedTopic, events.JobCreated{JobID: job.ID, CompanyID: job.CompanyID})
	return job.ID, nil
}

func (s *JobService) ListFavorites(ctx context.Context, identity auth.Identity) ([]models.JobListing, error) {
	if !identity.IsCandidate() {
		return nil, errAccessDenied
	}
	return s.jobs.ListFavorites(ctx, identity.UserID)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func orDefault(value, fallback string) string {
	if isBlank(value) {
		return fallback
	}
	return value
}
