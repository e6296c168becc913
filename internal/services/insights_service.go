package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/samber/lo"
	"strings"
)

type applicantSource interface {
	ListCandidatesForCompany(ctx context.Context, companyID int64) ([]models.CandidateSummary, error)
	ListCandidatesForJob(ctx context.Context, jobID int64) ([]models.CandidateSummary, error)
}

type latestResumeGetter interface {
	Latest(ctx context.Context, candidateID int64) (*models.Resume, error)
}

type companyJobsLister interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.JobListing, error)
}

type companyMetrics interface {
	Company(ctx context.Context, companyID int64) (models.DashboardMetrics, error)
}

// InsightsService gathers data from the database and hands it to the AI operations.
type InsightsService struct {
	ai         *AIService
	jobs       companyJobsLister
	applicants applicantSource
	resumes    latestResumeGetter
	stats      companyMetrics
}

func NewInsightsService(ai *AIService, jobs companyJobsLister, applicants applicantSource,
	resumes latestResumeGetter, stats companyMetrics) *InsightsService {
	return &InsightsService{ai: ai, jobs: jobs, applicants: applicants, resumes: resumes, stats: stats}
}

// AnalyzeResume compares a résumé with a job. Candidates analyse their own latest résumé,
// companies analyse the résumé of an applicant to one of their jobs.
func (s *InsightsService) AnalyzeResume(ctx context.Context, identity auth.Identity, jobID int64, candidateID int64) (*Result[ResumeAnalysis], error) {
	if jobID <= 0 {
		return nil, newError(ValidationError, "ID da vaga é obrigatório")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errJobNotFound
	}

	var resumeText string
	if identity.IsCandidate() {
		resume, err := s.resumes.Latest(ctx, identity.UserID)
		if err != nil {
			return nil, err
		}
		if resume != nil {
			resumeText = resume.Content
		}
	} else {
		if job.CompanyID != identity.UserID {
			return nil, errJobNotFound
		}
		if candidateID <= 0 {
			return nil, newError(ValidationError, "ID do candidato é obrigatório")
		}

		applicants, err := s.applicants.ListCandidatesForJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		applicant, found := lo.Find(applicants, func(c models.CandidateSummary) bool { return c.ID == candidateID })
		if !found {
			return nil, newError(NotFoundError, "Candidato não encontrado")
		}
		if applicant.ResumeContent != nil {
			resumeText = *applicant.ResumeContent
		}
	}

	if isBlank(resumeText) {
		return nil, newError(ValidationError, "Nenhum currículo encontrado")
	}

	result := s.ai.AnalyzeResume(ctx, resumeText, jobRequirements(job))
	return &result, nil
}

func (s *InsightsService) Report(ctx context.Context, identity auth.Identity) (*Result[Report], error) {
	if !identity.IsCompany() {
		return nil, errAccessDenied
	}

	dashboard, err := s.stats.Company(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	type jobSummary struct {
		Title      string           `json:"title"`
		Status     models.JobStatus `json:"status"`
		Applicants int64            `json:"applicants"`
		Location   string           `json:"location"`
	}

	data := map[string]any{
		"metrics": dashboard,
		"jobs": lo.Map(jobs, func(job models.JobListing, _ int) jobSummary {
			return jobSummary{Title: job.Title, Status: job.Status, Applicants: job.Applicants, Location: job.Location}
		}),
	}

	result := s.ai.GenerateReport(ctx, data)
	return &result, nil
}

func (s *InsightsService) RankApplicants(ctx context.Context, identity auth.Identity, jobID int64) (*Result[[]CandidateMatch], error) {
	if !identity.IsCompany() {
		return nil, errAccessDenied
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.CompanyID != identity.UserID {
		return nil, errJobNotFound
	}

	applicants, err := s.applicants.ListCandidatesForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(applicants) == 0 {
		return &Result[[]CandidateMatch]{Data: []CandidateMatch{}, Source: Generated}, nil
	}

	result := s.ai.RecommendCandidates(ctx, jobRequirements(job), lo.Map(applicants, toBrief))
	return &result, nil
}

func (s *InsightsService) Trends(ctx context.Context, identity auth.Identity) (*Result[TrendAnalysis], error) {
	if !identity.IsCompany() {
		return nil, errAccessDenied
	}

	applicants, err := s.applicants.ListCandidatesForCompany(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	result := s.ai.AnalyzeTrends(ctx, lo.Map(applicants, toBrief))
	return &result, nil
}

func jobRequirements(job *models.Job) string {
	var builder strings.Builder
	builder.WriteString(job.Title)
	builder.WriteString("\n")
	builder.WriteString(job.Description)
	if len(job.Requirements) > 0 {
		builder.WriteString("\nRequisitos: ")
		builder.WriteString(strings.Join(job.Requirements, ", "))
	}
	if len(job.Tags) > 0 {
		builder.WriteString("\nTags: ")
		builder.WriteString(strings.Join(job.Tags, ", "))
	}
	return builder.String()
}

func toBrief(c models.CandidateSummary, _ int) CandidateBrief {
	return CandidateBrief{
		ID:           c.ID,
		Name:         c.Name,
		ProfileTitle: c.ProfileTitle,
		Location:     c.Location,
		Skills:       nonNil(c.Skills),
		Experience: lo.Map(models.DecodeEntries[models.ExperienceEntry](c.Experience), func(e models.ExperienceEntry, _ int) string {
			return fmt.Sprintf("%s - %s", e.Title, e.Company)
		}),
		Stage: string(c.Status),
	}
}
