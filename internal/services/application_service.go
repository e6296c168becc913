package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/events"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
)

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.CandidateApplication, error)
	ChangeStage(ctx context.Context, change repositories.StageChange) error
	History(ctx context.Context, applicationID int64) ([]models.StageHistory, error)
}

type ApplicationService struct {
	applications applicationRepository
	jobs         jobGetter
	bus          EventBus.BusPublisher
}

func NewApplicationService(applications applicationRepository, jobs jobGetter, bus EventBus.BusPublisher) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs, bus: bus}
}

func (s *ApplicationService) Apply(ctx context.Context, identity auth.Identity, jobID int64, jobSource string) (int64, error) {
	if !identity.IsCandidate() {
		return 0, errAccessDenied
	}
	if jobID <= 0 {
		return 0, newError(ValidationError, "ID da vaga é obrigatório")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if job == nil {
		return 0, errJobNotFound
	}
	if job.Status != models.JobActive {
		return 0, newError(ValidationError, "Esta vaga não está recebendo candidaturas")
	}

	app := &models.Application{
		CandidateID:  identity.UserID,
		JobID:        jobID,
		Status:       models.StatusPending,
		CurrentStage: models.StageResumeAnalysis,
		JobSource:    orDefault(jobSource, models.DefaultJobSource),
	}

	err = s.applications.Create(ctx, app)
	if errors.Is(err, repositories.ErrDuplicate) {
		return 0, newError(ConflictError, "Você já se candidatou a esta vaga")
	}
	if err != nil {
		return 0, err
	}

	log.Debugf("candidate %d applied to job %d", identity.UserID, jobID)
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		ApplicationID: app.ID,
		JobID:         jobID,
		CandidateID:   identity.UserID,
	})
	return app.ID, nil
}

func (s *ApplicationService) List(ctx context.Context, identity auth.Identity) ([]models.CandidateApplication, error) {
	if !identity.IsCandidate() {
		return nil, errAccessDenied
	}
	return s.applications.ListByCandidate(ctx, identity.UserID)
}

// StageMove either advances an application to Stage or, with Reject, fails it at its current stage.
type StageMove struct {
	Stage  string
	Reject bool
	Notes  string
}

func (s *ApplicationService) AdvanceStage(ctx context.Context, identity auth.Identity, applicationID int64, move StageMove) (*models.Application, error) {
	if !identity.IsCompany() {
		return nil, errAccessDenied
	}

	app, err := s.ownedByCompany(ctx, identity.UserID, applicationID)
	if err != nil {
		return nil, err
	}

	change := repositories.StageChange{
		ApplicationID: app.ID,
		FromStage:     app.CurrentStage,
		FromStatus:    app.Status,
		Notes:         strings.TrimSpace(move.Notes),
	}

	if move.Reject {
		if app.IsTerminal() {
			return nil, newError(ValidationError, "Candidatura já finalizada")
		}
		change.ToStage = app.CurrentStage
		change.ToStatus = models.StatusRejected
		change.Outcome = models.OutcomeFailed
	} else {
		target, err := models.ParseStage(move.Stage)
		if err != nil {
			return nil, newError(ValidationError, "Etapa inválida: %s", move.Stage)
		}
		if err = app.CanMoveTo(target); err != nil {
			return nil, newError(ValidationError, "%s", err.Error())
		}

		opened := models.OutcomePending
		if target == models.StageHired {
			opened = models.OutcomePassed
		}

		change.ToStage = target
		change.ToStatus = models.StatusForStage(target)
		change.Outcome = models.OutcomePassed
		change.Opened = &models.StageHistory{Stage: target, Status: opened}
	}

	err = s.applications.ChangeStage(ctx, change)
	if errors.Is(err, repositories.ErrStale) {
		return nil, newError(ConflictError, "A candidatura foi alterada por outra operação, tente novamente")
	}
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.StageChangedTopic, events.StageChanged{
		ApplicationID: app.ID,
		From:          change.FromStage,
		To:            change.ToStage,
		Status:        change.ToStatus,
	})

	app.CurrentStage = change.ToStage
	app.Status = change.ToStatus
	return app, nil
}

// History is visible to the candidate who applied and to the company owning the job.
func (s *ApplicationService) History(ctx context.Context, identity auth.Identity, applicationID int64) ([]models.StageHistory, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || !canSee(identity, app) {
		return nil, errAppNotFound
	}
	return s.applications.History(ctx, applicationID)
}

func (s *ApplicationService) ownedByCompany(ctx context.Context, companyID, applicationID int64) (*models.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.Job == nil || app.Job.CompanyID != companyID {
		return nil, errAppNotFound
	}
	return app, nil
}

func canSee(identity auth.Identity, app *models.Application) bool {
	if identity.IsCandidate() {
		return app.CandidateID == identity.UserID
	}
	return identity.IsCompany() && app.Job != nil && app.Job.CompanyID == identity.UserID
}
