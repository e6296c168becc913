package repositories

import (
	"context"
	"database/sql"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"time"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// Create stores the application and opens its first stage in the history.
func (repo *Applications) Create(ctx context.Context, app *models.Application) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Candidate", "Job").Create(app).Error; err != nil {
			return err
		}
		return tx.Create(&models.StageHistory{
			ApplicationID: app.ID,
			Stage:         app.CurrentStage,
			Status:        models.OutcomePending,
		}).Error
	})

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "failed to create application")
}

func (repo *Applications) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := repo.db.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get application")
	}
	return &app, nil
}

type candidateApplicationRow struct {
	ID           int64
	JobID        int64
	Title        string
	CompanyName  string
	Location     string
	WorkLocation string
	Salary       string
	Status       models.ApplicationStatus
	CurrentStage models.Stage
	JobSource    string
	SubmittedAt  time.Time
}

func (repo *Applications) ListByCandidate(ctx context.Context, candidateID int64) ([]models.CandidateApplication, error) {
	var rows []candidateApplicationRow
	err := repo.db.WithContext(ctx).Raw(`
		SELECT a.id, a.job_id, a.status, a.current_stage, a.job_source, a.submitted_at,
		       j.title, j.location, j.work_location, j.salary,
		       COALESCE(NULLIF(cp.company_name, ''), 'Empresa') AS company_name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN company_profiles cp ON cp.user_id = j.company_id
		WHERE a.candidate_id = ?
		ORDER BY a.submitted_at DESC, a.id DESC`, candidateID).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	return lo.Map(rows, func(row candidateApplicationRow, _ int) models.CandidateApplication {
		return models.CandidateApplication{
			ID:           row.ID,
			JobID:        row.JobID,
			JobTitle:     row.Title,
			Company:      row.CompanyName,
			Location:     row.Location,
			WorkLocation: row.WorkLocation,
			Salary:       row.Salary,
			Status:       row.Status,
			CurrentStage: row.CurrentStage,
			JobSource:    row.JobSource,
			AppliedAt:    row.SubmittedAt,
		}
	}), nil
}

type StageChange struct {
	ApplicationID int64
	FromStage     models.Stage
	FromStatus    models.ApplicationStatus
	ToStage       models.Stage
	ToStatus      models.ApplicationStatus
	// Outcome closes the history row of the stage being left.
	Outcome models.StageOutcome
	Notes   string
	// Opened is appended to the history when the application enters a new stage.
	Opened *models.StageHistory
}

// ChangeStage moves the application only if it is still in the expected stage and status.
// ErrStale means another change won the race.
func (repo *Applications) ChangeStage(ctx context.Context, change StageChange) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Application{}).
			Where("id = ? AND current_stage = ? AND status = ?", change.ApplicationID, change.FromStage, change.FromStatus).
			Updates(map[string]any{
				"current_stage": change.ToStage,
				"status":        change.ToStatus,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to update application stage")
		}
		if res.RowsAffected == 0 {
			return ErrStale
		}

		if err := closeStage(tx, change); err != nil {
			return errors.Wrap(err, "failed to close stage history")
		}

		if change.Opened == nil {
			return nil
		}
		change.Opened.ApplicationID = change.ApplicationID
		return errors.Wrap(tx.Create(change.Opened).Error, "failed to append stage history")
	})
}

func closeStage(tx *gorm.DB, change StageChange) error {
	var open models.StageHistory
	err := tx.Where("application_id = ? AND stage = ? AND status = ?",
		change.ApplicationID, change.FromStage, models.OutcomePending).
		Order("id DESC").First(&open).Error

	if isNotFound(err) {
		return tx.Create(&models.StageHistory{
			ApplicationID: change.ApplicationID,
			Stage:         change.FromStage,
			Status:        change.Outcome,
			Notes:         change.Notes,
		}).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]any{"status": change.Outcome}
	if change.Notes != "" {
		updates["notes"] = change.Notes
	}
	return tx.Model(&open).Updates(updates).Error
}

func (repo *Applications) History(ctx context.Context, applicationID int64) ([]models.StageHistory, error) {
	var history []models.StageHistory
	err := repo.db.WithContext(ctx).Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").Find(&history).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stage history")
	}
	return history, nil
}

type candidateRow struct {
	ID            int64
	Name          string
	Email         string
	Avatar        string
	ProfilePhoto  string
	Phone         sql.NullString
	Location      sql.NullString
	Skills        models.JSONList[string]
	ProfileTitle  sql.NullString
	Bio           sql.NullString
	Experience    models.Entries
	CurrentStage  models.Stage
	SubmittedAt   time.Time
	Position      string
	ResumeContent sql.NullString
	ResumeFile    sql.NullString
}

const candidateRosterQuery = `
	SELECT u.id, u.name, u.email, u.avatar, u.profile_photo,
	       cp.phone, cp.location, cp.skills, cp.profile_title, cp.bio, cp.experience,
	       a.current_stage, a.submitted_at,
	       j.title AS position,
	       r.content AS resume_content, r.file_name AS resume_file
	FROM applications a
	JOIN users u ON u.id = a.candidate_id
	JOIN jobs j ON j.id = a.job_id
	LEFT JOIN candidate_profiles cp ON cp.user_id = u.id
	LEFT JOIN resumes r ON r.id = (` + latestResumeQuery + `)`

// ListCandidatesForCompany returns each candidate who applied to any of the company's jobs once,
// described by their most recent application.
func (repo *Applications) ListCandidatesForCompany(ctx context.Context, companyID int64) ([]models.CandidateSummary, error) {
	return repo.listCandidates(ctx, "j.company_id = ?", companyID)
}

// ListCandidatesForJob returns the applicants of a single job.
func (repo *Applications) ListCandidatesForJob(ctx context.Context, jobID int64) ([]models.CandidateSummary, error) {
	return repo.listCandidates(ctx, "j.id = ?", jobID)
}

func (repo *Applications) listCandidates(ctx context.Context, condition string, arg int64) ([]models.CandidateSummary, error) {
	var rows []candidateRow
	err := repo.db.WithContext(ctx).Raw(candidateRosterQuery+`
		WHERE `+condition+` AND u.type = ?
		ORDER BY a.submitted_at DESC, a.id DESC`, arg, models.CandidateUser).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidates")
	}

	rows = lo.UniqBy(rows, func(row candidateRow) int64 {
		return row.ID
	})

	return lo.Map(rows, func(row candidateRow, _ int) models.CandidateSummary {
		return models.CandidateSummary{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Avatar:        models.DisplayAvatar(row.Name, row.ProfilePhoto, row.Avatar),
			ProfileTitle:  orDefault(row.ProfileTitle, models.DefaultProfileTitle),
			Bio:           orDefault(row.Bio, models.DefaultBio),
			Position:      row.Position,
			Location:      orDefault(row.Location, models.DefaultLocation),
			Phone:         row.Phone.String,
			Skills:        row.Skills,
			Experience:    row.Experience,
			Status:        row.CurrentStage,
			AppliedAt:     row.SubmittedAt,
			ResumeContent: nullable(row.ResumeContent),
			ResumeFile:    nullable(row.ResumeFile),
		}
	}), nil
}

// IsApplicant reports whether the candidate applied to any job of the company.
func (repo *Applications) IsApplicant(ctx context.Context, companyID, candidateID int64) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id = ? AND applications.candidate_id = ?", companyID, candidateID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check applicant")
	}
	return count > 0, nil
}
