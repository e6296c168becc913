package repositories

import (
	"context"
	"database/sql"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) GetCandidate(ctx context.Context, userID int64) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := repo.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get candidate profile")
	}
	return &profile, nil
}

func (repo *Profiles) GetCompany(ctx context.Context, userID int64) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := repo.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get company profile")
	}
	return &profile, nil
}

func (repo *Profiles) SaveCandidate(ctx context.Context, profile *models.CandidateProfile) error {
	return errors.Wrap(repo.db.WithContext(ctx).Omit("User").Save(profile).Error, "failed to save candidate profile")
}

func (repo *Profiles) SaveCompany(ctx context.Context, profile *models.CompanyProfile) error {
	return errors.Wrap(repo.db.WithContext(ctx).Omit("User").Save(profile).Error, "failed to save company profile")
}

type candidateDetailsRow struct {
	ID                   int64
	Name                 string
	Email                string
	Avatar               string
	ProfilePhoto         string
	Phone                sql.NullString
	Location             sql.NullString
	ProfileTitle         sql.NullString
	Bio                  sql.NullString
	ProfessionalInterest sql.NullString
	Skills               models.JSONList[string]
	Experience           models.Entries
	Education            models.Entries
	Languages            models.JSONList[string]
	Linkedin             sql.NullString
	Github               sql.NullString
	Portfolio            sql.NullString
	ResumeContent        sql.NullString
	ResumeFile           sql.NullString
	ResumePath           sql.NullString
}

// CandidateDetails returns the candidate's full profile with the latest résumé, or nil for unknown candidates.
func (repo *Profiles) CandidateDetails(ctx context.Context, candidateID int64) (*models.CandidateDetails, error) {
	var rows []candidateDetailsRow
	err := repo.db.WithContext(ctx).Raw(`
		SELECT u.id, u.name, u.email, u.avatar, u.profile_photo,
		       cp.phone, cp.location, cp.profile_title, cp.bio, cp.professional_interest,
		       cp.skills, cp.experience, cp.education, cp.languages,
		       cp.linkedin, cp.github, cp.portfolio,
		       r.content AS resume_content, r.file_name AS resume_file, r.file_path AS resume_path
		FROM users u
		LEFT JOIN candidate_profiles cp ON cp.user_id = u.id
		LEFT JOIN resumes r ON r.id = (`+latestResumeQuery+`)
		WHERE u.id = ? AND u.type = ?`, candidateID, models.CandidateUser).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get candidate details")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &models.CandidateDetails{
		ID:                   row.ID,
		Name:                 row.Name,
		Email:                row.Email,
		Avatar:               models.DisplayAvatar(row.Name, row.ProfilePhoto, row.Avatar),
		ProfileTitle:         orDefault(row.ProfileTitle, models.DefaultProfileTitle),
		Bio:                  orDefault(row.Bio, models.DefaultBio),
		Phone:                row.Phone.String,
		Location:             row.Location.String,
		ProfessionalInterest: models.ProfessionalInterest(row.ProfessionalInterest.String),
		Skills:               row.Skills,
		Experience:           row.Experience,
		Education:            row.Education,
		Languages:            row.Languages,
		LinkedIn:             row.Linkedin.String,
		GitHub:               row.Github.String,
		Portfolio:            row.Portfolio.String,
		ResumeContent:        nullable(row.ResumeContent),
		ResumeFile:           nullable(row.ResumeFile),
		ResumePath:           nullable(row.ResumePath),
	}, nil
}

const latestResumeQuery = `SELECT r2.id FROM resumes r2 WHERE r2.candidate_id = u.id ORDER BY r2.uploaded_at DESC, r2.id DESC LIMIT 1`

func orDefault(value sql.NullString, fallback string) string {
	if value.String == "" {
		return fallback
	}
	return value.String
}

func nullable(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
