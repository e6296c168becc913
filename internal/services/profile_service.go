package services

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
)

type profileRepository interface {
	GetCandidate(ctx context.Context, userID int64) (*models.CandidateProfile, error)
	GetCompany(ctx context.Context, userID int64) (*models.CompanyProfile, error)
	SaveCandidate(ctx context.Context, profile *models.CandidateProfile) error
	SaveCompany(ctx context.Context, profile *models.CompanyProfile) error
}

type ProfileService struct {
	profiles profileRepository
}

func NewProfileService(profiles profileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

type CandidateProfileView struct {
	ID                   int64                       `json:"id"`
	UserID               int64                       `json:"user_id"`
	Name                 string                      `json:"name"`
	Email                string                      `json:"email"`
	Avatar               string                      `json:"avatar"`
	Phone                string                      `json:"phone"`
	Location             string                      `json:"location"`
	ProfileTitle         string                      `json:"profile_title"`
	Bio                  string                      `json:"bio"`
	ProfessionalInterest models.ProfessionalInterest `json:"professional_interest"`
	Skills               models.JSONList[string]     `json:"skills"`
	Experience           models.Entries              `json:"experience"`
	Education            models.Entries              `json:"education"`
	Languages            models.JSONList[string]     `json:"languages"`
	LinkedIn             string                      `json:"linkedin"`
	GitHub               string                      `json:"github"`
	Portfolio            string                      `json:"portfolio"`
}

type CompanyProfileView struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	LinkedIn    string `json:"linkedin"`
}

// Get returns a *CandidateProfileView or a *CompanyProfileView depending on who is asking.
func (s *ProfileService) Get(ctx context.Context, identity auth.Identity) (any, error) {
	if identity.IsCandidate() {
		profile, err := s.profiles.GetCandidate(ctx, identity.UserID)
		if err != nil {
			return nil, err
		}
		if profile == nil || profile.User == nil {
			return nil, errProfileNotFound
		}
		return candidateView(profile), nil
	}

	profile, err := s.profiles.GetCompany(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.User == nil {
		return nil, errProfileNotFound
	}
	return companyView(profile), nil
}

// CandidateProfilePatch holds the fields sent by the client. Nil fields keep their stored value,
// and a patch without any field is rejected.
type CandidateProfilePatch struct {
	Phone                *string
	Location             *string
	ProfileTitle         *string
	Bio                  *string
	ProfessionalInterest *models.ProfessionalInterest
	Skills               *[]string
	Experience           *[]json.RawMessage
	Education            *[]json.RawMessage
	Languages            *[]string
	LinkedIn             *string
	GitHub               *string
	Portfolio            *string
}

type CompanyProfilePatch struct {
	CompanyName *string
	Description *string
	Industry    *string
	Size        *string
	Website     *string
	Location    *string
	LinkedIn    *string
}

func (s *ProfileService) UpdateCandidate(ctx context.Context, identity auth.Identity, patch CandidateProfilePatch) error {
	if !identity.IsCandidate() {
		return errAccessDenied
	}
	if patch == (CandidateProfilePatch{}) {
		return errNoData
	}
	if patch.ProfessionalInterest != nil && !patch.ProfessionalInterest.IsValid() {
		return newError(ValidationError, "Interesse profissional inválido: %s", *patch.ProfessionalInterest)
	}

	profile, err := s.profiles.GetCandidate(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		return errProfileNotFound
	}

	assign(&profile.Phone, patch.Phone)
	assign(&profile.Location, patch.Location)
	assign(&profile.ProfileTitle, patch.ProfileTitle)
	assign(&profile.Bio, patch.Bio)
	assign(&profile.ProfessionalInterest, patch.ProfessionalInterest)
	assignList(&profile.Skills, patch.Skills)
	assignList(&profile.Experience, patch.Experience)
	assignList(&profile.Education, patch.Education)
	assignList(&profile.Languages, patch.Languages)
	assign(&profile.LinkedIn, patch.LinkedIn)
	assign(&profile.GitHub, patch.GitHub)
	assign(&profile.Portfolio, patch.Portfolio)

	return s.profiles.SaveCandidate(ctx, profile)
}

func (s *ProfileService) UpdateCompany(ctx context.Context, identity auth.Identity, patch CompanyProfilePatch) error {
	if !identity.IsCompany() {
		return errAccessDenied
	}
	if patch == (CompanyProfilePatch{}) {
		return errNoData
	}

	profile, err := s.profiles.GetCompany(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		return errProfileNotFound
	}

	assign(&profile.CompanyName, patch.CompanyName)
	assign(&profile.Description, patch.Description)
	assign(&profile.Industry, patch.Industry)
	assign(&profile.Size, patch.Size)
	assign(&profile.Website, patch.Website)
	assign(&profile.Location, patch.Location)
	assign(&profile.LinkedIn, patch.LinkedIn)

	return s.profiles.SaveCompany(ctx, profile)
}

func assign[T any](target *T, value *T) {
	if value != nil {
		*target = *value
	}
}

func assignList[T any](target *models.JSONList[T], value *[]T) {
	if value == nil {
		return
	}
	if *value == nil {
		*target = models.JSONList[T]{}
		return
	}
	*target = *value
}

func candidateView(profile *models.CandidateProfile) *CandidateProfileView {
	return &CandidateProfileView{
		ID:                   profile.ID,
		UserID:               profile.UserID,
		Name:                 profile.User.Name,
		Email:                profile.User.Email,
		Avatar:               profile.User.DisplayAvatar(),
		Phone:                profile.Phone,
		Location:             profile.Location,
		ProfileTitle:         profile.ProfileTitle,
		Bio:                  profile.Bio,
		ProfessionalInterest: profile.ProfessionalInterest,
		Skills:               profile.Skills,
		Experience:           profile.Experience,
		Education:            profile.Education,
		Languages:            profile.Languages,
		LinkedIn:             profile.LinkedIn,
		GitHub:               profile.GitHub,
		Portfolio:            profile.Portfolio,
	}
}

func companyView(profile *models.CompanyProfile) *CompanyProfileView {
	return &CompanyProfileView{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Name:        profile.User.Name,
		Email:       profile.User.Email,
		Avatar:      profile.User.DisplayAvatar(),
		CompanyName: profile.CompanyName,
		Description: profile.Description,
		Industry:    profile.Industry,
		Size:        profile.Size,
		Website:     profile.Website,
		Location:    profile.Location,
		LinkedIn:    profile.LinkedIn,
	}
}
