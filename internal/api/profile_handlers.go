package api

import (
	"encoding/json"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/services"
	"net/http"
)

type candidateProfileRequest struct {
	Phone                *string                      `json:"phone"`
	Location             *string                      `json:"location"`
	ProfileTitle         *string                      `json:"profileTitle"`
	Bio                  *string                      `json:"bio"`
	ProfessionalInterest *models.ProfessionalInterest `json:"professionalInterest"`
	Skills               *[]string                    `json:"skills"`
	Experience           *[]json.RawMessage           `json:"experience"`
	Education            *[]json.RawMessage           `json:"education"`
	Languages            *[]string                    `json:"languages"`
	LinkedIn             *string                      `json:"linkedin"`
	GitHub               *string                      `json:"github"`
	Portfolio            *string                      `json:"portfolio"`
}

type companyProfileRequest struct {
	CompanyName *string `json:"company_name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Size        *string `json:"size"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
	LinkedIn    *string `json:"linkedin"`
}

// @Summary Own profile
// @Description Candidate or company profile, depending on the session
// @Tags profile
// @Produce json
// @Success 200 {object} services.CandidateProfileView
// @Failure 404 {object} errorResponse
// @Router /profile [get]
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.services.Profiles.Get(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleUpdateProfile applies a partial update: fields missing from the body keep their values.
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body candidateProfileRequest true "Fields to change"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Router /profile [put]
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	var err error
	if id.IsCandidate() {
		var req candidateProfileRequest
		if err = decodeJSON(w, r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		err = s.services.Profiles.UpdateCandidate(r.Context(), id, services.CandidateProfilePatch{
			Phone:                req.Phone,
			Location:             req.Location,
			ProfileTitle:         req.ProfileTitle,
			Bio:                  req.Bio,
			ProfessionalInterest: req.ProfessionalInterest,
			Skills:               req.Skills,
			Experience:           req.Experience,
			Education:            req.Education,
			Languages:            req.Languages,
			LinkedIn:             req.LinkedIn,
			GitHub:               req.GitHub,
			Portfolio:            req.Portfolio,
		})
	} else {
		var req companyProfileRequest
		if err = decodeJSON(w, r, &req); err != nil {
			s.writeError(w, err)
			return
		}
		err = s.services.Profiles.UpdateCompany(r.Context(), id, services.CompanyProfilePatch{
			CompanyName: req.CompanyName,
			Description: req.Description,
			Industry:    req.Industry,
			Size:        req.Size,
			Website:     req.Website,
			Location:    req.Location,
			LinkedIn:    req.LinkedIn,
		})
	}

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
