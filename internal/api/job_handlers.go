package api

import (
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/services"
	"net/http"
)

type createJobRequest struct {
	Title          string           `json:"title" validate:"required"`
	Description    string           `json:"description" validate:"required"`
	Requirements   []string         `json:"requirements"`
	Location       string           `json:"location" validate:"required"`
	WorkLocation   string           `json:"workLocation" validate:"required"`
	Salary         string           `json:"salary"`
	Type           string           `json:"type"`
	EmploymentType string           `json:"employmentType"`
	Tags           []string         `json:"tags"`
	Status         models.JobStatus `json:"status" validate:"omitempty,oneof=active closed draft"`
}

type createJobResponse struct {
	Success bool  `json:"success"`
	JobID   int64 `json:"jobId"`
}

type favoriteRequest struct {
	JobID int64 `json:"jobId" validate:"required"`
}

type favoriteResponse struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}

// @Summary Public jobs
// @Description Ten most recent active jobs
// @Tags jobs
// @Produce json
// @Success 200 {array} models.JobListing
// @Router /public/jobs [get]
func (s *Server) handlePublicJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.services.Jobs.ListPublic(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(jobs))
}

// handleListJobs lists the caller's own postings for a company and every active job for a candidate.
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Success 200 {array} models.JobListing
// @Failure 401 {object} errorResponse
// @Router /jobs [get]
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.services.Jobs.List(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(jobs))
}

// @Summary Create job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body createJobRequest true "Job posting"
// @Success 200 {object} createJobResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /jobs [post]
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.services.Jobs.Create(r.Context(), identity(r), services.NewJob{
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		WorkLocation:   req.WorkLocation,
		Salary:         req.Salary,
		Type:           req.Type,
		EmploymentType: req.EmploymentType,
		Tags:           req.Tags,
		Status:         req.Status,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createJobResponse{Success: true, JobID: id})
}

// @Summary List favorites
// @Tags favorites
// @Produce json
// @Success 200 {array} models.JobListing
// @Failure 403 {object} errorResponse
// @Router /favorites [get]
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.services.Jobs.ListFavorites(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(jobs))
}

// @Summary Toggle favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body favoriteRequest true "Job"
// @Success 200 {object} favoriteResponse
// @Failure 404 {object} errorResponse
// @Router /favorites [post]
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	isFavorite, err := s.services.Favorites.Toggle(r.Context(), identity(r), req.JobID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{Success: true, IsFavorite: isFavorite})
}

// @Summary Recommended jobs
// @Description Active jobs scored against the candidate's skills and location
// @Tags jobs
// @Produce json
// @Success 200 {array} models.JobListing
// @Router /recommendations/jobs [get]
func (s *Server) handleRecommendJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.services.Recommendations.RecommendJobs(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(jobs))
}
