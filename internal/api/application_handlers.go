package api

import (
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/services"
	"net/http"
)

type applyRequest struct {
	JobID     int64  `json:"jobId" validate:"required"`
	JobSource string `json:"jobSource"`
}

type applyResponse struct {
	Success       bool  `json:"success"`
	ApplicationID int64 `json:"applicationId"`
}

type stageRequest struct {
	Stage  string `json:"stage" validate:"required_without=Reject"`
	Reject bool   `json:"reject"`
	Notes  string `json:"notes"`
}

type applicationResponse struct {
	ID           int64                    `json:"id"`
	JobID        int64                    `json:"jobId"`
	CandidateID  int64                    `json:"candidateId"`
	Status       models.ApplicationStatus `json:"status"`
	CurrentStage models.Stage             `json:"currentStage"`
	JobSource    string                   `json:"jobSource"`
}

// @Summary List applications
// @Tags applications
// @Produce json
// @Success 200 {array} models.CandidateApplication
// @Failure 403 {object} errorResponse
// @Router /applications [get]
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.services.Applications.List(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(applications))
}

// @Summary Apply to job
// @Tags applications
// @Accept json
// @Produce json
// @Param request body applyRequest true "Job and source"
// @Success 200 {object} applyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /applications [post]
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.services.Applications.Apply(r.Context(), identity(r), req.JobID, req.JobSource)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applyResponse{Success: true, ApplicationID: id})
}

// handleAdvanceStage moves an application of one of the company's jobs forward, or rejects it.
// @Summary Advance or reject application
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body stageRequest true "Target stage"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /applications/{id}/stage [put]
func (s *Server) handleAdvanceStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req stageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	app, err := s.services.Applications.AdvanceStage(r.Context(), identity(r), id, services.StageMove{
		Stage:  req.Stage,
		Reject: req.Reject,
		Notes:  req.Notes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applicationResponse{
		ID:           app.ID,
		JobID:        app.JobID,
		CandidateID:  app.CandidateID,
		Status:       app.Status,
		CurrentStage: app.CurrentStage,
		JobSource:    app.JobSource,
	})
}

// @Summary Stage history
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {array} models.StageHistory
// @Failure 404 {object} errorResponse
// @Router /applications/{id}/history [get]
func (s *Server) handleStageHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	history, err := s.services.Applications.History(r.Context(), identity(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(history))
}

// @Summary List candidates
// @Description Every candidate who applied to one of the company's jobs
// @Tags candidates
// @Produce json
// @Success 200 {array} models.CandidateSummary
// @Failure 403 {object} errorResponse
// @Router /candidates [get]
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.services.Candidates.List(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(candidates))
}

// @Summary Candidate details
// @Tags candidates
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} models.CandidateDetails
// @Failure 404 {object} errorResponse
// @Router /candidates/{id}/details [get]
func (s *Server) handleCandidateDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	details, err := s.services.Candidates.Details(r.Context(), identity(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
