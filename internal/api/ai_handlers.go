package api

import (
	"net/http"
)

type resumeAnalysisRequest struct {
	JobID       int64 `json:"jobId" validate:"required"`
	CandidateID int64 `json:"candidateId"`
}

// @Summary Résumé analysis
// @Description Compares a résumé with a job. Companies must pass the candidate of one of their applications.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body resumeAnalysisRequest true "Job and candidate"
// @Success 200 {object} services.Result[services.ResumeAnalysis]
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /ai/resume-analysis [post]
func (s *Server) handleResumeAnalysis(w http.ResponseWriter, r *http.Request) {
	var req resumeAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.services.Insights.AnalyzeResume(r.Context(), identity(r), req.JobID, req.CandidateID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// @Summary Recruiting report
// @Tags ai
// @Produce json
// @Success 200 {object} services.Result[services.Report]
// @Router /ai/report [get]
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Insights.Report(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// @Summary Applicant ranking
// @Tags ai
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} services.Result[[]services.CandidateMatch]
// @Failure 404 {object} errorResponse
// @Router /ai/jobs/{id}/ranking [get]
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.services.Insights.RankApplicants(r.Context(), identity(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// @Summary Applicant trends
// @Tags ai
// @Produce json
// @Success 200 {object} services.Result[services.TrendAnalysis]
// @Router /ai/trends [get]
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Insights.Trends(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
