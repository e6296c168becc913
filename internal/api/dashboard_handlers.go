package api

import (
	"net/http"
)

// @Summary Public statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.PublicStats
// @Router /public/stats [get]
func (s *Server) handlePublicStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.services.Dashboard.PublicStats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary Dashboard metrics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardMetrics
// @Failure 401 {object} errorResponse
// @Router /dashboard/metrics [get]
func (s *Server) handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.services.Dashboard.Metrics(r.Context(), identity(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// @Summary Tag vocabulary
// @Tags dashboard
// @Produce json
// @Success 200 {array} string
// @Router /tags [get]
func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.services.Dashboard.Tags())
}

// @Summary Health check
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.Health
// @Failure 500 {object} services.Health
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.services.Dashboard.Health(r.Context())
	status := http.StatusOK
	if !health.Healthy() {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, health)
}
