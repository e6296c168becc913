package api

import (
	"errors"
	"github.com/maxaizer/selectflow/internal/config"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/maxaizer/selectflow/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"net/http"
)

type Services struct {
	Auth            *services.AuthService
	Jobs            *services.JobService
	Applications    *services.ApplicationService
	Favorites       *services.FavoriteService
	Candidates      *services.CandidateService
	Profiles        *services.ProfileService
	Recommendations *services.RecommendationService
	Resumes         *services.ResumeService
	Insights        *services.InsightsService
	Dashboard       *services.DashboardService
}

type Options struct {
	Session        config.SessionConfig
	MaxUploadBytes int64
	MetricsEnabled bool
}

type Server struct {
	services Services
	options  Options
	mux      *http.ServeMux
}

func NewServer(svc Services, options Options) (*Server, error) {

	if svc.Auth == nil || svc.Jobs == nil || svc.Applications == nil || svc.Favorites == nil ||
		svc.Candidates == nil || svc.Profiles == nil || svc.Recommendations == nil ||
		svc.Resumes == nil || svc.Insights == nil || svc.Dashboard == nil {
		return nil, errors.New("every service must be provided")
	}

	if options.Session.CookieName == "" {
		return nil, errors.New("session cookie name is empty")
	}

	s := &Server{services: svc, options: options, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the router wrapped with panic recovery, request logging and metrics.
func (s *Server) Handler() http.Handler {
	return instrument(recoverPanics(s.mux))
}

func (s *Server) routes() {
	company := s.requireRole(models.CompanyUser)
	candidate := s.requireRole(models.CandidateUser)

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/auth/me", s.requireSession(s.handleMe))

	s.mux.HandleFunc("GET /api/public/jobs", s.handlePublicJobs)
	s.mux.HandleFunc("GET /api/public/stats", s.handlePublicStats)
	s.mux.HandleFunc("GET /api/dashboard/metrics", s.requireSession(s.handleDashboardMetrics))

	s.mux.HandleFunc("GET /api/candidates", company(s.handleListCandidates))
	s.mux.HandleFunc("GET /api/candidates/{id}/details", company(s.handleCandidateDetails))

	s.mux.HandleFunc("GET /api/jobs", s.requireSession(s.handleListJobs))
	s.mux.HandleFunc("POST /api/jobs", company(s.handleCreateJob))

	s.mux.HandleFunc("GET /api/favorites", candidate(s.handleListFavorites))
	s.mux.HandleFunc("POST /api/favorites", candidate(s.handleToggleFavorite))

	s.mux.HandleFunc("GET /api/profile", s.requireSession(s.handleGetProfile))
	s.mux.HandleFunc("PUT /api/profile", s.requireSession(s.handleUpdateProfile))

	s.mux.HandleFunc("GET /api/applications", candidate(s.handleListApplications))
	s.mux.HandleFunc("POST /api/applications", candidate(s.handleApply))
	s.mux.HandleFunc("PUT /api/applications/{id}/stage", company(s.handleAdvanceStage))
	s.mux.HandleFunc("GET /api/applications/{id}/history", s.requireSession(s.handleStageHistory))

	s.mux.HandleFunc("GET /api/resumes", candidate(s.handleListResumes))
	s.mux.HandleFunc("POST /api/resumes", candidate(s.handleUploadResume))

	s.mux.HandleFunc("GET /api/recommendations/jobs", candidate(s.handleRecommendJobs))

	s.mux.HandleFunc("POST /api/ai/resume-analysis", s.requireSession(s.handleResumeAnalysis))
	s.mux.HandleFunc("GET /api/ai/report", company(s.handleReport))
	s.mux.HandleFunc("GET /api/ai/jobs/{id}/ranking", company(s.handleRanking))
	s.mux.HandleFunc("GET /api/ai/trends", company(s.handleTrends))

	s.mux.HandleFunc("GET /api/tags", s.handleTags)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if s.options.MetricsEnabled {
		s.mux.Handle("GET /metrics", metrics.Handler())
	}
	s.mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
