package main

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/api"
	"github.com/maxaizer/selectflow/internal/clients/gemini"
	"github.com/maxaizer/selectflow/internal/config"
	_ "github.com/maxaizer/selectflow/internal/docs"
	"github.com/maxaizer/selectflow/internal/logger"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/maxaizer/selectflow/internal/repositories"
	"github.com/maxaizer/selectflow/internal/services"
	"github.com/maxaizer/selectflow/internal/sessions"
	"github.com/maxaizer/selectflow/internal/storage"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const publicJobsCacheTTL = 30 * time.Second

// @title SelectFlow API
// @version 1.0
// @description Recruiting platform backend: jobs, applications, candidate profiles and AI insights.
// @BasePath /api
func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	hasher := services.NewPasswordHasher(cfg.Password)
	if cfg.DB.Seed {
		if err = dbContext.Seed(ctx, hasher.Hash); err != nil {
			log.Fatalf("can't seed db: %v", err)
		}
	}

	bus := EventBus.New()

	sessionStore, err := sessions.NewStore(ctx, cfg.Session)
	if err != nil {
		log.Fatalf("can't create session store: %v", err)
	}
	if closer, ok := sessionStore.(io.Closer); ok {
		defer closer.Close()
	}

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("can't create file storage: %v", err)
	}

	aiClient, err := gemini.NewClient(ctx, cfg.AI.Key, gemini.Model(cfg.AI.Model), cfg.AI.Timeout)
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	defer aiClient.Close()
	aiClient.SetMinuteRateLimit(cfg.AI.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.AI.MaxRequestsPerDay)
	if !cfg.AI.Enabled() {
		log.Warn("AI key is not configured, insights will use fallback results")
	}

	users := repositories.NewUsersRepository(dbContext.DB)
	profiles := repositories.NewProfilesRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	favorites := repositories.NewFavoritesRepository(dbContext.DB)
	resumes := repositories.NewResumesRepository(dbContext.DB)
	stats := repositories.NewStatsRepository(dbContext.DB)

	publicJobs := repositories.NewCachedPublicJobs(jobs, publicJobsCacheTTL)
	if err = publicJobs.SubscribeTo(bus); err != nil {
		log.Fatalf("can't subscribe public jobs cache: %v", err)
	}

	collector, err := services.NewStatsCollector(stats, cfg.Stats.Cron)
	if err != nil {
		log.Fatalf("can't create stats collector: %v", err)
	}
	defer collector.Stop()
	if err = collector.SubscribeTo(bus); err != nil {
		log.Fatalf("can't subscribe stats collector: %v", err)
	}

	server, err := api.NewServer(api.Services{
		Auth:            services.NewAuthService(users, hasher, sessionStore),
		Jobs:            services.NewJobService(jobs, publicJobs, bus),
		Applications:    services.NewApplicationService(applications, jobs, bus),
		Favorites:       services.NewFavoriteService(favorites, jobs),
		Candidates:      services.NewCandidateService(applications, profiles, cfg.Privacy.RestrictCandidateDetails),
		Profiles:        services.NewProfileService(profiles),
		Recommendations: services.NewRecommendationService(profiles, jobs),
		Resumes:         services.NewResumeService(resumes, files),
		Insights:        services.NewInsightsService(services.NewAIService(aiClient), jobs, applications, resumes, stats),
		Dashboard:       services.NewDashboardService(stats, dbContext),
	}, api.Options{
		Session:        cfg.Session,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		MetricsEnabled: cfg.Server.MetricsEnabled,
	})
	if err != nil {
		log.Fatalf("can't create api server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
