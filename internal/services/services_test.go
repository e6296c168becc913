package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/config"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/repositories"
	"github.com/maxaizer/selectflow/internal/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

type testEnv struct {
	db           *repositories.DbContext
	bus          EventBus.Bus
	hasher       *PasswordHasher
	sessions     sessions.Store
	users        *repositories.Users
	profiles     *repositories.Profiles
	jobs         *repositories.Jobs
	applications *repositories.Applications
	favorites    *repositories.Favorites
	resumes      *repositories.Resumes
	stats        *repositories.Stats
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	hasher := NewPasswordHasher(config.PasswordConfig{Memory: 64, Iterations: 1, Parallelism: 1})
	require.NoError(t, dbCtx.Seed(context.Background(), hasher.Hash))

	return &testEnv{
		db:           dbCtx,
		bus:          EventBus.New(),
		hasher:       hasher,
		sessions:     sessions.NewMemoryStore(time.Minute),
		users:        repositories.NewUsersRepository(dbCtx.DB),
		profiles:     repositories.NewProfilesRepository(dbCtx.DB),
		jobs:         repositories.NewJobsRepository(dbCtx.DB),
		applications: repositories.NewApplicationsRepository(dbCtx.DB),
		favorites:    repositories.NewFavoritesRepository(dbCtx.DB),
		resumes:      repositories.NewResumesRepository(dbCtx.DB),
		stats:        repositories.NewStatsRepository(dbCtx.DB),
	}
}

func (e *testEnv) identity(t *testing.T, email string) auth.Identity {
	t.Helper()

	user, err := e.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return auth.Identity{UserID: user.ID, Type: user.Type}
}

// jobID finds a seeded job by its title.
func (e *testEnv) jobID(t *testing.T, title string) int64 {
	t.Helper()

	var job models.Job
	require.NoError(t, e.db.DB.Where("title = ?", title).First(&job).Error)
	return job.ID
}

func (e *testEnv) applicationID(t *testing.T, candidateEmail, jobTitle string) int64 {
	t.Helper()

	var app models.Application
	require.NoError(t, e.db.DB.
		Joins("JOIN users ON users.id = applications.candidate_id").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("users.email = ? AND jobs.title = ?", candidateEmail, jobTitle).
		First(&app).Error)
	return app.ID
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.DB.Model(model).Count(&count).Error)
	return count
}

func assertKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()

	require.Error(t, err)
	serviceErr, ok := AsError(err)
	require.True(t, ok, "expected service error, got %v", err)
	assert.Equal(t, kind, serviceErr.Kind)
}

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateResponse(ctx context.Context, request string) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

const (
	techCorpEmail = "empresa@techcorp.com"
	innovaEmail   = "contato@innovatech.com"
	joaoEmail     = "joao@email.com"
	amandaEmail   = "amanda@email.com"
	brunoEmail    = "bruno@email.com"
	carlaEmail    = "carla@email.com"

	fullStackJob = "Desenvolvedor Full Stack Sênior"
	dataJob      = "Analista de Dados Pleno"
	designJob    = "Designer UX/UI Junior"
	mobileJob    = "Desenvolvedor Mobile React Native"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
