package repositories

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func fakeHash(password string) (string, error) {
	return "hash:" + password, nil
}

func newTestDb(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	return dbCtx
}

func newSeededDb(t *testing.T) *DbContext {
	t.Helper()

	dbCtx := newTestDb(t)
	require.NoError(t, dbCtx.Seed(context.Background(), fakeHash))
	return dbCtx
}

func userID(t *testing.T, dbCtx *DbContext, email string) int64 {
	t.Helper()

	user, err := NewUsersRepository(dbCtx.DB).GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.ID
}

func countRows(t *testing.T, dbCtx *DbContext, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, dbCtx.DB.Model(model).Count(&count).Error)
	return count
}

func Test_Seed_EmptyDatabase_InsertsDemoDataOnce(t *testing.T) {
	dbCtx := newSeededDb(t)

	require.NoError(t, dbCtx.Seed(context.Background(), fakeHash))

	assert.Equal(t, int64(6), countRows(t, dbCtx, &models.User{}))
	assert.Equal(t, int64(2), countRows(t, dbCtx, &models.CompanyProfile{}))
	assert.Equal(t, int64(4), countRows(t, dbCtx, &models.CandidateProfile{}))
	assert.Equal(t, int64(5), countRows(t, dbCtx, &models.Job{}))
	assert.Equal(t, int64(4), countRows(t, dbCtx, &models.Application{}))
	assert.Equal(t, int64(3), countRows(t, dbCtx, &models.Favorite{}))
	assert.Equal(t, int64(4), countRows(t, dbCtx, &models.Resume{}))
}

func Test_CreateCandidate_DuplicateEmail_ReturnsErrDuplicate(t *testing.T) {
	dbCtx := newTestDb(t)
	users := NewUsersRepository(dbCtx.DB)
	ctx := context.Background()

	first := &models.User{Name: "Ana", Email: "ana@email.com", PasswordHash: "x", Type: models.CandidateUser}
	require.NoError(t, users.CreateCandidate(ctx, first, models.NewCandidateProfile(0)))

	second := &models.User{Name: "Ana 2", Email: "ana@email.com", PasswordHash: "y", Type: models.CandidateUser}
	err := users.CreateCandidate(ctx, second, models.NewCandidateProfile(0))

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, int64(1), countRows(t, dbCtx, &models.User{}))
	assert.Equal(t, int64(1), countRows(t, dbCtx, &models.CandidateProfile{}))
}

func Test_GetCandidate_NewProfile_HasEmptyLists(t *testing.T) {
	dbCtx := newTestDb(t)
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@email.com", PasswordHash: "x", Type: models.CandidateUser}
	require.NoError(t, NewUsersRepository(dbCtx.DB).CreateCandidate(ctx, user, models.NewCandidateProfile(0)))

	profile, err := NewProfilesRepository(dbCtx.DB).GetCandidate(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, models.InterestFindJob, profile.ProfessionalInterest)
	assert.NotNil(t, profile.Skills)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Experience)
	assert.Equal(t, "Ana", profile.User.Name)
}

func Test_Toggle_TwiceInARow_RestoresOriginalState(t *testing.T) {
	dbCtx := newSeededDb(t)
	favorites := NewFavoritesRepository(dbCtx.DB)
	ctx := context.Background()
	carla := userID(t, dbCtx, "carla@email.com")

	isFavorite, err := favorites.Toggle(ctx, carla, 2)
	require.NoError(t, err)
	assert.True(t, isFavorite)

	isFavorite, err = favorites.Toggle(ctx, carla, 2)
	require.NoError(t, err)
	assert.False(t, isFavorite)

	jobs, err := NewJobsRepository(dbCtx.DB).ListFavorites(ctx, carla)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func Test_ListFavorites_AfterToggle_ReturnsFavoritedJob(t *testing.T) {
	dbCtx := newSeededDb(t)
	ctx := context.Background()
	carla := userID(t, dbCtx, "carla@email.com")

	_, err := NewFavoritesRepository(dbCtx.DB).Toggle(ctx, carla, 2)
	require.NoError(t, err)

	jobs, err := NewJobsRepository(dbCtx.DB).ListFavorites(ctx, carla)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(2), jobs[0].ID)
	assert.Equal(t, "Analista de Dados Pleno", jobs[0].Title)
	assert.True(t, *jobs[0].IsFavorite)
}

func Test_CreateApplication_Twice_ReturnsErrDuplicate(t *testing.T) {
	dbCtx := newSeededDb(t)
	applications := NewApplicationsRepository(dbCtx.DB)
	ctx := context.Background()
	joao := userID(t, dbCtx, "joao@email.com")

	app := &models.Application{CandidateID: joao, JobID: 2, Status: models.StatusPending,
		CurrentStage: models.StageResumeAnalysis, JobSource: models.DefaultJobSource}
	require.NoError(t, applications.Create(ctx, app))

	history, err := applications.History(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.StageResumeAnalysis, history[0].Stage)
	assert.Equal(t, models.OutcomePending, history[0].Status)

	again := &models.Application{CandidateID: joao, JobID: 2, Status: models.StatusPending,
		CurrentStage: models.StageResumeAnalysis, JobSource: models.DefaultJobSource}
	assert.ErrorIs(t, applications.Create(ctx, again), ErrDuplicate)

	var count int64
	require.NoError(t, dbCtx.DB.Model(&models.Application{}).
		Where("candidate_id = ? AND job_id = ?", joao, 2).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func Test_ChangeStage_ExpectedStageOutdated_ReturnsErrStale(t *testing.T) {
	dbCtx := newSeededDb(t)
	applications := NewApplicationsRepository(dbCtx.DB)
	ctx := context.Background()
	carla := userID(t, dbCtx, "carla@email.com")

	var app models.Application
	require.NoError(t, dbCtx.DB.Where("candidate_id = ?", carla).First(&app).Error)

	err := applications.ChangeStage(ctx, StageChange{
		ApplicationID: app.ID,
		FromStage:     models.StageInterview,
		FromStatus:    models.StatusPending,
		ToStage:       models.StageFinalInterview,
		ToStatus:      models.StatusUnderReview,
		Outcome:       models.OutcomePassed,
	})
	assert.ErrorIs(t, err, ErrStale)

	err = applications.ChangeStage(ctx, StageChange{
		ApplicationID: app.ID,
		FromStage:     models.StageResumeAnalysis,
		FromStatus:    models.StatusPending,
		ToStage:       models.StageTechnicalTest,
		ToStatus:      models.StatusUnderReview,
		Outcome:       models.OutcomePassed,
		Notes:         "good resume",
		Opened:        &models.StageHistory{Stage: models.StageTechnicalTest, Status: models.OutcomePending},
	})
	require.NoError(t, err)

	history, err := applications.History(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.OutcomePassed, history[0].Status)
	assert.Equal(t, "good resume", history[0].Notes)
	assert.Equal(t, models.StageTechnicalTest, history[1].Stage)
	assert.Equal(t, models.OutcomePending, history[1].Status)
}

func Test_ListActiveForCandidate_FlagsFavoritesAndApplications(t *testing.T) {
	dbCtx := newSeededDb(t)
	joao := userID(t, dbCtx, "joao@email.com")

	jobs, err := NewJobsRepository(dbCtx.DB).ListActiveForCandidate(context.Background(), joao)
	require.NoError(t, err)
	require.Len(t, jobs, 5)

	byTitle := make(map[string]models.JobListing)
	for _, job := range jobs {
		byTitle[job.Title] = job
	}

	fullStack := byTitle["Desenvolvedor Full Stack Sênior"]
	assert.True(t, *fullStack.IsFavorite)
	assert.False(t, *fullStack.HasApplied)
	assert.Equal(t, int64(1), fullStack.Applicants)
	assert.Equal(t, "TechCorp Ltda", fullStack.Company)

	internship := byTitle["Estágio em Desenvolvimento Web"]
	assert.False(t, *internship.IsFavorite)
	assert.True(t, *internship.HasApplied)
}

func Test_ListPublic_NewestFirstWithLimit(t *testing.T) {
	dbCtx := newSeededDb(t)

	jobs, err := NewJobsRepository(dbCtx.DB).ListPublic(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, "Estágio em Desenvolvimento Web", jobs[0].Title)
	assert.Nil(t, jobs[0].IsFavorite)
	assert.NotNil(t, jobs[0].Requirements)
}

func Test_ListByCompany_IncludesClosedJobs(t *testing.T) {
	dbCtx := newSeededDb(t)
	techCorp := userID(t, dbCtx, "empresa@techcorp.com")
	require.NoError(t, dbCtx.DB.Model(&models.Job{}).Where("id = ?", 1).Update("status", models.JobClosed).Error)

	jobs, err := NewJobsRepository(dbCtx.DB).ListByCompany(context.Background(), techCorp)
	require.NoError(t, err)

	assert.Len(t, jobs, 3)
	assert.Empty(t, jobs[0].Company)
}

func Test_ListCandidatesForCompany_DeduplicatesByMostRecentApplication(t *testing.T) {
	dbCtx := newSeededDb(t)
	ctx := context.Background()
	techCorp := userID(t, dbCtx, "empresa@techcorp.com")
	amanda := userID(t, dbCtx, "amanda@email.com")

	require.NoError(t, NewApplicationsRepository(dbCtx.DB).Create(ctx, &models.Application{
		CandidateID: amanda, JobID: 1, Status: models.StatusPending,
		CurrentStage: models.StageResumeAnalysis, JobSource: models.DefaultJobSource,
	}))

	candidates, err := NewApplicationsRepository(dbCtx.DB).ListCandidatesForCompany(ctx, techCorp)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, amanda, candidates[0].ID)
	assert.Equal(t, "Desenvolvedor Full Stack Sênior", candidates[0].Position)
	assert.Equal(t, models.StageResumeAnalysis, candidates[0].Status)
	require.NotNil(t, candidates[0].ResumeFile)
	assert.Equal(t, "amanda_curriculo.pdf", *candidates[0].ResumeFile)
}

func Test_CandidateDetails_UnknownOrCompany_ReturnsNil(t *testing.T) {
	dbCtx := newSeededDb(t)
	profiles := NewProfilesRepository(dbCtx.DB)
	ctx := context.Background()

	details, err := profiles.CandidateDetails(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, details)

	details, err = profiles.CandidateDetails(ctx, userID(t, dbCtx, "empresa@techcorp.com"))
	require.NoError(t, err)
	assert.Nil(t, details)

	details, err = profiles.CandidateDetails(ctx, userID(t, dbCtx, "bruno@email.com"))
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, models.InterestProvide, details.ProfessionalInterest)
	assert.Equal(t, models.JSONList[string]{"React", "TypeScript", "CSS", "JavaScript", "Figma"}, details.Skills)
	require.NotNil(t, details.ResumePath)
	assert.Equal(t, "/uploads/curriculos/bruno_curriculo.pdf", *details.ResumePath)
}

func Test_CompanyMetrics_SeededCompany(t *testing.T) {
	dbCtx := newSeededDb(t)
	techCorp := userID(t, dbCtx, "empresa@techcorp.com")

	metrics, err := NewStatsRepository(dbCtx.DB).Company(context.Background(), techCorp)
	require.NoError(t, err)

	assert.Equal(t, models.DashboardMetrics{
		TotalCandidates:     3,
		ActiveJobs:          3,
		CandidatesInReview:  1,
		ScheduledInterviews: 1,
		TotalApplications:   3,
		HiredCandidates:     1,
	}, metrics)
}

func Test_CandidateMetrics_SeededCandidate(t *testing.T) {
	dbCtx := newSeededDb(t)
	joao := userID(t, dbCtx, "joao@email.com")

	metrics, err := NewStatsRepository(dbCtx.DB).Candidate(context.Background(), joao)
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.TotalCandidates)
	assert.Equal(t, int64(5), metrics.ActiveJobs)
	assert.Equal(t, int64(1), metrics.TotalApplications)
	assert.Equal(t, int64(1), metrics.HiredCandidates)
}

func Test_DeleteUser_CascadesToDependentRows(t *testing.T) {
	dbCtx := newSeededDb(t)
	techCorp := userID(t, dbCtx, "empresa@techcorp.com")

	require.NoError(t, dbCtx.DB.Delete(&models.User{}, techCorp).Error)

	assert.Equal(t, int64(1), countRows(t, dbCtx, &models.CompanyProfile{}))
	assert.Equal(t, int64(2), countRows(t, dbCtx, &models.Job{}))
	assert.Equal(t, int64(1), countRows(t, dbCtx, &models.Application{}))
}

func Test_Ping_ClosedDatabase_ReturnsError(t *testing.T) {
	dbCtx := newTestDb(t)
	ctx := context.Background()

	require.NoError(t, dbCtx.Ping(ctx))
	require.NoError(t, dbCtx.Close())
	assert.Error(t, dbCtx.Ping(ctx))
}
