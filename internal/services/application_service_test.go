package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/events"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newApplicationService(env *testEnv) *ApplicationService {
	return NewApplicationService(env.applications, env.jobs, env.bus)
}

func Test_Apply_Twice_ConflictAndSingleRow(t *testing.T) {
	env := newTestEnv(t)
	service := newApplicationService(env)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)
	jobID := env.jobID(t, dataJob)

	var submitted []events.ApplicationSubmitted
	require.NoError(t, env.bus.Subscribe(events.ApplicationSubmittedTopic, func(e events.ApplicationSubmitted) {
		submitted = append(submitted, e)
	}))

	_, err := service.Apply(ctx, joao, jobID, "")
	require.NoError(t, err)

	_, err = service.Apply(ctx, joao, jobID, "")
	assertKind(t, err, ConflictError)

	var count int64
	require.NoError(t, env.db.DB.Model(&models.Application{}).
		Where("candidate_id = ? AND job_id = ?", joao.UserID, jobID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.Len(t, submitted, 1)
	assert.Equal(t, jobID, submitted[0].JobID)
}

func Test_Apply_NewApplication_StartsAtResumeAnalysis(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)

	appID, err := newApplicationService(env).Apply(ctx, joao, env.jobID(t, dataJob), "linkedin")
	require.NoError(t, err)

	app, err := env.applications.GetByID(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, models.StageResumeAnalysis, app.CurrentStage)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, "linkedin", app.JobSource)

	history, err := env.applications.History(ctx, appID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.OutcomePending, history[0].Status)
}

func Test_Apply_UnknownOrClosedJob(t *testing.T) {
	env := newTestEnv(t)
	service := newApplicationService(env)
	ctx := context.Background()
	joao := env.identity(t, joaoEmail)

	_, err := service.Apply(ctx, joao, 9999, "")
	assertKind(t, err, NotFoundError)

	jobID := env.jobID(t, designJob)
	require.NoError(t, env.db.DB.Model(&models.Job{}).Where("id = ?", jobID).Update("status", models.JobClosed).Error)

	_, err = service.Apply(ctx, joao, jobID, "")
	assertKind(t, err, ValidationError)
}

func Test_Apply_AsCompany_AccessDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := newApplicationService(env).Apply(context.Background(), env.identity(t, techCorpEmail), env.jobID(t, dataJob), "")

	assertKind(t, err, AuthorizationError)
}

func Test_AdvanceStage_Forward_UpdatesStatusAndHistory(t *testing.T) {
	env := newTestEnv(t)
	service := newApplicationService(env)
	ctx := context.Background()
	appID := env.applicationID(t, carlaEmail, fullStackJob)

	var changes []events.StageChanged
	require.NoError(t, env.bus.Subscribe(events.StageChangedTopic, func(e events.StageChanged) {
		changes = append(changes, e)
	}))

	app, err := service.AdvanceStage(ctx, env.identity(t, techCorpEmail), appID, StageMove{Stage: "interview", Notes: "skipped ahead"})
	require.NoError(t, err)

	assert.Equal(t, models.StageInterview, app.CurrentStage)
	assert.Equal(t, models.StatusUnderReview, app.Status)

	history, err := env.applications.History(ctx, appID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StageResumeAnalysis, history[0].Stage)
	assert.Equal(t, models.OutcomePassed, history[0].Status)
	assert.Equal(t, "skipped ahead", history[0].Notes)
	assert.Equal(t, models.StageInterview, history[1].Stage)
	assert.Equal(t, models.OutcomePending, history[1].Status)

	require.Len(t, changes, 1)
	assert.Equal(t, models.StageResumeAnalysis, changes[0].From)
	assert.Equal(t, models.StageInterview, changes[0].To)
}

func Test_AdvanceStage_BackwardsOrSideways_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	service := newApplicationService(env)
	ctx := context.Background()
	techCorp := env.identity(t, techCorpEmail)
	appID := env.applicationID(t, amandaEmail, dataJob)

	_, err := service.AdvanceStage(ctx, techCorp, appID, StageMove{Stage: "technical_test"})
	assertKind(t, err, ValidationError)

	_, err = service.AdvanceStage(ctx, techCorp, appID, StageMove{Stage: "interview"})
	assertKind(t, err, ValidationError)

	_, err = service.AdvanceStage(ctx, techCorp, appID, StageMove{Stage: "onboarding"})
	assertKind(t, err, ValidationError)
}

func Test_AdvanceStage_ToHired_Approved(t *testing.T) {
	env := newTestEnv(t)
	appID := env.applicationID(t, amandaEmail, dataJob)

	app, err := newApplicationService(env).AdvanceStage(context.Background(), env.identity(t, techCorpEmail), appID, StageMove{Stage: "hired"})

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)
}

func Test_AdvanceStage_Reject_FailsCurrentStageAndFreezes(t *testing.T) {
	env := newTestEnv(t)
	service := newApplicationService(env)
	ctx := context.Background()
	techCorp := env.identity(t, techCorpEmail)
	appID := env.applicationID(t, amandaEmail, dataJob)
	historyBefore, err := env.applications.History(ctx, appID)
	require.NoError(t, err)

	app, err := service.AdvanceStage(ctx, techCorp, appID, StageMove{Reject: true, Notes: "perfil diferente"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, app.Status)
	assert.Equal(t, models.StageInterview, app.CurrentStage)

	history, err := env.applications.History(ctx, appID)
	require.NoError(t, err)
	require.Len(t, history, len(historyBefore))
	last := history[len(history)-1]
	assert.Equal(t, models.StageInterview, last.Stage)
	assert.Equal(t, models.OutcomeFailed, last.Status)

	_, err = service.AdvanceStage(ctx, techCorp, appID, StageMove{Stage: "final_interview"})
	assertKind(t, err, ValidationError)
	_, err = service.AdvanceStage(ctx, techCorp, appID, StageMove{Reject: true})
	assertKind(t, err, ValidationError)
}

func Test_AdvanceStage_HiredApplication_Frozen(t *testing.T) {
	env := newTestEnv(t)
	appID := env.applicationID(t, joaoEmail, "Estágio em Desenvolvimento Web")

	_, err := newApplicationService(env).AdvanceStage(context.Background(), env.identity(t, techCorpEmail), appID, StageMove{Reject: true})

	assertKind(t, err, ValidationError)
}

func Test_AdvanceStage_OtherCompanysApplication_NotFound(t *testing.T) {
	env := newTestEnv(t)
	appID := env.applicationID(t, amandaEmail, dataJob)

	_, err := newApplicationService(env).AdvanceStage(context.Background(), env.identity(t, innovaEmail), appID, StageMove{Stage: "hired"})

	assertKind(t, err, NotFoundError)
}

func Test_History_VisibleToApplicantAndOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	service := newApplicationService(env)
	ctx := context.Background()
	appID := env.applicationID(t, amandaEmail, dataJob)

	history, err := service.History(ctx, env.identity(t, amandaEmail), appID)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	_, err = service.History(ctx, env.identity(t, techCorpEmail), appID)
	require.NoError(t, err)

	_, err = service.History(ctx, env.identity(t, brunoEmail), appID)
	assertKind(t, err, NotFoundError)

	_, err = service.History(ctx, env.identity(t, innovaEmail), appID)
	assertKind(t, err, NotFoundError)
}

func Test_List_CandidateApplicationsWithJobData(t *testing.T) {
	env := newTestEnv(t)

	apps, err := newApplicationService(env).List(context.Background(), env.identity(t, amandaEmail))

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, dataJob, apps[0].JobTitle)
	assert.Equal(t, "TechCorp Ltda", apps[0].Company)
}
