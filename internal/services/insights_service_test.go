package services

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func newInsightsService(env *testEnv, client aiClient) *InsightsService {
	return NewInsightsService(NewAIService(client), env.jobs, env.applications, env.resumes, env.stats)
}

func Test_InsightsAnalyzeResume_Candidate_UsesLatestResume(t *testing.T) {
	env := newTestEnv(t)
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Power BI, Machine Learning") && strings.Contains(prompt, dataJob)
	})).Return(`{"summary": "ok", "compatibility": 90, "score": 88}`, nil).Once()

	result, err := newInsightsService(env, client).AnalyzeResume(context.Background(), env.identity(t, amandaEmail), env.jobID(t, dataJob), 0)

	require.NoError(t, err)
	assert.Equal(t, Generated, result.Source)
	assert.Equal(t, 88, result.Data.Score)
	client.AssertExpectations(t)
}

func Test_InsightsAnalyzeResume_CompanyNonApplicant_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := newInsightsService(env, &mockAiClient{}).AnalyzeResume(context.Background(),
		env.identity(t, techCorpEmail), env.jobID(t, dataJob), env.identity(t, brunoEmail).UserID)

	assertKind(t, err, NotFoundError)
}

func Test_InsightsAnalyzeResume_OtherCompanysJob_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := newInsightsService(env, &mockAiClient{}).AnalyzeResume(context.Background(),
		env.identity(t, innovaEmail), env.jobID(t, dataJob), env.identity(t, amandaEmail).UserID)

	assertKind(t, err, NotFoundError)
}

func Test_InsightsRankApplicants_NamesFilledFromRoster(t *testing.T) {
	env := newTestEnv(t)
	amanda := env.identity(t, amandaEmail).UserID
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`[{"candidateId": `+itoa(amanda)+`, "matchScore": 91, "justification": "SQL"}]`, nil)

	result, err := newInsightsService(env, client).RankApplicants(context.Background(), env.identity(t, techCorpEmail), env.jobID(t, dataJob))

	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Amanda Silva", result.Data[0].Name)
	assert.Equal(t, 91, result.Data[0].MatchScore)
}

func Test_InsightsTrends_AiDown_Fallback(t *testing.T) {
	env := newTestEnv(t)
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return("", context.DeadlineExceeded)

	result, err := newInsightsService(env, client).Trends(context.Background(), env.identity(t, techCorpEmail))

	require.NoError(t, err)
	assert.Equal(t, Fallback, result.Source)
}

func Test_InsightsReport_AsCandidate_AccessDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := newInsightsService(env, &mockAiClient{}).Report(context.Background(), env.identity(t, joaoEmail))

	assertKind(t, err, AuthorizationError)
}
