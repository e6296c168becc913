package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/clients/gemini"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_AnalyzeResume_JsonInsideProse_Generated(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return("Claro! ```json\n"+
		`{"summary": "Dev React", "compatibility": 82.4, "strengths": ["React"], "score": 120}`+"\n```", nil)

	result := NewAIService(client).AnalyzeResume(context.Background(), "cv", "React")

	assert.Equal(t, Generated, result.Source)
	assert.Equal(t, "Dev React", result.Data.Summary)
	assert.Equal(t, 82, result.Data.Compatibility)
	assert.Equal(t, 100, result.Data.Score)
	assert.Equal(t, []string{"React"}, result.Data.Strengths)
	assert.NotNil(t, result.Data.Weaknesses)
}

func Test_AnalyzeResume_ClientError_Fallback(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return("", errors.New("googleapi: Error 500"))
	before := testutil.ToFloat64(metrics.AIRequestsCounter.WithLabelValues("analyze_resume", "client_error"))

	result := NewAIService(client).AnalyzeResume(context.Background(), "cv", "React")

	assert.Equal(t, Fallback, result.Source)
	assert.Equal(t, 75, result.Data.Score)
	assert.Equal(t, 75, result.Data.Compatibility)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AIRequestsCounter.WithLabelValues("analyze_resume", "client_error")))
}

func Test_AnalyzeResume_MalformedJson_Fallback(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return(`{"summary": "oops"`, nil)

	result := NewAIService(client).AnalyzeResume(context.Background(), "cv", "React")

	assert.Equal(t, Fallback, result.Source)
	assert.Equal(t, fallbackResumeAnalysis(), result.Data)
}

func Test_AnalyzeTrends_Timeout_Fallback(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return("", context.DeadlineExceeded)

	result := NewAIService(client).AnalyzeTrends(context.Background(), nil)

	assert.Equal(t, Fallback, result.Source)
	assert.Equal(t, []string{"Python", "JavaScript", "React"}, result.Data.SkillsTrends)
	assert.Equal(t, int64(15), result.Data.ExperienceLevels["pleno"])
}

func Test_AnalyzeTrends_Generated(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return(
		`{"skills_trends": ["Go"], "experience_levels": {"senior": 2}, "locations": {"Recife": 1}, "insights": []}`, nil)

	result := NewAIService(client).AnalyzeTrends(context.Background(), []CandidateBrief{{ID: 1}})

	assert.Equal(t, Generated, result.Source)
	assert.Equal(t, int64(2), result.Data.ExperienceLevels["senior"])
	assert.Equal(t, int64(1), result.Data.Locations["Recife"])
}

func Test_RecommendCandidates_DropsUnknownIds(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return(
		`[{"candidateId": "2", "matchScore": 90, "justification": "forte"}, {"candidateId": 7, "matchScore": 50, "justification": "?"}, {"candidateId": 1, "matchScore": 40, "justification": "ok"}]`, nil)

	result := NewAIService(client).RecommendCandidates(context.Background(), "vaga",
		[]CandidateBrief{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bia"}})

	require.Equal(t, Generated, result.Source)
	require.Len(t, result.Data, 2)
	assert.Equal(t, int64(2), result.Data[0].CandidateID)
	assert.Equal(t, "Bia", result.Data[0].Name)
	assert.Equal(t, int64(1), result.Data[1].CandidateID)
}

func Test_RecommendCandidates_Disabled_EmptyFallback(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return("", gemini.ErrDisabled)

	result := NewAIService(client).RecommendCandidates(context.Background(), "vaga", []CandidateBrief{{ID: 1}})

	assert.Equal(t, Fallback, result.Source)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func Test_GenerateReport_NoJson_Fallback(t *testing.T) {
	client := &mockAiClient{}
	client.On("GenerateResponse", mock.Anything, mock.Anything).Return("Relatório em texto livre", nil)

	result := NewAIService(client).GenerateReport(context.Background(), map[string]int{"jobs": 1})

	assert.Equal(t, Fallback, result.Source)
	assert.Equal(t, fallbackReport().Summary, result.Data.Summary)
}
