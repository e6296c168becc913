package services

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/selectflow/internal/clients/gemini"
	"github.com/maxaizer/selectflow/internal/logger"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"math"
	"strings"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

type ResultSource string

const (
	Generated ResultSource = "generated"
	Fallback  ResultSource = "fallback"
)

// Result carries AI output together with whether it came from the model or is a canned fallback.
type Result[T any] struct {
	Data   T            `json:"data"`
	Source ResultSource `json:"source"`
}

type ResumeAnalysis struct {
	Summary       string   `json:"summary"`
	Compatibility int      `json:"compatibility"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Suggestions   []string `json:"suggestions"`
	Score         int      `json:"score"`
}

type Report struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Trends          []string `json:"trends"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"nextSteps"`
}

type CandidateMatch struct {
	CandidateID   int64  `json:"candidateId"`
	Name          string `json:"name,omitempty"`
	MatchScore    int    `json:"matchScore"`
	Justification string `json:"justification"`
}

type TrendAnalysis struct {
	SkillsTrends     []string         `json:"skillsTrends"`
	ExperienceLevels map[string]int64 `json:"experienceLevels"`
	Locations        map[string]int64 `json:"locations"`
	Insights         []string         `json:"insights"`
}

type AIService struct {
	aiClient aiClient
}

func NewAIService(aiClient aiClient) *AIService {
	return &AIService{aiClient: aiClient}
}

func (a *AIService) AnalyzeResume(ctx context.Context, resumeText, requirements string) Result[ResumeAnalysis] {
	var parsed struct {
		Summary       string   `json:"summary"`
		Compatibility float64  `json:"compatibility"`
		Strengths     []string `json:"strengths"`
		Weaknesses    []string `json:"weaknesses"`
		Suggestions   []string `json:"suggestions"`
		Score         float64  `json:"score"`
	}

	if !a.generateJSON(ctx, "analyze_resume", resumeAnalysisRequest(resumeText, requirements), '{', '}', &parsed) {
		return Result[ResumeAnalysis]{Data: fallbackResumeAnalysis(), Source: Fallback}
	}

	return Result[ResumeAnalysis]{
		Data: ResumeAnalysis{
			Summary:       parsed.Summary,
			Compatibility: percent(parsed.Compatibility),
			Strengths:     nonNil(parsed.Strengths),
			Weaknesses:    nonNil(parsed.Weaknesses),
			Suggestions:   nonNil(parsed.Suggestions),
			Score:         percent(parsed.Score),
		},
		Source: Generated,
	}
}

func (a *AIService) GenerateReport(ctx context.Context, data any) Result[Report] {
	var parsed struct {
		Summary         string   `json:"summary"`
		Insights        []string `json:"insights"`
		Trends          []string `json:"trends"`
		Recommendations []string `json:"recommendations"`
		NextSteps       []string `json:"next_steps"`
	}

	if !a.generateJSON(ctx, "generate_report", reportRequest(data), '{', '}', &parsed) {
		return Result[Report]{Data: fallbackReport(), Source: Fallback}
	}

	return Result[Report]{
		Data: Report{
			Summary:         parsed.Summary,
			Insights:        nonNil(parsed.Insights),
			Trends:          nonNil(parsed.Trends),
			Recommendations: nonNil(parsed.Recommendations),
			NextSteps:       nonNil(parsed.NextSteps),
		},
		Source: Generated,
	}
}

// RecommendCandidates asks the model to order the candidates by fit. Entries with unknown ids are dropped.
func (a *AIService) RecommendCandidates(ctx context.Context, jobDescription string, candidates []CandidateBrief) Result[[]CandidateMatch] {
	var parsed []struct {
		CandidateID   json.Number `json:"candidateId"`
		MatchScore    float64     `json:"matchScore"`
		Justification string      `json:"justification"`
	}

	if !a.generateJSON(ctx, "recommend_candidates", recommendCandidatesRequest(jobDescription, candidates), '[', ']', &parsed) {
		return Result[[]CandidateMatch]{Data: []CandidateMatch{}, Source: Fallback}
	}

	names := lo.SliceToMap(candidates, func(c CandidateBrief) (int64, string) { return c.ID, c.Name })

	matches := make([]CandidateMatch, 0, len(parsed))
	for _, entry := range parsed {
		id, err := entry.CandidateID.Int64()
		if err != nil {
			continue
		}
		name, ok := names[id]
		if !ok {
			continue
		}
		matches = append(matches, CandidateMatch{
			CandidateID:   id,
			Name:          name,
			MatchScore:    percent(entry.MatchScore),
			Justification: entry.Justification,
		})
	}

	return Result[[]CandidateMatch]{Data: matches, Source: Generated}
}

func (a *AIService) AnalyzeTrends(ctx context.Context, candidates []CandidateBrief) Result[TrendAnalysis] {
	var parsed struct {
		SkillsTrends     []string           `json:"skills_trends"`
		ExperienceLevels map[string]float64 `json:"experience_levels"`
		Locations        map[string]float64 `json:"locations"`
		Insights         []string           `json:"insights"`
	}

	if !a.generateJSON(ctx, "analyze_trends", trendsRequest(candidates), '{', '}', &parsed) {
		return Result[TrendAnalysis]{Data: fallbackTrends(), Source: Fallback}
	}

	toCounts := func(values map[string]float64) map[string]int64 {
		return lo.MapValues(values, func(v float64, _ string) int64 { return int64(math.Round(v)) })
	}

	return Result[TrendAnalysis]{
		Data: TrendAnalysis{
			SkillsTrends:     nonNil(parsed.SkillsTrends),
			ExperienceLevels: toCounts(parsed.ExperienceLevels),
			Locations:        toCounts(parsed.Locations),
			Insights:         nonNil(parsed.Insights),
		},
		Source: Generated,
	}
}

// generateJSON sends the request and decodes the JSON found between the first open and the last close delimiter.
// Failures are logged and counted, never returned.
func (a *AIService) generateJSON(ctx context.Context, operation, request string, openDelim, closeDelim byte, target any) bool {
	response, err := a.aiClient.GenerateResponse(ctx, request)
	if err != nil {
		outcome := "client_error"
		if errors.Is(err, gemini.ErrDisabled) {
			outcome = "disabled"
		} else {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
				Errorf("ai operation %s failed: %v", operation, err)
		}
		metrics.AIRequestsCounter.WithLabelValues(operation, outcome).Inc()
		return false
	}

	if err = extractJSON(response, openDelim, closeDelim, target); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("ai operation %s returned unusable response: %v", operation, err)
		metrics.AIRequestsCounter.WithLabelValues(operation, "parse_error").Inc()
		return false
	}

	metrics.AIRequestsCounter.WithLabelValues(operation, string(Generated)).Inc()
	return true
}

func extractJSON(response string, openDelim, closeDelim byte, target any) error {
	start := strings.IndexByte(response, openDelim)
	end := strings.LastIndexByte(response, closeDelim)
	if start < 0 || end < start {
		return fmt.Errorf("no JSON %c...%c found in response", openDelim, closeDelim)
	}
	return json.Unmarshal([]byte(response[start:end+1]), target)
}

func percent(value float64) int {
	return int(math.Round(math.Max(0, math.Min(100, value))))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func fallbackResumeAnalysis() ResumeAnalysis {
	return ResumeAnalysis{
		Summary:       "Análise temporariamente indisponível",
		Compatibility: 75,
		Strengths:     []string{"Experiência relevante", "Formação adequada"},
		Weaknesses:    []string{"Falta de certificações específicas"},
		Suggestions:   []string{"Adicionar mais detalhes sobre projetos realizados"},
		Score:         75,
	}
}

func fallbackReport() Report {
	return Report{
		Summary:         "Erro ao gerar relatório. Tente novamente mais tarde.",
		Insights:        []string{},
		Trends:          []string{},
		Recommendations: []string{},
		NextSteps:       []string{},
	}
}

func fallbackTrends() TrendAnalysis {
	return TrendAnalysis{
		SkillsTrends:     []string{"Python", "JavaScript", "React"},
		ExperienceLevels: map[string]int64{"junior": 10, "pleno": 15, "senior": 8},
		Locations:        map[string]int64{"São Paulo": 20, "Rio de Janeiro": 10, "Belo Horizonte": 8},
		Insights: []string{
			"Crescimento na demanda por desenvolvedores React",
			"Aumento de candidatos com experiência em IA",
		},
	}
}
