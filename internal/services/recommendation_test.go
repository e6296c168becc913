package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func listing(id int64, location string, requirements, tags []string) models.JobListing {
	return models.JobListing{ID: id, Location: location, Requirements: requirements, Tags: tags}
}

func Test_ScoreJobs_SkillAndLocation_Score30(t *testing.T) {
	jobs := []models.JobListing{listing(1, "São Paulo, SP", nil, []string{"react", "híbrido"})}

	scored := ScoreJobs([]string{"React"}, "São Paulo", jobs)

	require.Len(t, scored, 1)
	assert.Equal(t, 30, *scored[0].MatchScore)
}

func Test_ScoreJobs_SubstringMatch(t *testing.T) {
	jobs := []models.JobListing{listing(1, "Remoto", []string{"Good fit"}, nil)}

	scored := ScoreJobs([]string{"Go"}, "", jobs)

	require.Len(t, scored, 1)
	assert.Equal(t, 20, *scored[0].MatchScore)
}

func Test_ScoreJobs_CappedAt100(t *testing.T) {
	jobs := []models.JobListing{listing(1, "São Paulo", []string{"go", "golang", "go modules"}, []string{"go", "gopher", "go"})}

	scored := ScoreJobs([]string{"go"}, "São Paulo", jobs)

	require.Len(t, scored, 1)
	assert.Equal(t, 100, *scored[0].MatchScore)
}

func Test_ScoreJobs_ZeroDroppedAndStableOrder(t *testing.T) {
	jobs := []models.JobListing{
		listing(1, "Recife", []string{"java"}, nil),
		listing(2, "Recife", []string{"python"}, nil),
		listing(3, "Recife", []string{"python", "sql"}, nil),
		listing(4, "Recife", []string{"sql"}, nil),
	}

	scored := ScoreJobs([]string{"python", "sql"}, "", jobs)

	ids := lo.Map(scored, func(j models.JobListing, _ int) int64 { return j.ID })
	assert.Equal(t, []int64{3, 2, 4}, ids)
}

func Test_ScoreJobs_KeepsTopTen(t *testing.T) {
	var jobs []models.JobListing
	for i := 0; i < 15; i++ {
		jobs = append(jobs, listing(int64(i), "", []string{fmt.Sprintf("react %d", i)}, nil))
	}

	assert.Len(t, ScoreJobs([]string{"react"}, "", jobs), 10)
}

func Test_ScoreJobs_MonotonicInMatches(t *testing.T) {
	previous := 0
	for matches := 0; matches <= 8; matches++ {
		tags := make([]string, matches)
		for i := range tags {
			tags[i] = "react"
		}
		score := matchScore([]string{"react"}, "", listing(1, "", nil, tags))
		assert.GreaterOrEqual(t, score, previous)
		assert.LessOrEqual(t, score, 100)
		previous = score
	}
}

func Test_RecommendJobs_SeededCandidate(t *testing.T) {
	env := newTestEnv(t)
	service := NewRecommendationService(env.profiles, env.jobs)

	recommended, err := service.RecommendJobs(context.Background(), env.identity(t, brunoEmail))

	require.NoError(t, err)
	require.NotEmpty(t, recommended)
	for i := 1; i < len(recommended); i++ {
		assert.GreaterOrEqual(t, *recommended[i-1].MatchScore, *recommended[i].MatchScore)
	}
	assert.NotNil(t, recommended[0].IsFavorite)
}
