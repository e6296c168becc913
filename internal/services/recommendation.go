package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/maxaizer/selectflow/internal/metrics"
	"github.com/samber/lo"
	"slices"
	"strings"
	"time"
)

const (
	skillMatchPoints   = 20
	locationBonus      = 10
	maxMatchScore      = 100
	maxRecommendations = 10
)

type candidateProfileGetter interface {
	GetCandidate(ctx context.Context, userID int64) (*models.CandidateProfile, error)
}

type activeJobsLister interface {
	ListActiveForCandidate(ctx context.Context, candidateID int64) ([]models.JobListing, error)
}

type RecommendationService struct {
	profiles candidateProfileGetter
	jobs     activeJobsLister
}

func NewRecommendationService(profiles candidateProfileGetter, jobs activeJobsLister) *RecommendationService {
	return &RecommendationService{profiles: profiles, jobs: jobs}
}

func (s *RecommendationService) RecommendJobs(ctx context.Context, identity auth.Identity) ([]models.JobListing, error) {
	if !identity.IsCandidate() {
		return nil, errAccessDenied
	}

	profile, err := s.profiles.GetCandidate(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []models.JobListing{}, nil
	}

	jobs, err := s.jobs.ListActiveForCandidate(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	recommended := ScoreJobs(profile.Skills, profile.Location, jobs)
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	return recommended, nil
}

// ScoreJobs ranks jobs by how many of the skills appear in their requirements and tags.
// A skill matches a string when it is a case-insensitive substring of it, so "Go" matches "Good fit".
// Jobs scoring zero are dropped, ties keep the input order and at most ten jobs are returned.
func ScoreJobs(skills []string, location string, jobs []models.JobListing) []models.JobListing {
	loweredSkills := lo.Map(skills, func(skill string, _ int) string { return strings.ToLower(skill) })
	loweredLocation := strings.ToLower(location)

	scored := make([]models.JobListing, 0, len(jobs))
	for _, job := range jobs {
		score := matchScore(loweredSkills, loweredLocation, job)
		if score == 0 {
			continue
		}
		job.MatchScore = lo.ToPtr(score)
		scored = append(scored, job)
	}

	slices.SortStableFunc(scored, func(a, b models.JobListing) int {
		return *b.MatchScore - *a.MatchScore
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored
}

func matchScore(skills []string, location string, job models.JobListing) int {
	texts := make([]string, 0, len(job.Requirements)+len(job.Tags))
	for _, text := range job.Requirements {
		texts = append(texts, strings.ToLower(text))
	}
	for _, text := range job.Tags {
		texts = append(texts, strings.ToLower(text))
	}

	matches := 0
	for _, skill := range skills {
		for _, text := range texts {
			if strings.Contains(text, skill) {
				matches++
			}
		}
	}

	bonus := 0
	if location != "" && strings.Contains(strings.ToLower(job.Location), location) {
		bonus = 1
	}

	return min(matches*skillMatchPoints+bonus*locationBonus, maxMatchScore)
}
