package services

import (
	"context"
	"github.com/maxaizer/selectflow/internal/auth"
	"github.com/maxaizer/selectflow/internal/domain/models"
)

type favoriteRepository interface {
	Toggle(ctx context.Context, candidateID, jobID int64) (bool, error)
}

type jobGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
}

type FavoriteService struct {
	favorites favoriteRepository
	jobs      jobGetter
}

func NewFavoriteService(favorites favoriteRepository, jobs jobGetter) *FavoriteService {
	return &FavoriteService{favorites: favorites, jobs: jobs}
}

// Toggle flips the favorite state of the job for the candidate and returns the new state.
func (s *FavoriteService) Toggle(ctx context.Context, identity auth.Identity, jobID int64) (bool, error) {
	if !identity.IsCandidate() {
		return false, errAccessDenied
	}
	if jobID <= 0 {
		return false, newError(ValidationError, "ID da vaga é obrigatório")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, errJobNotFound
	}

	return s.favorites.Toggle(ctx, identity.UserID, jobID)
}
