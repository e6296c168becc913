package repositories

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Favorites struct {
	db *gorm.DB
}

func NewFavoritesRepository(db *gorm.DB) *Favorites {
	return &Favorites{db: db}
}

// Toggle removes the favorite if it exists and adds it otherwise. It returns the new state.
func (repo *Favorites) Toggle(ctx context.Context, candidateID, jobID int64) (bool, error) {
	isFavorite := false

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		isFavorite = true
		return tx.Omit("Candidate", "Job").Create(&models.Favorite{CandidateID: candidateID, JobID: jobID}).Error
	})

	// a concurrent toggle inserted the same pair first
	if isUniqueViolation(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to toggle favorite")
	}
	return isFavorite, nil
}
