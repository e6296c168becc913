package repositories

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Resumes struct {
	db *gorm.DB
}

func NewResumesRepository(db *gorm.DB) *Resumes {
	return &Resumes{db: db}
}

func (repo *Resumes) Create(ctx context.Context, resume *models.Resume) error {
	return errors.Wrap(repo.db.WithContext(ctx).Omit("Candidate").Create(resume).Error, "failed to create resume")
}

func (repo *Resumes) ListByCandidate(ctx context.Context, candidateID int64) ([]models.Resume, error) {
	var resumes []models.Resume
	err := repo.db.WithContext(ctx).Where("candidate_id = ?", candidateID).
		Order("uploaded_at DESC, id DESC").Find(&resumes).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list resumes")
	}
	return resumes, nil
}

func (repo *Resumes) Latest(ctx context.Context, candidateID int64) (*models.Resume, error) {
	var resume models.Resume
	err := repo.db.WithContext(ctx).Where("candidate_id = ?", candidateID).
		Order("uploaded_at DESC, id DESC").First(&resume).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get latest resume")
	}
	return &resume, nil
}
