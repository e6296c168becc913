package repositories

import (
	"context"
	"github.com/maxaizer/selectflow/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// CreateCandidate stores the user together with its candidate profile.
func (repo *Users) CreateCandidate(ctx context.Context, user *models.User, profile *models.CandidateProfile) error {
	return repo.createWithProfile(ctx, user, func(tx *gorm.DB) error {
		profile.UserID = user.ID
		return tx.Omit("User").Create(profile).Error
	})
}

// CreateCompany stores the user together with its company profile.
func (repo *Users) CreateCompany(ctx context.Context, user *models.User, profile *models.CompanyProfile) error {
	return repo.createWithProfile(ctx, user, func(tx *gorm.DB) error {
		profile.UserID = user.ID
		return tx.Omit("User").Create(profile).Error
	})
}

func (repo *Users) createWithProfile(ctx context.Context, user *models.User, createProfile func(tx *gorm.DB) error) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return createProfile(tx)
	})

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "failed to create user")
}

func (repo *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count users by email")
	}
	return count > 0, nil
}

func (repo *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return repo.first(ctx, "email = ?", email)
}

func (repo *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *Users) first(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}
