// File: /repositories/user_repository.go
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"ryde-api/apperrors"
	"ryde-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.ErrDBError.Wrap(err)
	}
	return nil
}

func (r *UserRepository) Save(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return apperrors.ErrDBError.Wrap(err)
	}
	return nil
}

// FindByIDs loads a batch of users. Missing ids are silently skipped.
func (r *UserRepository) FindByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return users, nil
}

// ActiveWithLocation returns every active user with both coordinates set,
// excluding the given user. This is the directory-wide nearby candidate set.
func (r *UserRepository) ActiveWithLocation(excludeUserID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL AND is_active = ?", true).
		Where("id != ?", excludeUserID).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return users, nil
}

// SearchActive matches active users by name or email substring, excluding
// the searching user.
func (r *UserRepository) SearchActive(query, excludeUserID string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.
		Where("is_active = ?", true).
		Where("id != ?", excludeUserID).
		Where("name LIKE ? OR email LIKE ?", pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return users, nil
}
