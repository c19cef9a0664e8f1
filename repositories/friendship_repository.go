// File: /repositories/friendship_repository.go
package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ryde-api/apperrors"
	"ryde-api/models"
)

type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// Create inserts a new pending friendship. Self-relationships and duplicates
// (in either direction) are rejected before the insert; a concurrent
// duplicate that slips past the check loses on the pair_key unique index and
// is reported the same way.
func (r *FriendshipRepository) Create(fromUserID, toUserID string) (*models.Friendship, error) {
	if fromUserID == toUserID {
		return nil, apperrors.ErrSelfRelationship
	}

	friendship := &models.Friendship{
		ID:         uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PairKey:    models.PairKeyFor(fromUserID, toUserID),
		Status:     models.FriendshipStatusPending,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Friendship{}).
			Where("pair_key = ?", friendship.PairKey).
			Count(&count).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateRelationship
		}

		if err := tx.Create(friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateRelationship
			}
			return apperrors.ErrDBError.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(friendship.ID)
}

// FindByID loads a friendship with both participants.
func (r *FriendshipRepository) FindByID(id string) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.Preload("FromUser").Preload("ToUser").First(&friendship, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return &friendship, nil
}

// FindBetween looks up the relationship slot for an unordered pair. Returns
// nil without error when no record exists.
func (r *FriendshipRepository) FindBetween(userAID, userBID string) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("pair_key = ?", models.PairKeyFor(userAID, userBID)).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return &friendship, nil
}

// Save persists a mutated friendship through the same validation discipline
// as creation: the participants must differ and no other record may occupy
// the pair slot.
func (r *FriendshipRepository) Save(friendship *models.Friendship) error {
	if friendship.FromUserID == friendship.ToUserID {
		return apperrors.ErrSelfRelationship
	}

	friendship.PairKey = models.PairKeyFor(friendship.FromUserID, friendship.ToUserID)
	friendship.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Friendship{}).
			Where("pair_key = ? AND id != ?", friendship.PairKey, friendship.ID).
			Count(&count).Error; err != nil {
			return apperrors.ErrDBError.Wrap(err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateRelationship
		}

		if err := tx.Save(friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateRelationship
			}
			return apperrors.ErrDBError.Wrap(err)
		}
		return nil
	})
}

// ExistsAcceptedBetween reports whether an accepted record exists for the
// pair in either direction.
func (r *FriendshipRepository) ExistsAcceptedBetween(userAID, userBID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("pair_key = ? AND status = ?", models.PairKeyFor(userAID, userBID), models.FriendshipStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, apperrors.ErrDBError.Wrap(err)
	}
	return count > 0, nil
}

// FriendIDs returns the ids of everyone sharing an accepted friendship with
// the user, regardless of original direction.
func (r *FriendshipRepository) FriendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	err := r.db.
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?",
			userID, userID, models.FriendshipStatusAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}

	ids := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		ids = append(ids, friendship.OtherUserID(userID))
	}
	return ids, nil
}

// FollowerIDs returns users who initiated toward userID and were accepted.
func (r *FriendshipRepository) FollowerIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Friendship{}).
		Where("to_user_id = ? AND status = ?", userID, models.FriendshipStatusAccepted).
		Pluck("from_user_id", &ids).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return ids, nil
}

// FollowingIDs returns users userID initiated toward and was accepted by.
func (r *FriendshipRepository) FollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Friendship{}).
		Where("from_user_id = ? AND status = ?", userID, models.FriendshipStatusAccepted).
		Pluck("to_user_id", &ids).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return ids, nil
}

// ListInvolving returns every friendship the user participates in, newest
// first.
func (r *FriendshipRepository) ListInvolving(userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return friendships, nil
}

// ListPendingReceived returns pending requests where the user is the target.
func (r *FriendshipRepository) ListPendingReceived(userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("to_user_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return friendships, nil
}

// ListPendingSent returns pending requests the user initiated.
func (r *FriendshipRepository) ListPendingSent(userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Preload("FromUser").Preload("ToUser").
		Where("from_user_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, apperrors.ErrDBError.Wrap(err)
	}
	return friendships, nil
}
