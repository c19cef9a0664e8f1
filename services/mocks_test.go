package services

import (
	"fmt"
	"sort"
	"time"

	"ryde-api/apperrors"
	"ryde-api/models"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) FindByIDs(ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (s *fakeUserStore) ActiveWithLocation(excludeUserID string) ([]models.User, error) {
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user := s.users[id]
		if user.ID == excludeUserID || !user.IsActive || !user.HasLocation() {
			continue
		}
		users = append(users, *user)
	}
	return users, nil
}

// fakeFriendshipStore mirrors the repository's validation discipline in
// memory: self-relationship and pair-uniqueness checks on both create and
// save.
type fakeFriendshipStore struct {
	records map[string]*models.Friendship
	users   *fakeUserStore
	seq     int
}

func newFakeFriendshipStore(users *fakeUserStore) *fakeFriendshipStore {
	return &fakeFriendshipStore{
		records: make(map[string]*models.Friendship),
		users:   users,
	}
}

func (s *fakeFriendshipStore) attachUsers(f *models.Friendship) {
	if u, ok := s.users.users[f.FromUserID]; ok {
		f.FromUser = *u
	}
	if u, ok := s.users.users[f.ToUserID]; ok {
		f.ToUser = *u
	}
}

func (s *fakeFriendshipStore) Create(fromUserID, toUserID string) (*models.Friendship, error) {
	if fromUserID == toUserID {
		return nil, apperrors.ErrSelfRelationship
	}

	pairKey := models.PairKeyFor(fromUserID, toUserID)
	for _, existing := range s.records {
		if existing.PairKey == pairKey {
			return nil, apperrors.ErrDuplicateRelationship
		}
	}

	s.seq++
	now := time.Now()
	friendship := &models.Friendship{
		ID:         fmt.Sprintf("friendship-%d", s.seq),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		PairKey:    pairKey,
		Status:     models.FriendshipStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.records[friendship.ID] = friendship

	return s.FindByID(friendship.ID)
}

func (s *fakeFriendshipStore) FindByID(id string) (*models.Friendship, error) {
	friendship, ok := s.records[id]
	if !ok {
		return nil, apperrors.ErrFriendshipNotFound
	}
	copied := *friendship
	s.attachUsers(&copied)
	return &copied, nil
}

func (s *fakeFriendshipStore) FindBetween(userAID, userBID string) (*models.Friendship, error) {
	pairKey := models.PairKeyFor(userAID, userBID)
	for _, friendship := range s.records {
		if friendship.PairKey == pairKey {
			copied := *friendship
			s.attachUsers(&copied)
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeFriendshipStore) Save(friendship *models.Friendship) error {
	if friendship.FromUserID == friendship.ToUserID {
		return apperrors.ErrSelfRelationship
	}

	friendship.PairKey = models.PairKeyFor(friendship.FromUserID, friendship.ToUserID)
	for _, existing := range s.records {
		if existing.PairKey == friendship.PairKey && existing.ID != friendship.ID {
			return apperrors.ErrDuplicateRelationship
		}
	}

	friendship.UpdatedAt = time.Now()
	copied := *friendship
	copied.FromUser = models.User{}
	copied.ToUser = models.User{}
	s.records[friendship.ID] = &copied
	return nil
}

func (s *fakeFriendshipStore) ExistsAcceptedBetween(userAID, userBID string) (bool, error) {
	friendship, err := s.FindBetween(userAID, userBID)
	if err != nil {
		return false, err
	}
	return friendship != nil && friendship.IsAccepted(), nil
}

func (s *fakeFriendshipStore) FriendIDs(userID string) ([]string, error) {
	ids := []string{}
	for _, friendship := range s.records {
		if friendship.Status != models.FriendshipStatusAccepted || !friendship.Involves(userID) {
			continue
		}
		ids = append(ids, friendship.OtherUserID(userID))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeFriendshipStore) FollowerIDs(userID string) ([]string, error) {
	ids := []string{}
	for _, friendship := range s.records {
		if friendship.Status == models.FriendshipStatusAccepted && friendship.ToUserID == userID {
			ids = append(ids, friendship.FromUserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeFriendshipStore) FollowingIDs(userID string) ([]string, error) {
	ids := []string{}
	for _, friendship := range s.records {
		if friendship.Status == models.FriendshipStatusAccepted && friendship.FromUserID == userID {
			ids = append(ids, friendship.ToUserID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeFriendshipStore) ListInvolving(userID string) ([]models.Friendship, error) {
	return s.list(func(f *models.Friendship) bool {
		return f.Involves(userID)
	}), nil
}

func (s *fakeFriendshipStore) ListPendingReceived(userID string) ([]models.Friendship, error) {
	return s.list(func(f *models.Friendship) bool {
		return f.ToUserID == userID && f.Status == models.FriendshipStatusPending
	}), nil
}

func (s *fakeFriendshipStore) ListPendingSent(userID string) ([]models.Friendship, error) {
	return s.list(func(f *models.Friendship) bool {
		return f.FromUserID == userID && f.Status == models.FriendshipStatusPending
	}), nil
}

func (s *fakeFriendshipStore) list(match func(*models.Friendship) bool) []models.Friendship {
	out := []models.Friendship{}
	for _, friendship := range s.records {
		if match(friendship) {
			copied := *friendship
			s.attachUsers(&copied)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
