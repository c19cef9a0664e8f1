// File: /services/friendship_service.go
package services

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ryde-api/apperrors"
	"ryde-api/models"
)

// FriendshipStore is the persistence contract for friendship records.
// Satisfied by repositories.FriendshipRepository.
type FriendshipStore interface {
	Create(fromUserID, toUserID string) (*models.Friendship, error)
	FindByID(id string) (*models.Friendship, error)
	FindBetween(userAID, userBID string) (*models.Friendship, error)
	Save(friendship *models.Friendship) error
	ExistsAcceptedBetween(userAID, userBID string) (bool, error)
	FriendIDs(userID string) ([]string, error)
	FollowerIDs(userID string) ([]string, error)
	FollowingIDs(userID string) ([]string, error)
	ListInvolving(userID string) ([]models.Friendship, error)
	ListPendingReceived(userID string) ([]models.Friendship, error)
	ListPendingSent(userID string) ([]models.Friendship, error)
}

// UserStore is the slice of the user directory the friendship core consumes.
// Satisfied by repositories.UserRepository.
type UserStore interface {
	FindByID(id string) (*models.User, error)
	FindByIDs(ids []string) ([]models.User, error)
	ActiveWithLocation(excludeUserID string) ([]models.User, error)
}

// FriendshipService owns the relationship lifecycle: creation, the status
// state machine, the participant-facing action vocabulary, and the derived
// friend/follower/following views.
type FriendshipService struct {
	friendships FriendshipStore
	users       UserStore
	proximity   *ProximityService
	email       *EmailService // optional
}

func NewFriendshipService(friendships FriendshipStore, users UserStore, proximity *ProximityService, email *EmailService) *FriendshipService {
	return &FriendshipService{
		friendships: friendships,
		users:       users,
		proximity:   proximity,
		email:       email,
	}
}

// CreateFriendship opens a pending request from one user toward another.
func (s *FriendshipService) CreateFriendship(fromUserID, toUserID string) (*models.Friendship, error) {
	if fromUserID == toUserID {
		return nil, apperrors.ErrSelfRelationship
	}

	target, err := s.users.FindByID(toUserID)
	if err != nil {
		return nil, err
	}

	friendship, err := s.friendships.Create(fromUserID, toUserID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"friendship_id": friendship.ID,
		"from_user":     friendship.FromUser.Email,
		"to_user":       friendship.ToUser.Email,
	}).Info("Friendship request created")

	if s.email != nil {
		go s.email.SendFriendRequestEmail(target.Email, target.Name, friendship.FromUser.Name)
	}

	return friendship, nil
}

// SetStatus applies a direct status update. This path follows the transition
// table, which unlike the action vocabulary permits reviving a declined
// friendship back to pending.
func (s *FriendshipService) SetStatus(friendshipID, requesterID string, newStatus models.FriendshipStatus) (*models.Friendship, error) {
	friendship, err := s.loadForParticipant(friendshipID, requesterID)
	if err != nil {
		return nil, err
	}

	if !newStatus.Valid() {
		return nil, apperrors.ErrInvalidParams.WithMessage("Unknown status '%s'", newStatus)
	}
	if !friendship.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.ErrInvalidTransition.WithMessage(
			"Cannot change status from '%s' to '%s'", friendship.Status, newStatus)
	}

	if err := s.applyTransition(friendship, newStatus); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"friendship_id": friendship.ID,
		"status":        friendship.Status,
		"by":            requesterID,
	}).Info("Friendship status updated")

	return friendship, nil
}

// PerformAction applies one of the participant-facing actions. Declined
// friendships accept no actions; the only way forward from declined is the
// SetStatus resend path.
func (s *FriendshipService) PerformAction(friendshipID, requesterID string, action models.FriendshipAction) (*models.Friendship, error) {
	friendship, err := s.loadForParticipant(friendshipID, requesterID)
	if err != nil {
		return nil, err
	}

	if !action.Valid() {
		return nil, apperrors.ErrInvalidParams.WithMessage("Unknown action '%s'", action)
	}
	if !friendship.Status.AllowsAction(action) {
		return nil, apperrors.ErrInvalidAction.WithMessage(
			"Action '%s' is not allowed for friendship status '%s'", action, friendship.Status)
	}

	if err := s.applyTransition(friendship, action.TargetStatus()); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"friendship_id": friendship.ID,
		"action":        action,
		"by":            requesterID,
	}).Info("Friendship action performed")

	if action == models.FriendshipActionAccept && s.email != nil {
		go s.email.SendRequestAcceptedEmail(
			friendship.FromUser.Email, friendship.FromUser.Name, friendship.ToUser.Name)
	}

	return friendship, nil
}

// loadForParticipant loads a friendship and enforces that the requester is
// one of its two participants.
func (s *FriendshipService) loadForParticipant(friendshipID, requesterID string) (*models.Friendship, error) {
	friendship, err := s.friendships.FindByID(friendshipID)
	if err != nil {
		return nil, err
	}
	if !friendship.Involves(requesterID) {
		return nil, apperrors.ErrPermissionDenied
	}
	return friendship, nil
}

// applyTransition moves the friendship into next and persists it. AcceptedAt
// is set on the first entry into accepted and never reset, even when the
// status later changes.
func (s *FriendshipService) applyTransition(friendship *models.Friendship, next models.FriendshipStatus) error {
	if next == models.FriendshipStatusAccepted && friendship.AcceptedAt == nil {
		now := time.Now()
		friendship.AcceptedAt = &now
	}
	friendship.Status = next
	return s.friendships.Save(friendship)
}

// Friends returns everyone sharing an accepted friendship with the user,
// regardless of who initiated it.
func (s *FriendshipService) Friends(userID string) ([]models.User, error) {
	ids, err := s.friendships.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByIDs(ids)
}

// Followers returns users who initiated toward userID and were accepted.
func (s *FriendshipService) Followers(userID string) ([]models.User, error) {
	ids, err := s.friendships.FollowerIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByIDs(ids)
}

// Following returns users userID initiated toward and was accepted by.
func (s *FriendshipService) Following(userID string) ([]models.User, error) {
	ids, err := s.friendships.FollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByIDs(ids)
}

// AreFriends reports whether an accepted record exists between the two users
// in either direction.
func (s *FriendshipService) AreFriends(userAID, userBID string) (bool, error) {
	return s.friendships.ExistsAcceptedBetween(userAID, userBID)
}

// FriendsOverview returns the combined friends/followers/following payload.
func (s *FriendshipService) FriendsOverview(userID string) (*models.FriendsResponse, error) {
	friends, err := s.Friends(userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.Followers(userID)
	if err != nil {
		return nil, err
	}
	following, err := s.Following(userID)
	if err != nil {
		return nil, err
	}

	return &models.FriendsResponse{
		Friends:        toListItems(friends),
		Followers:      toListItems(followers),
		Following:      toListItems(following),
		FriendsCount:   len(friends),
		FollowersCount: len(followers),
		FollowingCount: len(following),
	}, nil
}

// StatusBetween describes the relationship slot between the requester and a
// target user. can_send_request is true iff no record exists or the existing
// record is declined or blocked.
func (s *FriendshipService) StatusBetween(requesterID, targetUserID string) (*models.FriendshipStatusResponse, error) {
	if _, err := s.users.FindByID(targetUserID); err != nil {
		return nil, err
	}

	friendship, err := s.friendships.FindBetween(requesterID, targetUserID)
	if err != nil {
		return nil, err
	}

	resp := &models.FriendshipStatusResponse{
		CanSendRequest: true,
	}
	if friendship != nil {
		status := friendship.Status
		id := friendship.ID
		resp.FriendshipStatus = &status
		resp.FriendshipID = &id
		resp.AreFriends = friendship.IsAccepted()
		resp.CanSendRequest = status == models.FriendshipStatusDeclined ||
			status == models.FriendshipStatusBlocked
	}
	return resp, nil
}

// NearbyFriends runs the proximity engine over the user's friend set.
func (s *FriendshipService) NearbyFriends(userID string, radiusKm float64) (*models.NearbyResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	friends, err := s.Friends(userID)
	if err != nil {
		return nil, err
	}

	return s.proximity.Nearby(user, friends, radiusKm)
}

// SearchFriends filters the user's friend set by a name/email substring.
func (s *FriendshipService) SearchFriends(userID, query string) ([]models.User, error) {
	friends, err := s.Friends(userID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]models.User, 0, len(friends))
	for _, friend := range friends {
		if strings.Contains(strings.ToLower(friend.Name), q) ||
			strings.Contains(strings.ToLower(friend.Email), q) {
			matches = append(matches, friend)
		}
	}
	return matches, nil
}

func toListItems(users []models.User) []models.UserListItem {
	items := make([]models.UserListItem, 0, len(users))
	for i := range users {
		items = append(items, users[i].ToListItem())
	}
	return items
}
