// File: /models/friendship.go
package models

import (
	"strings"
	"time"
)

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusDeclined FriendshipStatus = "declined"
	FriendshipStatusBlocked  FriendshipStatus = "blocked"
)

func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipStatusPending, FriendshipStatusAccepted, FriendshipStatusDeclined, FriendshipStatusBlocked:
		return true
	}
	return false
}

// statusTransitions is the direct status-update vocabulary. Note the
// asymmetry with actionTargets: a declined friendship can only be revived
// through this path (resend), never through an action.
var statusTransitions = map[FriendshipStatus][]FriendshipStatus{
	FriendshipStatusPending:  {FriendshipStatusAccepted, FriendshipStatusDeclined, FriendshipStatusBlocked},
	FriendshipStatusAccepted: {FriendshipStatusBlocked},
	FriendshipStatusBlocked:  {FriendshipStatusPending}, // unblock
	FriendshipStatusDeclined: {FriendshipStatusPending}, // resend request
}

// CanTransitionTo reports whether a direct status update from s to next is
// allowed.
func (s FriendshipStatus) CanTransitionTo(next FriendshipStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// FriendshipAction is the participant-facing action vocabulary.
type FriendshipAction string

const (
	FriendshipActionAccept  FriendshipAction = "accept"
	FriendshipActionDecline FriendshipAction = "decline"
	FriendshipActionBlock   FriendshipAction = "block"
	FriendshipActionUnblock FriendshipAction = "unblock"
)

func (a FriendshipAction) Valid() bool {
	switch a {
	case FriendshipActionAccept, FriendshipActionDecline, FriendshipActionBlock, FriendshipActionUnblock:
		return true
	}
	return false
}

// TargetStatus is the status an action moves the friendship into.
func (a FriendshipAction) TargetStatus() FriendshipStatus {
	switch a {
	case FriendshipActionAccept:
		return FriendshipStatusAccepted
	case FriendshipActionDecline:
		return FriendshipStatusDeclined
	case FriendshipActionBlock:
		return FriendshipStatusBlocked
	case FriendshipActionUnblock:
		return FriendshipStatusPending
	}
	return ""
}

// actionsByStatus lists the actions permitted for each current status.
// Declined friendships accept no actions at all.
var actionsByStatus = map[FriendshipStatus][]FriendshipAction{
	FriendshipStatusPending:  {FriendshipActionAccept, FriendshipActionDecline, FriendshipActionBlock},
	FriendshipStatusAccepted: {FriendshipActionBlock},
	FriendshipStatusBlocked:  {FriendshipActionUnblock},
	FriendshipStatusDeclined: {},
}

// AllowsAction reports whether the action is permitted for the current status.
func (s FriendshipStatus) AllowsAction(a FriendshipAction) bool {
	for _, allowed := range actionsByStatus[s] {
		if a == allowed {
			return true
		}
	}
	return false
}

// Friendship is the single record representing the relationship between two
// users regardless of who initiated it. PairKey is the lexicographically
// sorted id pair; its unique index is what makes concurrent duplicate creates
// lose cleanly instead of racing past the existence check.
type Friendship struct {
	ID         string           `json:"id" gorm:"primaryKey;size:191"`
	FromUserID string           `json:"from_user_id" gorm:"not null;size:191;index:idx_friendships_from_status"`
	ToUserID   string           `json:"to_user_id" gorm:"not null;size:191;index:idx_friendships_to_status"`
	PairKey    string           `json:"-" gorm:"uniqueIndex;not null;size:383"`
	Status     FriendshipStatus `json:"status" gorm:"not null;default:'pending';size:10;index:idx_friendships_from_status;index:idx_friendships_to_status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	AcceptedAt *time.Time       `json:"accepted_at"`

	FromUser User `json:"from_user,omitempty" gorm:"foreignKey:FromUserID"`
	ToUser   User `json:"to_user,omitempty" gorm:"foreignKey:ToUserID"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// PairKeyFor normalizes an unordered user-id pair into the uniqueness key.
func PairKeyFor(userAID, userBID string) string {
	if strings.Compare(userAID, userBID) > 0 {
		userAID, userBID = userBID, userAID
	}
	return userAID + ":" + userBID
}

// Involves reports whether userID is one of the two participants.
func (f *Friendship) Involves(userID string) bool {
	return f.FromUserID == userID || f.ToUserID == userID
}

// OtherUserID returns the participant that is not userID. Callers must check
// Involves first.
func (f *Friendship) OtherUserID(userID string) string {
	if f.FromUserID == userID {
		return f.ToUserID
	}
	return f.FromUserID
}

func (f *Friendship) IsAccepted() bool {
	return f.Status == FriendshipStatusAccepted
}

func (f *Friendship) IsPending() bool {
	return f.Status == FriendshipStatusPending
}

func (f *Friendship) IsBlocked() bool {
	return f.Status == FriendshipStatusBlocked
}

// DTO Models for API requests and responses

// CreateFriendshipRequest for POST /friendships
type CreateFriendshipRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
}

// UpdateStatusRequest for PUT /friendships/:id/status
type UpdateStatusRequest struct {
	Status FriendshipStatus `json:"status" binding:"required,oneof=pending accepted declined blocked"`
}

// ActionRequest for POST /friendships/:id/actions
type ActionRequest struct {
	Action FriendshipAction `json:"action" binding:"required,oneof=accept decline block unblock"`
}

// FriendshipResponse is the full friendship shape with both participants.
type FriendshipResponse struct {
	ID         string           `json:"id"`
	FromUser   UserListItem     `json:"from_user"`
	ToUser     UserListItem     `json:"to_user"`
	Status     FriendshipStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	AcceptedAt *time.Time       `json:"accepted_at"`
}

func (f *Friendship) ToResponse() FriendshipResponse {
	return FriendshipResponse{
		ID:         f.ID,
		FromUser:   f.FromUser.ToListItem(),
		ToUser:     f.ToUser.ToListItem(),
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
		AcceptedAt: f.AcceptedAt,
	}
}

// FriendshipStatusResponse for GET /friendships/status
type FriendshipStatusResponse struct {
	AreFriends       bool              `json:"are_friends"`
	FriendshipStatus *FriendshipStatus `json:"friendship_status"`
	FriendshipID     *string           `json:"friendship_id"`
	CanSendRequest   bool              `json:"can_send_request"`
}

// FriendsResponse for GET /friendships/friends
type FriendsResponse struct {
	Friends        []UserListItem `json:"friends"`
	Followers      []UserListItem `json:"followers"`
	Following      []UserListItem `json:"following"`
	FriendsCount   int            `json:"friends_count"`
	FollowersCount int            `json:"followers_count"`
	FollowingCount int            `json:"following_count"`
}

// NearbyUser is a candidate that passed the radius filter, with its computed
// distance attached.
type NearbyUser struct {
	UserListItem
	DistanceKm float64 `json:"distance_km"`
}

// NearbyResponse echoes the reference location and radius alongside the
// ranked results.
type NearbyResponse struct {
	UserLocation []float64    `json:"user_location"`
	RadiusKm     float64      `json:"radius_km"`
	Users        []NearbyUser `json:"users"`
	Count        int          `json:"count"`
}
