// File: /models/user.go
package models

import (
	"time"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Name        string    `json:"name" gorm:"not null;size:255;index"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password    string    `json:"-" gorm:"not null;size:255"`
	Dob         *string   `json:"dob,omitempty" gorm:"size:10"` // YYYY-MM-DD
	Address     string    `json:"address,omitempty" gorm:"type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Latitude    *float64  `json:"latitude" gorm:"type:decimal(9,6);index:idx_users_lat_lng"`
	Longitude   *float64  `json:"longitude" gorm:"type:decimal(9,6);index:idx_users_lat_lng"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasLocation reports whether both coordinates are set. Partial pairs are
// rejected at the data-entry boundary, so either both are present or neither.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// Location returns the coordinate pair. ok is false when the user has no
// location.
func (u *User) Location() (lat, lng float64, ok bool) {
	if !u.HasLocation() {
		return 0, 0, false
	}
	return *u.Latitude, *u.Longitude, true
}

// UserListItem is the reduced user shape embedded in friendship and search
// responses.
type UserListItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (u *User) ToListItem() UserListItem {
	return UserListItem{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
	}
}

// UpdateProfileRequest for PUT /users/me. Coordinates are validated as a pair
// in the controller: either both present or both absent.
type UpdateProfileRequest struct {
	Name        *string  `json:"name"`
	Dob         *string  `json:"dob"`
	Address     *string  `json:"address"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}
