// File: /utils/validators.go
package utils

import (
	"regexp"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

// ValidateCoordinatePair enforces the both-or-neither rule plus range checks.
// Returns false for a partial pair or out-of-range values.
func ValidateCoordinatePair(lat, lng *float64) bool {
	if lat == nil && lng == nil {
		return true
	}
	if lat == nil || lng == nil {
		return false
	}
	return IsValidLatitude(*lat) && IsValidLongitude(*lng)
}
