package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestValidateCoordinatePair(t *testing.T) {
	tests := []struct {
		name  string
		lat   *float64
		lng   *float64
		valid bool
	}{
		{"both absent", nil, nil, true},
		{"valid pair", floatPtr(40.7128), floatPtr(-74.0060), true},
		{"boundary values", floatPtr(-90), floatPtr(180), true},
		{"latitude only", floatPtr(40.7128), nil, false},
		{"longitude only", nil, floatPtr(-74.0060), false},
		{"latitude too high", floatPtr(90.1), floatPtr(0), false},
		{"latitude too low", floatPtr(-90.1), floatPtr(0), false},
		{"longitude too high", floatPtr(0), floatPtr(180.1), false},
		{"longitude too low", floatPtr(0), floatPtr(-180.1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCoordinatePair(tt.lat, tt.lng))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}
