package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ryde-api/apperrors"
	"ryde-api/models"
)

func TestHaversine(t *testing.T) {
	// New York City to Los Angeles, roughly 3936 km
	distance := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 3936, distance, 10)

	// Identical points
	assert.Zero(t, Haversine(40.7128, -74.0060, 40.7128, -74.0060))

	// Symmetric
	assert.InDelta(t,
		Haversine(40.7128, -74.0060, 34.0522, -118.2437),
		Haversine(34.0522, -118.2437, 40.7128, -74.0060),
		1e-9)
}

func TestNearbyFiltersByRadius(t *testing.T) {
	svc := NewProximityService()
	ref := testUser("user-a", "Alice", floatPtr(40.7128), floatPtr(-74.0060))
	candidates := []models.User{
		*testUser("user-b", "Bob", floatPtr(40.7129), floatPtr(-74.0061)),     // ~13 m away
		*testUser("user-c", "Carol", floatPtr(34.0522), floatPtr(-118.2437)), // ~3936 km away
	}

	resp, err := svc.Nearby(ref, candidates, 10)
	require.NoError(t, err)

	assert.Equal(t, []float64{40.7128, -74.0060}, resp.UserLocation)
	assert.Equal(t, 10.0, resp.RadiusKm)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "user-b", resp.Users[0].ID)
	assert.InDelta(t, 0.013, resp.Users[0].DistanceKm, 0.005)
}

func TestNearbyWithoutReferenceLocation(t *testing.T) {
	svc := NewProximityService()
	ref := testUser("user-a", "Alice", nil, nil)

	_, err := svc.Nearby(ref, nil, 10)
	assert.ErrorIs(t, err, apperrors.ErrLocationUnavailable)
}

func TestNearbySkipsUnlocatedCandidatesAndSelf(t *testing.T) {
	svc := NewProximityService()
	ref := testUser("user-a", "Alice", floatPtr(40.7128), floatPtr(-74.0060))
	candidates := []models.User{
		*testUser("user-a", "Alice", floatPtr(40.7128), floatPtr(-74.0060)),
		*testUser("user-b", "Bob", nil, nil),
		*testUser("user-c", "Carol", floatPtr(40.7130), floatPtr(-74.0062)),
	}

	resp, err := svc.Nearby(ref, candidates, 10)
	require.NoError(t, err)

	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "user-c", resp.Users[0].ID)
}

func TestNearbyOrdersByDistanceDeterministically(t *testing.T) {
	svc := NewProximityService()
	ref := testUser("user-a", "Alice", floatPtr(0), floatPtr(0))

	far := *testUser("user-far", "Far", floatPtr(0.05), floatPtr(0))
	near := *testUser("user-near", "Near", floatPtr(0.01), floatPtr(0))
	// Same distance as near, east instead of north; ties order by id
	tied := *testUser("user-also-near", "AlsoNear", floatPtr(0), floatPtr(0.01))

	// Candidate order must not leak into the output
	for _, candidates := range [][]models.User{
		{far, near, tied},
		{tied, far, near},
		{near, tied, far},
	} {
		resp, err := svc.Nearby(ref, candidates, 100)
		require.NoError(t, err)
		require.Equal(t, 3, resp.Count)
		assert.Equal(t, "user-also-near", resp.Users[0].ID)
		assert.Equal(t, "user-near", resp.Users[1].ID)
		assert.Equal(t, "user-far", resp.Users[2].ID)
	}
}

func TestNearbyUsesDefaultRadiusWhenUnset(t *testing.T) {
	svc := NewProximityService()
	ref := testUser("user-a", "Alice", floatPtr(40.7128), floatPtr(-74.0060))
	candidates := []models.User{
		*testUser("user-b", "Bob", floatPtr(40.7129), floatPtr(-74.0061)),
	}

	resp, err := svc.Nearby(ref, candidates, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultRadiusKm, resp.RadiusKm)
	assert.Equal(t, 1, resp.Count)
}

func TestNearbyDistancesRoundedToTwoDecimals(t *testing.T) {
	svc := NewProximityService()
	ref := testUser("user-a", "Alice", floatPtr(0), floatPtr(0))
	candidates := []models.User{
		*testUser("user-b", "Bob", floatPtr(0.03), floatPtr(0.04)),
	}

	resp, err := svc.Nearby(ref, candidates, 10)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)

	d := resp.Users[0].DistanceKm
	assert.Equal(t, roundToDecimal(d, 2), d)
}
