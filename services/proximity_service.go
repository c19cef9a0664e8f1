// File: /services/proximity_service.go
package services

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"ryde-api/apperrors"
	"ryde-api/models"
)

const earthRadiusKm = 6371

// DefaultRadiusKm is used when a nearby query does not supply a radius.
const DefaultRadiusKm = 10.0

// ProximityService ranks a candidate set by great-circle distance from a
// reference user. It is independent of how candidates are sourced, so the
// friends-only and directory-wide scopes share it.
type ProximityService struct{}

func NewProximityService() *ProximityService {
	return &ProximityService{}
}

// Haversine calculates the great-circle distance in kilometers between two
// lat/lon points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// roundToDecimal rounds a float to specified decimal places
func roundToDecimal(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// Nearby filters candidates to those within radiusKm of the reference user
// and returns them ordered by ascending distance (rounded to 2 decimals),
// ties broken by user id so output is deterministic. Candidates without a
// location are skipped. Fails when the reference user has no location.
func (s *ProximityService) Nearby(ref *models.User, candidates []models.User, radiusKm float64) (*models.NearbyResponse, error) {
	refLat, refLng, ok := ref.Location()
	if !ok {
		return nil, apperrors.ErrLocationUnavailable
	}

	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	nearby := make([]models.NearbyUser, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.ID == ref.ID {
			continue
		}
		lat, lng, ok := candidate.Location()
		if !ok {
			continue
		}

		distance := Haversine(refLat, refLng, lat, lng)
		if distance <= radiusKm {
			nearby = append(nearby, models.NearbyUser{
				UserListItem: candidate.ToListItem(),
				DistanceKm:   roundToDecimal(distance, 2),
			})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceKm != nearby[j].DistanceKm {
			return nearby[i].DistanceKm < nearby[j].DistanceKm
		}
		return nearby[i].ID < nearby[j].ID
	})

	logrus.WithFields(logrus.Fields{
		"user_id":   ref.ID,
		"radius_km": radiusKm,
		"found":     len(nearby),
	}).Info("Nearby query completed")

	return &models.NearbyResponse{
		UserLocation: []float64{refLat, refLng},
		RadiusKm:     radiusKm,
		Users:        nearby,
		Count:        len(nearby),
	}, nil
}
