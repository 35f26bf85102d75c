package geo

import (
	"math"
	"sort"

	"github.com/contestlet/contestlet/internal/models"
)

// EarthRadiusMiles is the Earth's mean radius in miles
const EarthRadiusMiles = 3958.8

// Haversine computes the great-circle distance in miles between two
// latitude/longitude points on a sphere of Earth's mean radius.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// ValidateCoordinates checks that lat/lng form a real point on the globe
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.ErrInvalidCoordinates
	}
	return nil
}

// ContestDistance pairs a contest with its distance from a query point
type ContestDistance struct {
	Contest models.Contest
	Miles   float64
}

// Nearby filters candidates to those within radiusMiles of the query point
// and orders them by ascending distance. Ties are broken by contest id
// ascending so results are deterministic.
func Nearby(lat, lng, radiusMiles float64, candidates []models.Contest) ([]ContestDistance, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	results := make([]ContestDistance, 0, len(candidates))
	for _, c := range candidates {
		d := Haversine(lat, lng, c.Latitude, c.Longitude)
		if d <= radiusMiles {
			results = append(results, ContestDistance{Contest: c, Miles: d})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Miles != results[j].Miles {
			return results[i].Miles < results[j].Miles
		}
		return results[i].Contest.ID < results[j].Contest.ID
	})

	return results, nil
}
