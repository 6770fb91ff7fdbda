// Package stops answers code, road, and proximity queries over the
// bus-stop dataset.
package stops

import (
	"math"
	"sort"
	"strings"

	"github.com/ryantanhw/sgbus/internal/geo"
	"github.com/ryantanhw/sgbus/internal/models"
)

// FindByCode returns the stop with the given code, if any. Codes are
// unique within a dataset so the first match is the only match.
func FindByCode(d models.Dataset, code string) (models.BusStop, bool) {
	for _, stop := range d.Stops {
		if stop.Code == code {
			return stop, true
		}
	}
	return models.BusStop{}, false
}

// SearchByRoad returns stops whose road name contains the search term,
// case-insensitively, sorted ascending by stop code. No matches is an
// empty result, not an error.
func SearchByRoad(d models.Dataset, road string) []models.BusStop {
	term := strings.ToLower(road)

	var matches []models.BusStop
	for _, stop := range d.Stops {
		if strings.Contains(strings.ToLower(stop.RoadName), term) {
			matches = append(matches, stop)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Code < matches[j].Code
	})

	return matches
}

// FindNearby returns stops within radiusKm of the given point, nearest
// first. Ties keep dataset order. Distances are rounded to whole meters.
func FindNearby(d models.Dataset, lat, lon, radiusKm float64) []models.NearbyStop {
	var nearby []models.NearbyStop

	for _, stop := range d.Stops {
		distKm := geo.DistanceKm(lat, lon, float64(stop.Latitude), float64(stop.Longitude))
		if distKm <= radiusKm {
			nearby = append(nearby, models.NearbyStop{
				BusStop:        stop,
				DistanceMeters: int(math.Round(distKm * 1000)),
			})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	return nearby
}
