package stops

import (
	"context"
	"log"

	"github.com/ryantanhw/sgbus/internal/cache"
	"github.com/ryantanhw/sgbus/internal/models"
)

// Fetcher retrieves the complete bus-stop list from the remote API.
type Fetcher interface {
	FetchAllBusStops(ctx context.Context) (models.Dataset, error)
}

// Service composes the dataset cache with the remote fetcher and runs
// queries against whichever copy of the dataset it obtains. The dataset
// is borrowed read-only per call and never mutated.
type Service struct {
	cache   *cache.Dataset
	fetcher Fetcher
}

// NewService creates a stop query service.
func NewService(c *cache.Dataset, f Fetcher) *Service {
	return &Service{cache: c, fetcher: f}
}

// GetAll returns the bus-stop dataset, from cache when useCache is set
// and the cache is valid, otherwise freshly fetched and persisted.
func (s *Service) GetAll(ctx context.Context, useCache bool) (models.Dataset, error) {
	return s.cache.GetOrFetch(useCache, func() (models.Dataset, error) {
		return s.fetcher.FetchAllBusStops(ctx)
	})
}

// FindByCode looks up a single stop by its code.
func (s *Service) FindByCode(ctx context.Context, code string, useCache bool) (models.BusStop, bool, error) {
	ds, err := s.GetAll(ctx, useCache)
	if err != nil {
		return models.BusStop{}, false, err
	}
	stop, ok := FindByCode(ds, code)
	return stop, ok, nil
}

// SearchByRoad finds stops on roads matching the search term.
func (s *Service) SearchByRoad(ctx context.Context, road string, useCache bool) ([]models.BusStop, error) {
	ds, err := s.GetAll(ctx, useCache)
	if err != nil {
		return nil, err
	}
	return SearchByRoad(ds, road), nil
}

// FindNearby finds stops within radiusKm of a point, nearest first.
func (s *Service) FindNearby(ctx context.Context, lat, lon, radiusKm float64, useCache bool) ([]models.NearbyStop, error) {
	ds, err := s.GetAll(ctx, useCache)
	if err != nil {
		return nil, err
	}

	log.Printf("Searching for bus stops within %.2fkm of (%.4f, %.4f)...", radiusKm, lat, lon)
	nearby := FindNearby(ds, lat, lon, radiusKm)
	log.Printf("Found %d bus stops within %.2fkm", len(nearby), radiusKm)

	return nearby, nil
}
