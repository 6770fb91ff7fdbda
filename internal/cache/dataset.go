package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ryantanhw/sgbus/internal/models"
)

// datasetFile is the on-disk layout of the cached bus-stop list.
// Coordinates are written as numbers but read back as either numbers or
// strings, so files produced by other tooling stay loadable.
type datasetFile struct {
	CachedAt   string           `json:"cachedAt"`
	TotalStops int              `json:"totalStops"`
	BusStops   []models.BusStop `json:"bus_stops"`
}

// Dataset persists the full bus-stop list to a single JSON file and
// answers validity questions about it. Read problems are never surfaced
// to callers; a cache that cannot be read is simply not valid.
type Dataset struct {
	path string
	ttl  time.Duration
}

// NewDataset creates a dataset cache backed by the given file path.
func NewDataset(path string, ttl time.Duration) *Dataset {
	return &Dataset{path: path, ttl: ttl}
}

// IsValid reports whether a persisted dataset exists, parses, and is
// younger than the expiry window.
func (d *Dataset) IsValid() bool {
	ds, err := d.read()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Ignoring unreadable cache %s: %v", d.path, err)
		}
		return false
	}
	if time.Now().After(ds.CachedAt.Add(d.ttl)) {
		log.Printf("Cache expired (cached at %s), will fetch fresh data", ds.CachedAt.Format("2006-01-02 15:04:05"))
		return false
	}
	return true
}

// Load deserializes the persisted dataset. Callers should check IsValid
// first unless they accept stale data.
func (d *Dataset) Load() (models.Dataset, error) {
	return d.read()
}

// Save persists the full stop list with the current time as its cache
// timestamp. The file is written to a temp path in the same directory
// and renamed into place, so a concurrent reader never observes a
// partially written cache.
func (d *Dataset) Save(ds models.Dataset) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	out := datasetFile{
		CachedAt:   time.Now().Format(time.RFC3339),
		TotalStops: len(ds.Stops),
		BusStops:   ds.Stops,
	}

	tmp, err := os.CreateTemp(dir, "bus_stops_cache-*.json")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	if err := enc.Encode(out); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}

	log.Printf("Saved %d bus stops to cache: %s", len(ds.Stops), d.path)
	return nil
}

// FetchFunc produces a fresh dataset, typically from the remote API.
type FetchFunc func() (models.Dataset, error)

// GetOrFetch returns the cached dataset when useCache is set and the
// cache is valid, otherwise obtains a fresh one via fetch and persists
// it. Fetch failures propagate; save failures do not (the fresh data is
// still returned).
func (d *Dataset) GetOrFetch(useCache bool, fetch FetchFunc) (models.Dataset, error) {
	if useCache && d.IsValid() {
		ds, err := d.Load()
		if err == nil {
			log.Printf("Using cached bus stops (cached at %s)", ds.CachedAt.Format("2006-01-02 15:04:05"))
			return ds, nil
		}
		log.Printf("Error reading cache, fetching fresh data: %v", err)
	}

	ds, err := fetch()
	if err != nil {
		return models.Dataset{}, err
	}

	if err := d.Save(ds); err != nil {
		log.Printf("Warning: could not save cache: %v", err)
	}

	return ds, nil
}

func (d *Dataset) read() (models.Dataset, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return models.Dataset{}, err
	}

	var f datasetFile
	if err := json.Unmarshal(data, &f); err != nil {
		return models.Dataset{}, fmt.Errorf("parsing cache file: %w", err)
	}

	cachedAt, err := time.Parse(time.RFC3339, f.CachedAt)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("parsing cache timestamp %q: %w", f.CachedAt, err)
	}

	return models.Dataset{CachedAt: cachedAt, Stops: f.BusStops}, nil
}
