package cache_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ryantanhw/sgbus/internal/cache"
	"github.com/ryantanhw/sgbus/internal/models"
)

func sampleDataset() models.Dataset {
	return models.Dataset{
		Stops: []models.BusStop{
			{Code: "13011", RoadName: "Orchard Rd", Description: "Opp Orchard Stn", Latitude: 1.3000, Longitude: 103.8300},
			{Code: "13019", RoadName: "Somerset Rd", Description: "Somerset Stn", Latitude: 1.3010, Longitude: 103.8350},
		},
	}
}

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "bus_stops_cache.json")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dc := cache.NewDataset(cachePath(t), 24*time.Hour)
	want := sampleDataset()

	if err := dc.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := dc.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(got.Stops) != len(want.Stops) {
		t.Fatalf("stop count mismatch: got %d, want %d", len(got.Stops), len(want.Stops))
	}
	for i := range want.Stops {
		if got.Stops[i].Code != want.Stops[i].Code {
			t.Errorf("stop %d code mismatch: got %s, want %s", i, got.Stops[i].Code, want.Stops[i].Code)
		}
	}
	if got.CachedAt.IsZero() {
		t.Error("cached timestamp not persisted")
	}
}

func TestIsValidFreshCache(t *testing.T) {
	dc := cache.NewDataset(cachePath(t), 24*time.Hour)

	if err := dc.Save(sampleDataset()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !dc.IsValid() {
		t.Error("minutes-old cache should be valid")
	}
}

func writeCacheFile(t *testing.T, path string, cachedAt time.Time) {
	t.Helper()
	payload := map[string]any{
		"cachedAt":   cachedAt.Format(time.RFC3339),
		"totalStops": 1,
		"bus_stops": []map[string]any{
			{"BusStopCode": "13011", "RoadName": "Orchard Rd", "Description": "Opp Orchard Stn", "Latitude": 1.3, "Longitude": 103.83},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestIsValidExpiredCache(t *testing.T) {
	path := cachePath(t)
	writeCacheFile(t, path, time.Now().Add(-25*time.Hour))

	dc := cache.NewDataset(path, 24*time.Hour)
	if dc.IsValid() {
		t.Error("25h-old cache should be expired")
	}
}

func TestIsValidMissingFile(t *testing.T) {
	dc := cache.NewDataset(cachePath(t), 24*time.Hour)
	if dc.IsValid() {
		t.Error("missing cache file should not be valid")
	}
}

func TestIsValidCorruptFile(t *testing.T) {
	path := cachePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	dc := cache.NewDataset(path, 24*time.Hour)
	if dc.IsValid() {
		t.Error("corrupt cache file should not be valid")
	}
}

func TestLoadToleratesStringCoordinates(t *testing.T) {
	path := cachePath(t)
	file := `{"cachedAt":"` + time.Now().Format(time.RFC3339) + `","totalStops":1,` +
		`"bus_stops":[{"BusStopCode":"13011","RoadName":"Orchard Rd","Description":"Opp Orchard Stn",` +
		`"Latitude":"1.30","Longitude":"103.83"}]}`
	if err := os.WriteFile(path, []byte(file), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	dc := cache.NewDataset(path, 24*time.Hour)
	ds, err := dc.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if float64(ds.Stops[0].Latitude) != 1.30 || float64(ds.Stops[0].Longitude) != 103.83 {
		t.Errorf("string coordinates not decoded: %+v", ds.Stops[0])
	}
}

func TestGetOrFetchUsesValidCache(t *testing.T) {
	dc := cache.NewDataset(cachePath(t), 24*time.Hour)
	if err := dc.Save(sampleDataset()); err != nil {
		t.Fatalf("save: %v", err)
	}

	fetched := false
	ds, err := dc.GetOrFetch(true, func() (models.Dataset, error) {
		fetched = true
		return models.Dataset{}, nil
	})
	if err != nil {
		t.Fatalf("getOrFetch: %v", err)
	}
	if fetched {
		t.Error("fetch should not run when cache is valid")
	}
	if len(ds.Stops) != 2 {
		t.Errorf("expected cached dataset, got %d stops", len(ds.Stops))
	}
}

func TestGetOrFetchBypassesCacheWhenDisabled(t *testing.T) {
	dc := cache.NewDataset(cachePath(t), 24*time.Hour)
	if err := dc.Save(sampleDataset()); err != nil {
		t.Fatalf("save: %v", err)
	}

	fetched := false
	fresh := models.Dataset{Stops: []models.BusStop{{Code: "99009", RoadName: "New Rd"}}}
	ds, err := dc.GetOrFetch(false, func() (models.Dataset, error) {
		fetched = true
		return fresh, nil
	})
	if err != nil {
		t.Fatalf("getOrFetch: %v", err)
	}
	if !fetched {
		t.Error("fetch must always run when useCache is false")
	}
	if len(ds.Stops) != 1 || ds.Stops[0].Code != "99009" {
		t.Errorf("expected fresh dataset, got %+v", ds.Stops)
	}

	// The fresh result replaced the persisted cache
	reloaded, err := dc.Load()
	if err != nil {
		t.Fatalf("load after fetch: %v", err)
	}
	if len(reloaded.Stops) != 1 || reloaded.Stops[0].Code != "99009" {
		t.Errorf("fresh dataset not persisted: %+v", reloaded.Stops)
	}
}

func TestGetOrFetchPropagatesFetchError(t *testing.T) {
	path := cachePath(t)
	dc := cache.NewDataset(path, 24*time.Hour)

	fetchErr := errors.New("network down")
	_, err := dc.GetOrFetch(true, func() (models.Dataset, error) {
		return models.Dataset{}, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}

	// No partial cache was written
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed fetch must not leave a cache file behind")
	}
}
