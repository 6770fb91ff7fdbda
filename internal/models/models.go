// Package models defines shared data types
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Coordinate is a latitude or longitude that decodes from either a JSON
// number or a numeric string. DataMall sends strings on some endpoints;
// the cache file stores numbers.
type Coordinate float64

// UnmarshalJSON accepts both `1.3` and `"1.3"`.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Coordinate(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coordinate is neither number nor string: %s", data)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing coordinate %q: %w", s, err)
	}
	*c = Coordinate(n)
	return nil
}

// MarshalJSON always writes a JSON number.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// BusStop represents one transit stop from the DataMall dataset
type BusStop struct {
	Code        string     `json:"BusStopCode"`
	RoadName    string     `json:"RoadName"`
	Description string     `json:"Description"`
	Latitude    Coordinate `json:"Latitude"`
	Longitude   Coordinate `json:"Longitude"`
}

// Dataset is the full bus-stop list plus the time it was fetched.
// It is always replaced wholesale, never patched.
type Dataset struct {
	CachedAt time.Time
	Stops    []BusStop
}

// NearbyStop is a BusStop annotated with its distance from a query point
type NearbyStop struct {
	BusStop
	DistanceMeters int `json:"distance_meters"`
}

// Position is a point on Earth in decimal degrees
type Position struct {
	Lat float64
	Lon float64
}
