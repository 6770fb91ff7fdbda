package datamall

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

// NextBus is one predicted arrival for a service.
type NextBus struct {
	EstimatedArrival string `json:"EstimatedArrival"`
	Load             string `json:"Load"`    // SEA, SDA, LSD
	Feature          string `json:"Feature"` // WAB for wheelchair access
	Type             string `json:"Type"`    // SD, DD, BD
}

// Service carries the next three predicted buses for one route.
type Service struct {
	ServiceNo string  `json:"ServiceNo"`
	Operator  string  `json:"Operator"`
	NextBus   NextBus `json:"NextBus"`
	NextBus2  NextBus `json:"NextBus2"`
	NextBus3  NextBus `json:"NextBus3"`
}

// ArrivalInfo is the arrival prediction set for one stop.
type ArrivalInfo struct {
	BusStopCode string    `json:"BusStopCode"`
	Services    []Service `json:"Services"`
}

// MinutesUntil parses the estimated arrival timestamp and returns whole
// minutes from now, with ok=false when no prediction is available.
func (n NextBus) MinutesUntil(now time.Time) (int, bool) {
	if n.EstimatedArrival == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, n.EstimatedArrival)
	if err != nil {
		log.Printf("Ignoring unparseable arrival time %q: %v", n.EstimatedArrival, err)
		return 0, false
	}
	return int(t.Sub(now).Minutes()), true
}

// BusArrival fetches arrival predictions for a stop, optionally limited
// to one service number. Results are memoized for a short TTL.
func (c *Client) BusArrival(ctx context.Context, stopCode, serviceNo string) (ArrivalInfo, error) {
	cacheKey := stopCode + "|" + serviceNo
	if cached, ok := c.arrivalCache.Get(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("BusStopCode", stopCode)
	if serviceNo != "" {
		params.Set("ServiceNo", serviceNo)
	}

	endpoint := c.baseURL + "/v3/BusArrival"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return ArrivalInfo{}, &FetchError{Endpoint: "/v3/BusArrival", Err: err}
	}
	req.Header.Set(arrivalHeader, c.apiKey)

	resp, err := c.arrivalClient.Do(req)
	if err != nil {
		return ArrivalInfo{}, &FetchError{Endpoint: "/v3/BusArrival", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ArrivalInfo{}, &FetchError{Endpoint: "/v3/BusArrival", Status: resp.StatusCode}
	}

	var info ArrivalInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ArrivalInfo{}, &FetchError{Endpoint: "/v3/BusArrival", Err: err}
	}

	c.arrivalCache.Set(cacheKey, info)
	return info, nil
}
