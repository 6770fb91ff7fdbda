// Package datamall is a client for the Singapore LTA DataMall API.
package datamall

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ryantanhw/sgbus/internal/cache"
	"github.com/ryantanhw/sgbus/internal/config"
	"github.com/ryantanhw/sgbus/internal/models"
)

// DataMall authenticates with an account key header, but the two
// endpoints disagree on its casing. Each endpoint gets the exact header
// name it documents; the names are not interchangeable.
const (
	busStopsHeader = "accountKey" // /BusStops
	arrivalHeader  = "AccountKey" // /v3/BusArrival
)

// FetchError is returned when a DataMall request fails. Status is zero
// when the failure happened before an HTTP response arrived.
type FetchError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("datamall %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("datamall %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to DataMall. The stop-list fetch is paginated and slow,
// so it gets a generous per-request timeout; arrival lookups use a
// short one and are memoized because predictions go stale in seconds.
type Client struct {
	apiKey        string
	baseURL       string
	fetchClient   *http.Client
	arrivalClient *http.Client
	arrivalCache  *cache.Memory[ArrivalInfo]
}

// New creates a DataMall client from the application configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		fetchClient:   &http.Client{Timeout: cfg.FetchTimeout},
		arrivalClient: &http.Client{Timeout: cfg.ArrivalTimeout},
		arrivalCache:  cache.NewMemory[ArrivalInfo](cfg.ArrivalCacheTTL),
	}
}

type busStopsPage struct {
	Value []models.BusStop `json:"value"`
}

// FetchAllBusStops retrieves the complete bus-stop list, following the
// $skip pagination until an empty page. Any page failure discards the
// whole fetch; no partial dataset is ever returned.
func (c *Client) FetchAllBusStops(ctx context.Context) (models.Dataset, error) {
	endpoint := c.baseURL + "/BusStops"

	var all []models.BusStop
	skip := 0

	log.Print("Fetching bus stops from LTA DataMall API...")

	for {
		page, err := c.fetchBusStopsPage(ctx, endpoint, skip)
		if err != nil {
			return models.Dataset{}, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		skip += len(page)
		log.Printf("Fetched %d bus stops so far...", len(all))
	}

	log.Printf("Total bus stops fetched: %d", len(all))
	return models.Dataset{Stops: all}, nil
}

func (c *Client) fetchBusStopsPage(ctx context.Context, endpoint string, skip int) ([]models.BusStop, error) {
	params := url.Values{}
	params.Set("$skip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Endpoint: "/BusStops", Err: err}
	}
	req.Header.Set(busStopsHeader, c.apiKey)

	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: "/BusStops", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Endpoint: "/BusStops", Status: resp.StatusCode}
	}

	var page busStopsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &FetchError{Endpoint: "/BusStops", Err: fmt.Errorf("parsing response: %w", err)}
	}

	return page.Value, nil
}
