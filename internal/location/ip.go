package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ryantanhw/sgbus/internal/models"
)

// IPAPI geolocates by IP address via ip-api.com. Approximate; may be
// wrong behind VPNs or corporate networks.
type IPAPI struct {
	client   *http.Client
	endpoint string
}

// NewIPAPI creates the ip-api.com provider.
func NewIPAPI(timeout time.Duration) *IPAPI {
	return &IPAPI{
		client:   &http.Client{Timeout: timeout},
		endpoint: "http://ip-api.com/json/",
	}
}

func (p *IPAPI) Name() string { return "ip-api" }

func (p *IPAPI) Locate(ctx context.Context) (models.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return models.Position{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return models.Position{}, fmt.Errorf("fetching location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Position{}, fmt.Errorf("ip-api returned status %d", resp.StatusCode)
	}

	var result struct {
		Status  string  `json:"status"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		City    string  `json:"city"`
		Country string  `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Position{}, fmt.Errorf("parsing location response: %w", err)
	}
	if result.Status != "success" {
		return models.Position{}, fmt.Errorf("ip-api lookup failed with status %q", result.Status)
	}

	log.Printf("Location detected: %s, %s (%.4f, %.4f)", result.City, result.Country, result.Lat, result.Lon)
	return models.Position{Lat: result.Lat, Lon: result.Lon}, nil
}

// IPAPICo geolocates via ipapi.co, used as a second opinion in the
// advanced provider chain.
type IPAPICo struct {
	client   *http.Client
	endpoint string
}

// NewIPAPICo creates the ipapi.co provider.
func NewIPAPICo(timeout time.Duration) *IPAPICo {
	return &IPAPICo{
		client:   &http.Client{Timeout: timeout},
		endpoint: "https://ipapi.co/json/",
	}
}

func (p *IPAPICo) Name() string { return "ipapi.co" }

func (p *IPAPICo) Locate(ctx context.Context) (models.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return models.Position{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return models.Position{}, fmt.Errorf("fetching location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Position{}, fmt.Errorf("ipapi.co returned status %d", resp.StatusCode)
	}

	var result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		City      string  `json:"city"`
		Country   string  `json:"country_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Position{}, fmt.Errorf("parsing location response: %w", err)
	}
	if result.Latitude == 0 && result.Longitude == 0 {
		return models.Position{}, fmt.Errorf("ipapi.co returned no coordinates")
	}

	log.Printf("Location detected: %s, %s (%.4f, %.4f)", result.City, result.Country, result.Latitude, result.Longitude)
	return models.Position{Lat: result.Latitude, Lon: result.Longitude}, nil
}
