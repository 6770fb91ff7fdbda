// Package location detects the user's position for proximity searches.
package location

import (
	"context"
	"errors"
	"log"

	"github.com/ryantanhw/sgbus/internal/models"
)

// DefaultPosition is used when no provider can determine a location.
// Marina Bay Sands, Singapore.
var DefaultPosition = models.Position{Lat: 1.2834, Lon: 103.8607}

// ErrNoLocation indicates that no provider could determine a position.
var ErrNoLocation = errors.New("could not determine location")

// Provider determines the user's current position. Which provider runs
// is a startup configuration choice, not a runtime discovery.
type Provider interface {
	Name() string
	Locate(ctx context.Context) (models.Position, error)
}

// Static is a provider that always returns a fixed position, used when
// the user supplies coordinates directly.
type Static models.Position

func (s Static) Name() string { return "static" }

func (s Static) Locate(_ context.Context) (models.Position, error) {
	return models.Position(s), nil
}

// Multi tries an ordered list of providers and returns the first
// position any of them produces.
type Multi struct {
	providers []Provider
}

// NewMulti creates a provider chain.
func NewMulti(providers ...Provider) *Multi {
	return &Multi{providers: providers}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Locate(ctx context.Context) (models.Position, error) {
	for _, p := range m.providers {
		log.Printf("Trying %s provider...", p.Name())
		pos, err := p.Locate(ctx)
		if err != nil {
			log.Printf("%s provider failed: %v", p.Name(), err)
			continue
		}
		return pos, nil
	}
	return models.Position{}, ErrNoLocation
}
