package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ryantanhw/sgbus/internal/geo"
	"github.com/ryantanhw/sgbus/internal/location"
	"github.com/ryantanhw/sgbus/internal/models"
)

var (
	nearbyLat    float64
	nearbyLon    float64
	nearbyRadius float64
	nearbyGPS    bool
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Find bus stops near a location",
	Long: `Finds bus stops within a radius of a location. Coordinates can be
given with --lat/--lon; otherwise the location is detected from your IP
address (--gps tries multiple geolocation services for a better fix).`,
	Args: cobra.NoArgs,
	RunE: runNearby,
}

func init() {
	nearbyCmd.Flags().Float64Var(&nearbyLat, "lat", 0, "latitude of the location")
	nearbyCmd.Flags().Float64Var(&nearbyLon, "lon", 0, "longitude of the location")
	nearbyCmd.Flags().Float64Var(&nearbyRadius, "radius", 0, "search radius in kilometers (default 0.5)")
	nearbyCmd.Flags().BoolVar(&nearbyGPS, "gps", false, "try multiple geolocation providers for better accuracy")
	nearbyCmd.MarkFlagsRequiredTogether("lat", "lon")
	rootCmd.AddCommand(nearbyCmd)
}

func runNearby(cmd *cobra.Command, args []string) error {
	pos := resolvePosition(cmd)

	radius := nearbyRadius
	if radius <= 0 {
		radius = cfg.DefaultRadiusKm
	}

	nearby, err := stopSvc.FindNearby(cmd.Context(), pos.Lat, pos.Lon, radius, !noCache)
	if err != nil {
		return err
	}

	displayNearbyStops(nearby)
	return nil
}

func resolvePosition(cmd *cobra.Command) models.Position {
	if cmd.Flags().Changed("lat") {
		if !geo.ValidCoordinates(nearbyLat, nearbyLon) {
			log.Printf("Coordinates (%.4f, %.4f) out of range, using default location", nearbyLat, nearbyLon)
			return location.DefaultPosition
		}
		log.Printf("Using provided coordinates: (%.4f, %.4f)", nearbyLat, nearbyLon)
		return models.Position{Lat: nearbyLat, Lon: nearbyLon}
	}

	var provider location.Provider
	if nearbyGPS {
		provider = location.NewMulti(
			location.NewIPAPI(cfg.LocationTimeout),
			location.NewIPAPICo(cfg.LocationTimeout),
		)
	} else {
		provider = location.NewIPAPI(cfg.LocationTimeout)
	}

	log.Print("Attempting to detect your location...")
	pos, err := provider.Locate(cmd.Context())
	if err != nil {
		log.Printf("Could not detect location: %v", err)
		log.Print("Using default location: Marina Bay Sands")
		return location.DefaultPosition
	}
	return pos
}
