package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ryantanhw/sgbus/internal/datamall"
	"github.com/ryantanhw/sgbus/internal/models"
)

func displayStopDetails(stop models.BusStop, found bool) {
	if !found {
		fmt.Println("\nBus stop not found.")
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Println("\n" + rule)
	fmt.Println("Bus Stop Details")
	fmt.Println(rule)
	fmt.Printf("Code:        %s\n", stop.Code)
	fmt.Printf("Description: %s\n", stop.Description)
	fmt.Printf("Road Name:   %s\n", stop.RoadName)
	fmt.Printf("Latitude:    %g\n", float64(stop.Latitude))
	fmt.Printf("Longitude:   %g\n", float64(stop.Longitude))
	fmt.Println(rule)
}

func displayRoadResults(road string, matches []models.BusStop) {
	if len(matches) == 0 {
		fmt.Printf("\nNo bus stops found on %q.\n", road)
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Println("\n" + rule)
	fmt.Printf("Bus Stops on %q (%d found)\n", road, len(matches))
	fmt.Println(rule)
	fmt.Printf("%-8s %-50s %-20s\n", "Code", "Description", "Road Name")
	fmt.Println(strings.Repeat("-", 80))

	for _, stop := range matches {
		fmt.Printf("%-8s %-50s %-20s\n", stop.Code, truncate(stop.Description, 49), truncate(stop.RoadName, 19))
	}

	fmt.Println(rule)
	fmt.Printf("\nTotal: %d bus stops found\n", len(matches))
}

func displayNearbyStops(nearby []models.NearbyStop) {
	if len(nearby) == 0 {
		fmt.Println("\nNo bus stops found in the specified area.")
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Println("\n" + rule)
	fmt.Printf("%-8s %-25s %-30s %-12s\n", "Code", "Road Name", "Description", "Distance (m)")
	fmt.Println(rule)

	for _, stop := range nearby {
		fmt.Printf("%-8s %-25s %-30s %-12d\n",
			stop.Code, truncate(stop.RoadName, 24), truncate(stop.Description, 29), stop.DistanceMeters)
	}

	fmt.Println(rule)
	fmt.Printf("\nTotal: %d bus stops found\n", len(nearby))
}

func displayArrivals(header string, info datamall.ArrivalInfo) {
	if len(info.Services) == 0 {
		fmt.Printf("\nNo buses currently serving bus stop %s\n", info.BusStopCode)
		return
	}

	rule := strings.Repeat("=", 90)
	fmt.Println("\n" + rule)
	fmt.Println(header)
	fmt.Println(rule)
	fmt.Printf("%-8s %-12s %-18s %-12s %-12s\n", "Bus", "Next Bus", "Load", "2nd Bus", "3rd Bus")
	fmt.Println(strings.Repeat("-", 90))

	now := time.Now()
	for _, svc := range info.Services {
		fmt.Printf("%-8s %-12s %-18s %-12s %-12s\n",
			svc.ServiceNo,
			formatArrival(svc.NextBus, now),
			loadLabel(svc.NextBus.Load),
			formatArrival(svc.NextBus2, now),
			formatArrival(svc.NextBus3, now))
	}

	fmt.Println(rule)
	fmt.Printf("\nTotal: %d bus services\n", len(info.Services))
	fmt.Println("Legend: Seats Available | Standing Available | Limited Standing")
}

func formatArrival(bus datamall.NextBus, now time.Time) string {
	mins, ok := bus.MinutesUntil(now)
	if !ok {
		return "N/A"
	}
	if mins < 1 {
		return "Arriving"
	}
	return fmt.Sprintf("%d min", mins)
}

// loadLabel translates DataMall load codes into readable labels
func loadLabel(load string) string {
	switch load {
	case "SEA":
		return "Seats"
	case "SDA":
		return "Standing"
	case "LSD":
		return "Limited"
	case "":
		return "N/A"
	}
	return load
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
