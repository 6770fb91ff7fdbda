package main

import (
	"log"

	"github.com/spf13/cobra"
)

var arrivalsService string

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals <stop-code>",
	Short: "Show real-time bus arrivals at a stop",
	Args:  cobra.ExactArgs(1),
	RunE:  runArrivals,
}

func init() {
	arrivalsCmd.Flags().StringVar(&arrivalsService, "service", "", "only show arrivals for this bus service number")
	rootCmd.AddCommand(arrivalsCmd)
}

func runArrivals(cmd *cobra.Command, args []string) error {
	code := args[0]
	log.Printf("Fetching bus arrivals for bus stop: %s", code)

	info, err := client.BusArrival(cmd.Context(), code, arrivalsService)
	if err != nil {
		return err
	}

	// Stop details enrich the header; failure to get them is not fatal.
	stop, found, err := stopSvc.FindByCode(cmd.Context(), code, !noCache)
	if err != nil {
		log.Printf("Could not fetch bus stop details: %v", err)
		found = false
	}

	header := "Bus Stop: " + code
	if found {
		header = "Bus Stop: " + code + " - " + stop.Description + " (" + stop.RoadName + ")"
	}

	displayArrivals(header, info)
	return nil
}
