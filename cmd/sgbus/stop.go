package main

import (
	"log"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <stop-code>",
	Short: "Show details for a bus stop by its code",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	code := args[0]
	log.Printf("Searching for bus stop: %s", code)

	stop, found, err := stopSvc.FindByCode(cmd.Context(), code, !noCache)
	if err != nil {
		return err
	}

	displayStopDetails(stop, found)
	return nil
}
