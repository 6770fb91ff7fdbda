package main

import (
	"log"

	"github.com/spf13/cobra"
)

var roadCmd = &cobra.Command{
	Use:   "road <name>",
	Short: "Search for bus stops by road name",
	Long:  `Searches the stop list for roads whose name contains the given text, case-insensitively.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRoad,
}

func init() {
	rootCmd.AddCommand(roadCmd)
}

func runRoad(cmd *cobra.Command, args []string) error {
	road := args[0]
	log.Printf("Searching for bus stops on: %s", road)

	matches, err := stopSvc.SearchByRoad(cmd.Context(), road, !noCache)
	if err != nil {
		return err
	}

	displayRoadResults(road, matches)
	return nil
}
