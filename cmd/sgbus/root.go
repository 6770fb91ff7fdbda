package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ryantanhw/sgbus/internal/cache"
	"github.com/ryantanhw/sgbus/internal/config"
	"github.com/ryantanhw/sgbus/internal/datamall"
	"github.com/ryantanhw/sgbus/internal/stops"
)

var (
	cfg     *config.Config
	client  *datamall.Client
	stopSvc *stops.Service

	noCache bool
)

var rootCmd = &cobra.Command{
	Use:   "sgbus",
	Short: "Find Singapore bus stops and check real-time arrivals",
	Long: `sgbus queries the LTA DataMall API for bus stop metadata and
real-time bus arrivals. The full bus-stop list is cached locally for 24
hours so searches do not hit the network every time.

An LTA DataMall API key is required; set LTA_API_KEY in the environment
or in a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
		log.Printf("Using API key: %s", cfg.MaskedAPIKey())

		client = datamall.New(cfg)
		stopSvc = stops.NewService(cache.NewDataset(cfg.CachePath, cfg.CacheTTL), client)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false,
		"force fetching fresh data from the API instead of using the cache")
}
