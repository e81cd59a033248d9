package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piresc/antar/internal/pkg/config"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand
type cli struct {
	envFile string
	cfg     *models.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "antarctl",
		Short:         "Operate and debug the antar dispatch service",
		Long:          `antarctl prices deliveries, estimates arrival times and talks to a running dispatch service using the same rules the service applies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.cfg = config.InitConfig(c.envFile)
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env", "config/dispatch.env", "env file read when APP_ENV is local")

	root.AddCommand(
		newDistanceCmd(),
		newFeeCmd(c),
		newEtaCmd(c),
		newQuoteCmd(),
		newAssignCmd(),
		newTokenCmd(c),
		newHashKeyCmd(),
	)
	return root
}

// parseLatLng parses "lat,lng"
func parseLatLng(raw string) (models.Location, error) {
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return models.Location{}, fmt.Errorf("expected lat,lng but got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid latitude %q: %w", latRaw, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("invalid longitude %q: %w", lngRaw, err)
	}
	return models.Location{Latitude: lat, Longitude: lng}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
