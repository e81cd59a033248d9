package main

import (
	"fmt"
	"time"

	"github.com/piresc/antar/internal/pkg/config"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/piresc/antar/internal/utils"
	"github.com/piresc/antar/services/dispatch/usecase"
	"github.com/spf13/cobra"
)

func newDistanceCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Great-circle distance in kilometres between two points",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseLatLng(from)
			if err != nil {
				return err
			}
			b, err := parseLatLng(to)
			if err != nil {
				return err
			}
			km, err := utils.Distance(a, b)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.4f km\n", km)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "origin as lat,lng")
	cmd.Flags().StringVar(&to, "to", "", "destination as lat,lng")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newFeeCmd(c *cli) *cobra.Command {
	var restaurant, destination, zonesFile, restaurantID string

	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Resolve the delivery fee and zone offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseLatLng(restaurant)
			if err != nil {
				return err
			}
			d, err := parseLatLng(destination)
			if err != nil {
				return err
			}

			var zones []*models.DeliveryZone
			if zonesFile != "" {
				all, err := config.LoadZonesFile(zonesFile)
				if err != nil {
					return err
				}
				for _, z := range all {
					if restaurantID == "" || z.RestaurantID == restaurantID {
						zones = append(zones, z)
					}
				}
			}

			dc := c.cfg.Dispatch
			result, err := usecase.ResolveZoneFee(r, d, zones, usecase.FeeDefaults{
				BaseFee:          dc.DefaultBaseFee,
				PerKmFee:         dc.DefaultPerKmFee,
				EstimatedMinutes: dc.DefaultMinutes,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&restaurant, "restaurant", "", "restaurant position as lat,lng")
	cmd.Flags().StringVar(&destination, "destination", "", "destination as lat,lng")
	cmd.Flags().StringVar(&zonesFile, "zones", "", "zones file (YAML or JSON)")
	cmd.Flags().StringVar(&restaurantID, "restaurant-id", "", "only consider zones of this restaurant")
	_ = cmd.MarkFlagRequired("restaurant")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func newEtaCmd(c *cli) *cobra.Command {
	var driverPos, destination, at string

	cmd := &cobra.Command{
		Use:   "eta",
		Short: "Estimate a driver's arrival time offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseLatLng(driverPos)
			if err != nil {
				return err
			}
			d, err := parseLatLng(destination)
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				now, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
			}

			dc := c.cfg.Dispatch
			driver := &models.Driver{ID: "cli", Location: p, LocationUpdatedAt: now}
			result, err := usecase.ComputeEta(driver, d, now, usecase.EtaParams{
				BaselineSpeedKmh: dc.BaselineSpeedKmh,
				RushFactor:       dc.RushFactor,
				RushWindows:      dc.RushWindows,
				Location:         config.LoadTimeZone(dc.TimeZone),
				FreshnessWindow:  dc.FreshnessWindow,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&driverPos, "driver", "", "driver position as lat,lng")
	cmd.Flags().StringVar(&destination, "destination", "", "destination as lat,lng")
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this RFC3339 time instead of now")
	_ = cmd.MarkFlagRequired("driver")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}
