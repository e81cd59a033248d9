package main

import (
	"fmt"
	"net/url"
	"os"
	"time"

	httpclient "github.com/piresc/antar/internal/pkg/http"
	jwtpkg "github.com/piresc/antar/internal/pkg/jwt"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// remoteFlags are shared by commands that call a running dispatch service
type remoteFlags struct {
	server  string
	apiKey  string
	timeout time.Duration
}

func (f *remoteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.server, "server", "http://localhost:9990", "dispatch service base URL")
	cmd.Flags().StringVar(&f.apiKey, "api-key", os.Getenv("ANTAR_API_KEY"), "internal API key (defaults to $ANTAR_API_KEY)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Second, "request timeout")
}

func (f *remoteFlags) client() *httpclient.Client {
	return httpclient.NewClient(f.server, f.apiKey, f.timeout)
}

func newQuoteCmd() *cobra.Command {
	var rf remoteFlags
	var restaurantID, restaurant, destination string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Ask a running dispatch service for a fee quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseLatLng(restaurant)
			if err != nil {
				return err
			}
			d, err := parseLatLng(destination)
			if err != nil {
				return err
			}

			body := map[string]interface{}{
				"restaurant_id":       restaurantID,
				"restaurant_location": r,
				"destination":         d,
			}
			var result models.FeeResult
			if err := rf.client().PostJSON(cmd.Context(), "/v1/fees/quote", body, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&restaurantID, "restaurant-id", "", "restaurant id")
	cmd.Flags().StringVar(&restaurant, "restaurant", "", "restaurant position as lat,lng")
	cmd.Flags().StringVar(&destination, "destination", "", "destination as lat,lng")
	_ = cmd.MarkFlagRequired("restaurant-id")
	_ = cmd.MarkFlagRequired("restaurant")
	_ = cmd.MarkFlagRequired("destination")
	return cmd
}

func newAssignCmd() *cobra.Command {
	var rf remoteFlags

	cmd := &cobra.Command{
		Use:   "assign <order-id>",
		Short: "Trigger driver assignment for an order through the internal API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rf.apiKey == "" {
				return fmt.Errorf("an internal API key is required")
			}
			var result models.AssignmentResult
			endpoint := "/internal/orders/" + url.PathEscape(args[0]) + "/assign"
			if err := rf.client().PostJSON(cmd.Context(), endpoint, nil, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	rf.register(cmd)
	return cmd
}

func newTokenCmd(c *cli) *cobra.Command {
	var driverID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a driver token signed with the configured JWT secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, expiresAt, err := jwtpkg.GenerateToken(driverID, c.cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"token":      token,
				"expires_at": expiresAt,
			})
		},
	}
	cmd.Flags().StringVar(&driverID, "driver-id", "", "driver the token is issued for")
	_ = cmd.MarkFlagRequired("driver-id")
	return cmd
}

func newHashKeyCmd() *cobra.Command {
	var caller string

	cmd := &cobra.Command{
		Use:   "hash-key <api-key>",
		Short: "Print an API_KEY_HASHES entry for an internal caller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", caller, hash)
			return err
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "order-service", "caller name the key belongs to")
	return cmd
}
