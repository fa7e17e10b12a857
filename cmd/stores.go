package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cafe-scout/internal/geo"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Manage candidate store locations",
}

var storesAddName string
var storesAddAt string

var storesAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Add a candidate store by address or coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		address := args[0]
		var coord geo.Coordinate

		if storesAddAt != "" {
			c, ok := parseLatLng(storesAddAt)
			if !ok {
				return eris.Errorf("--at %q is not a lat,lng pair", storesAddAt)
			}
			coord = c
		} else {
			res, err := e.Geocoder.Geocode(ctx, address)
			if err != nil {
				return eris.Wrapf(err, "geocode %q", address)
			}
			if !res.Matched {
				return eris.Errorf("address %q did not geocode", address)
			}
			coord = geo.Coordinate{Lat: res.Latitude, Lng: res.Longitude}
		}

		if err := geo.Validate(coord); err != nil {
			return err
		}

		name := storesAddName
		if name == "" {
			name = address
		}

		st, err := e.Store.AddStore(ctx, name, address, coord)
		if err != nil {
			return err
		}

		zap.L().Info("store added",
			zap.String("id", st.ID),
			zap.Float64("lat", st.Coordinates.Lat),
			zap.Float64("lng", st.Coordinates.Lng),
		)
		return printJSON(st)
	},
}

var storesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidate stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		stores, err := e.Store.ListStores(ctx)
		if err != nil {
			return err
		}

		for _, st := range stores {
			fmt.Printf("%s  %-30s  (%.4f, %.4f)  %s\n",
				st.ID, st.Name, st.Coordinates.Lat, st.Coordinates.Lng, st.Address)
		}
		fmt.Printf("%d store(s)\n", len(stores))
		return nil
	},
}

var storesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a candidate store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Store.RemoveStore(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

func init() {
	storesAddCmd.Flags().StringVar(&storesAddName, "name", "", "display name (defaults to the address)")
	storesAddCmd.Flags().StringVar(&storesAddAt, "at", "", "explicit lat,lng (skips geocoding)")

	storesCmd.AddCommand(storesAddCmd, storesListCmd, storesRmCmd)
	rootCmd.AddCommand(storesCmd)
}
