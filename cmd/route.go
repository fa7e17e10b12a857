package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cafe-scout/internal/export"
	"github.com/sells-group/cafe-scout/internal/route"
)

var routeFrom string
var routeMode string
var routeGeoJSONOut string

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Optimize the visit order over all stores and report stats",
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
		if len(stores) == 0 {
			return eris.New("no stores to route; add some with 'stores add'")
		}

		loc, err := resolveOrigin(ctx, e.Geocoder, routeFrom)
		if err != nil {
			return err
		}

		mode := route.Mode(routeMode)
		switch mode {
		case route.ModeWalking, route.ModeTransit, route.ModeMixed:
		default:
			return eris.Errorf("unknown mode %q (walking, transit, mixed)", routeMode)
		}

		ordered := route.Optimize(loc.Coordinates, stores)
		stats := route.NewCalculator(e.Estimator).Stats(loc.Coordinates, ordered, mode)

		if loc.DisplayName != "" {
			fmt.Printf("from %s\n", loc.DisplayName)
		}
		for i, st := range ordered {
			fmt.Printf("%2d. %-30s (%.4f, %.4f)\n",
				i+1, st.Name, st.Coordinates.Lat, st.Coordinates.Lng)
		}
		if stats != nil {
			fmt.Printf("\n%.2f mi, %.0f min, $%.2f over %d stop(s)\n",
				stats.TotalDistanceMiles, stats.TotalTimeMinutes, stats.TotalCost, stats.StopCount)
		}

		if routeGeoJSONOut != "" {
			out, err := export.RouteGeoJSON(loc.Coordinates, ordered)
			if err != nil {
				return err
			}
			if err := os.WriteFile(routeGeoJSONOut, out, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", routeGeoJSONOut)
			}
			fmt.Printf("wrote %s\n", routeGeoJSONOut)
		}

		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "origin: lat,lng or an address (required)")
	routeCmd.Flags().StringVar(&routeMode, "mode", string(route.ModeMixed), "travel mode: walking, transit, or mixed")
	routeCmd.Flags().StringVar(&routeGeoJSONOut, "geojson", "", "write the ordered route as GeoJSON to this file")
	_ = routeCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(routeCmd)
}
