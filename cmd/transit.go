package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cafe-scout/internal/transit"
)

var transitCmd = &cobra.Command{
	Use:   "transit",
	Short: "Subway estimates against the station catalog",
}

var transitEstimateFrom string
var transitEstimateTo string

var transitEstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a subway leg between two points",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		from, err := resolveOrigin(ctx, e.Geocoder, transitEstimateFrom)
		if err != nil {
			return err
		}
		to, err := resolveOrigin(ctx, e.Geocoder, transitEstimateTo)
		if err != nil {
			return err
		}

		est, err := e.Estimator.Estimate(from.Coordinates, to.Coordinates)
		if err != nil {
			if eris.Is(err, transit.ErrUnavailable) {
				fmt.Println("no transit route available; walk instead")
				return nil
			}
			return err
		}

		for _, seg := range est.Segments {
			fmt.Printf("  %-8s %-55s %5.1f min\n", seg.Kind, seg.Text, seg.Minutes)
		}
		fmt.Printf("total %.1f min, $%.2f\n", est.TotalTimeMinutes, est.Cost)
		return nil
	},
}

var transitStationsAt string
var transitStationsRadius float64
var transitStationsLimit int

var transitStationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List stations near a point",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		at, err := resolveOrigin(ctx, e.Geocoder, transitStationsAt)
		if err != nil {
			return err
		}

		nearby := e.Catalog.Nearby(at.Coordinates, transitStationsRadius, transitStationsLimit)
		if len(nearby) == 0 {
			fmt.Printf("no stations within %.2f mi\n", transitStationsRadius)
			return nil
		}
		for _, sd := range nearby {
			fmt.Printf("  %-28s %.2f mi  lines %v\n", sd.Station.Name, sd.Miles, sd.Station.Lines)
		}
		return nil
	},
}

func init() {
	transitEstimateCmd.Flags().StringVar(&transitEstimateFrom, "from", "", "origin: lat,lng or an address (required)")
	transitEstimateCmd.Flags().StringVar(&transitEstimateTo, "to", "", "destination: lat,lng or an address (required)")
	_ = transitEstimateCmd.MarkFlagRequired("from")
	_ = transitEstimateCmd.MarkFlagRequired("to")

	transitStationsCmd.Flags().StringVar(&transitStationsAt, "at", "", "query point: lat,lng or an address (required)")
	transitStationsCmd.Flags().Float64Var(&transitStationsRadius, "radius", transit.AccessRadiusMiles, "search radius in miles")
	transitStationsCmd.Flags().IntVar(&transitStationsLimit, "limit", 5, "maximum stations to list")
	_ = transitStationsCmd.MarkFlagRequired("at")

	transitCmd.AddCommand(transitEstimateCmd, transitStationsCmd)
	rootCmd.AddCommand(transitCmd)
}
