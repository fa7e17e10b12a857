package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/cafe-scout/internal/traffic"
)

var trafficHoursWeekend bool

var trafficCmd = &cobra.Command{
	Use:   "traffic",
	Short: "Foot-traffic reference data",
}

var trafficHoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Print the hourly traffic multiplier profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, h := range traffic.HourlyDistribution(trafficHoursWeekend) {
			fmt.Printf("  %-6s %.2f  %s\n", h.Hour, h.Multiplier, h.Label)
		}
		return nil
	},
}

func init() {
	trafficHoursCmd.Flags().BoolVar(&trafficHoursWeekend, "weekend", false, "use the weekend profile")
	trafficCmd.AddCommand(trafficHoursCmd)
	rootCmd.AddCommand(trafficCmd)
}
