package traffic

import (
	"fmt"
	"time"
)

// band is one hour-of-day bucket of the traffic multiplier table.
type band struct {
	startHour, endHour int // [start, end)
	weekday, weekend   float64
}

// trafficBands is the fixed time-of-day multiplier table, values in [0, 1].
var trafficBands = []band{
	{0, 6, 0.2, 0.1},    // late night
	{6, 9, 0.8, 0.3},    // morning rush
	{9, 12, 0.6, 0.7},   // mid-morning
	{12, 14, 0.9, 0.9},  // lunch rush
	{14, 17, 0.7, 0.95}, // afternoon / weekend peak
	{17, 20, 0.9, 0.8},  // evening rush
	{20, 24, 0.5, 0.6},  // evening
}

// defaultMultiplier is used if an hour somehow matches no band.
const defaultMultiplier = 0.5

// Multiplier returns the traffic multiplier for the given instant.
func Multiplier(t time.Time) float64 {
	hour := t.Hour()
	weekend := t.Weekday() == time.Saturday || t.Weekday() == time.Sunday

	for _, b := range trafficBands {
		if hour >= b.startHour && hour < b.endHour {
			if weekend {
				return b.weekend
			}
			return b.weekday
		}
	}
	return defaultMultiplier
}

// HourTraffic is one entry of an hourly traffic profile.
type HourTraffic struct {
	Hour       string  `json:"hour"`
	Multiplier float64 `json:"multiplier"`
	Label      string  `json:"label"`
}

// HourlyDistribution expands the multiplier table into a 24-entry profile
// for a weekday or weekend day.
func HourlyDistribution(weekend bool) []HourTraffic {
	out := make([]HourTraffic, 0, 24)
	for hour := 0; hour < 24; hour++ {
		m := defaultMultiplier
		for _, b := range trafficBands {
			if hour >= b.startHour && hour < b.endHour {
				if weekend {
					m = b.weekend
				} else {
					m = b.weekday
				}
				break
			}
		}
		out = append(out, HourTraffic{
			Hour:       fmt.Sprintf("%d:00", hour),
			Multiplier: m,
			Label:      hourLabel(hour),
		})
	}
	return out
}

func hourLabel(hour int) string {
	switch {
	case hour >= 6 && hour < 9:
		return "morning rush"
	case hour >= 12 && hour < 14:
		return "lunch"
	case hour >= 17 && hour < 20:
		return "evening rush"
	case hour >= 20:
		return "evening"
	case hour < 6:
		return "late night"
	default:
		return "daytime"
	}
}
