package transit

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// Fixed constants of the simplified transit model.
const (
	// AccessRadiusMiles is the maximum walking distance to a station for a
	// leg to be considered transit-reachable.
	AccessRadiusMiles = 0.5

	// FareUSD is the flat fare charged once per leg with any ride segment,
	// regardless of transfers.
	FareUSD = 2.90

	minutesPerStop         = 2.0
	boardingWaitMinutes    = 3.0
	transferPenaltyMinutes = 5.0

	// avgStopSpacingMiles approximates the ride's stop count from the
	// straight-line distance between the two stations.
	avgStopSpacingMiles = 0.5
)

// ErrUnavailable reports that no usable transit route exists between two
// points. Callers fall back to walking; this is not a failure.
var ErrUnavailable = eris.New("transit: no route available")

// SegmentKind labels one instruction of a transit estimate.
type SegmentKind string

// Segment kinds.
const (
	SegmentWalk     SegmentKind = "walk"
	SegmentRide     SegmentKind = "ride"
	SegmentTransfer SegmentKind = "transfer"
)

// Segment is one step of a transit estimate.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	Text    string      `json:"text"`
	Minutes float64     `json:"minutes"`
}

// Estimate describes an approximate transit leg between two points.
// Transfers is 0 or 1 in this model; multi-hop routing is out of scope.
type Estimate struct {
	Origin           model.SubwayStation `json:"origin"`
	Destination      model.SubwayStation `json:"destination"`
	Line             string              `json:"line"`
	TransferLine     string              `json:"transfer_line,omitempty"`
	Transfers        int                 `json:"transfers"`
	Stops            int                 `json:"stops"`
	WalkToMiles      float64             `json:"walk_to_miles"`
	WalkFromMiles    float64             `json:"walk_from_miles"`
	TotalTimeMinutes float64             `json:"total_time_minutes"`
	Cost             float64             `json:"cost"`
	Segments         []Segment           `json:"segments"`
}

// Estimator approximates subway legs against a static catalog.
type Estimator struct {
	catalog *Catalog
}

// NewEstimator creates an Estimator over the given catalog.
func NewEstimator(catalog *Catalog) *Estimator {
	return &Estimator{catalog: catalog}
}

// Estimate approximates a transit leg from one point to another. It returns
// ErrUnavailable when either endpoint has no station within AccessRadiusMiles
// or when both endpoints resolve to the same station.
func (e *Estimator) Estimate(from, to geo.Coordinate) (*Estimate, error) {
	origin, walkTo, ok := e.catalog.Nearest(from)
	if !ok {
		return nil, eris.Wrap(ErrUnavailable, "empty catalog")
	}
	dest, walkFrom, _ := e.catalog.Nearest(to)

	if walkTo > AccessRadiusMiles || walkFrom > AccessRadiusMiles {
		return nil, eris.Wrap(ErrUnavailable, "no station within access radius")
	}
	if origin.ID == dest.ID {
		return nil, eris.Wrap(ErrUnavailable, "both endpoints map to the same station")
	}

	est := &Estimate{
		Origin:        origin,
		Destination:   dest,
		WalkToMiles:   walkTo,
		WalkFromMiles: walkFrom,
		Cost:          FareUSD,
	}

	rideMiles := geo.Distance(origin.Coordinates, dest.Coordinates)
	est.Stops = int(math.Max(1, math.Round(rideMiles/avgStopSpacingMiles)))

	if line, ok := sharedLine(origin, dest); ok {
		est.Line = line
	} else {
		if len(origin.Lines) == 0 || len(dest.Lines) == 0 {
			// User-supplied catalogs may carry stations with no lines.
			return nil, eris.Wrap(ErrUnavailable, "station has no lines")
		}
		// One transfer: board the origin station's first line, finish on
		// the destination station's first line. The transfer point itself
		// is not modeled.
		est.Line = origin.Lines[0]
		est.TransferLine = dest.Lines[0]
		est.Transfers = 1
	}

	walkToMin := geo.WalkTime(walkTo)
	rideMin := float64(est.Stops)*minutesPerStop + boardingWaitMinutes
	walkFromMin := geo.WalkTime(walkFrom)

	est.Segments = append(est.Segments, Segment{
		Kind:    SegmentWalk,
		Text:    fmt.Sprintf("Walk %.2f mi to %s", walkTo, origin.Name),
		Minutes: walkToMin,
	})
	if est.Transfers == 0 {
		est.Segments = append(est.Segments, Segment{
			Kind:    SegmentRide,
			Text:    fmt.Sprintf("Take the %s train %d stops to %s", est.Line, est.Stops, dest.Name),
			Minutes: rideMin,
		})
	} else {
		est.Segments = append(est.Segments, Segment{
			Kind:    SegmentRide,
			Text:    fmt.Sprintf("Take the %s train toward %s", est.Line, dest.Name),
			Minutes: rideMin,
		})
		est.Segments = append(est.Segments, Segment{
			Kind:    SegmentTransfer,
			Text:    fmt.Sprintf("Transfer to the %s train to %s", est.TransferLine, dest.Name),
			Minutes: transferPenaltyMinutes,
		})
	}
	est.Segments = append(est.Segments, Segment{
		Kind:    SegmentWalk,
		Text:    fmt.Sprintf("Walk %.2f mi to destination", walkFrom),
		Minutes: walkFromMin,
	})

	est.TotalTimeMinutes = walkToMin + rideMin + walkFromMin
	if est.Transfers > 0 {
		est.TotalTimeMinutes += transferPenaltyMinutes
	}

	return est, nil
}
