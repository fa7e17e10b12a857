package geo

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

// ErrInvalidCoordinate indicates a NaN, infinite, or out-of-range coordinate.
// Malformed coordinates are the only fatal input condition in the engine.
var ErrInvalidCoordinate = eris.New("geo: invalid coordinate")

var validate = validator.New()

// Validate checks that c holds finite values within valid latitude and
// longitude ranges. Returns an error wrapping ErrInvalidCoordinate otherwise.
func Validate(c Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return eris.Wrapf(ErrInvalidCoordinate, "non-finite value (%v, %v)", c.Lat, c.Lng)
	}
	if err := validate.Struct(c); err != nil {
		return eris.Wrapf(ErrInvalidCoordinate, "out of range (%v, %v)", c.Lat, c.Lng)
	}
	return nil
}
