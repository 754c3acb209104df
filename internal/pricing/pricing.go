// Package pricing holds the catalog pricing rule: a design's sale price is
// its printed area times a fixed per-unit rate.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// UnitRate is the storefront's fixed per-unit-area rate.
const UnitRate = 10

var ErrDimensions = errors.New("invalid dimensions")

// ComputePrice derives the stored price from the declared physical
// dimensions. Both dimensions must be strictly positive.
func ComputePrice(width, height int) (float64, error) {
	if width <= 0 {
		return 0, fmt.Errorf("%w: width must be > 0, got %d", ErrDimensions, width)
	}
	if height <= 0 {
		return 0, fmt.Errorf("%w: height must be > 0, got %d", ErrDimensions, height)
	}
	return float64(width) * float64(height) * UnitRate, nil
}

// Round2 rounds a monetary amount to two decimals. Used at every
// aggregation boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
