// Package surface holds the evaluated LCOE grid together with its axes
// and provides nearest-cell value lookup for selection events.
package surface

import (
	"fmt"
	"math"
)

// Point is one grid cell flattened for the click-marker payload.
type Point struct {
	LaunchCost float64 `json:"launch_cost"`
	ArrayCost  float64 `json:"array_cost"`
	LCOE       float64 `json:"lcoe"`
}

// Surface is an evaluated LCOE grid. Values[i][j] corresponds to
// (ArrayCost[i], LaunchCost[j]); the surface is read-only once built.
type Surface struct {
	LaunchCost []float64   // Launch cost axis, $/kg.
	ArrayCost  []float64   // Array cost axis, $/W.
	Values     [][]float64 // LCOE per cell.
}

// Validate checks the structural consistency of the surface.
func (s *Surface) Validate() error {
	if len(s.LaunchCost) < 2 {
		return fmt.Errorf("surface must have at least 2 launch-cost points")
	}
	if len(s.ArrayCost) < 2 {
		return fmt.Errorf("surface must have at least 2 array-cost points")
	}
	if len(s.Values) != len(s.ArrayCost) {
		return fmt.Errorf("number of value rows (%d) must match array-cost points (%d)", len(s.Values), len(s.ArrayCost))
	}

	for i, row := range s.Values {
		if len(row) != len(s.LaunchCost) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(s.LaunchCost))
		}
	}

	// Axes must be sorted and unique for nearest-index lookup to be
	// well defined.
	for i := 1; i < len(s.LaunchCost); i++ {
		if s.LaunchCost[i] <= s.LaunchCost[i-1] {
			return fmt.Errorf("launch-cost axis must be strictly increasing")
		}
	}
	for i := 1; i < len(s.ArrayCost); i++ {
		if s.ArrayCost[i] <= s.ArrayCost[i-1] {
			return fmt.Errorf("array-cost axis must be strictly increasing")
		}
	}

	return nil
}

// NearestIndex returns the index of the axis value closest to v by
// absolute difference. On exact equidistance the lower index wins.
func NearestIndex(axis []float64, v float64) int {
	best := 0
	bestDist := math.Abs(axis[0] - v)
	for i := 1; i < len(axis); i++ {
		d := math.Abs(axis[i] - v)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// NearestAt snaps a query point (x launch cost, y array cost) to the
// closest grid cell and returns that cell's exact LCOE value. This is
// snapping, not interpolation: the result is always a previously
// computed grid value.
func (s *Surface) NearestAt(x, y float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, fmt.Errorf("invalid surface: %w", err)
	}

	j := NearestIndex(s.LaunchCost, x)
	i := NearestIndex(s.ArrayCost, y)

	return s.Values[i][j], nil
}

// FlattenPoints returns one Point per grid cell, row by row, carrying
// the exact LCOE as auxiliary payload for hover and click display.
func (s *Surface) FlattenPoints() []Point {
	points := make([]Point, 0, len(s.ArrayCost)*len(s.LaunchCost))
	for i := range s.ArrayCost {
		for j := range s.LaunchCost {
			points = append(points, Point{
				LaunchCost: s.LaunchCost[j],
				ArrayCost:  s.ArrayCost[i],
				LCOE:       s.Values[i][j],
			})
		}
	}
	return points
}
