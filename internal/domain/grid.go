package domain

import (
	"fmt"
	"math"
)

// Default market-variable axis ranges and resolution.
const (
	// LaunchCostMin and LaunchCostMax bound the launch cost axis in $/kg.
	LaunchCostMin = 100.0
	LaunchCostMax = 5000.0

	// ArrayCostMin and ArrayCostMax bound the array cost axis in $/W.
	ArrayCostMin = 1.0
	ArrayCostMax = 1000.0

	// DefaultGridPoints is the sample count per axis.
	DefaultGridPoints = 50
)

// LogAxis returns count samples logarithmically spaced from min to max
// inclusive: evenly spaced in log10-space, so resolution is spread
// across the multiple orders of magnitude the cost ranges cover.
func LogAxis(min, max float64, count int) ([]float64, error) {
	if min <= 0 {
		return nil, fmt.Errorf("axis minimum must be positive, got %g", min)
	}
	if max <= min {
		return nil, fmt.Errorf("axis maximum (%g) must exceed minimum (%g)", max, min)
	}
	if count < 2 {
		return nil, fmt.Errorf("axis must have at least 2 points, got %d", count)
	}

	logMin := math.Log10(min)
	logMax := math.Log10(max)
	step := (logMax - logMin) / float64(count-1)

	axis := make([]float64, count)
	for i := 0; i < count; i++ {
		axis[i] = math.Pow(10, logMin+float64(i)*step)
	}

	// Pin the endpoints so inclusivity is exact, not within float error.
	axis[0] = min
	axis[count-1] = max

	return axis, nil
}

// Meshgrid pairs every launch-cost axis value with every array-cost
// axis value. In both returned grids, row i follows the array-cost
// axis and column j the launch-cost axis; the same convention is used
// by the evaluator and by nearest-cell lookup.
func Meshgrid(launchAxis, arrayAxis []float64) (launchGrid, arrayGrid [][]float64) {
	launchGrid = make([][]float64, len(arrayAxis))
	arrayGrid = make([][]float64, len(arrayAxis))

	for i := range arrayAxis {
		launchGrid[i] = make([]float64, len(launchAxis))
		arrayGrid[i] = make([]float64, len(launchAxis))
		for j := range launchAxis {
			launchGrid[i][j] = launchAxis[j]
			arrayGrid[i][j] = arrayAxis[i]
		}
	}

	return launchGrid, arrayGrid
}
