package domain

import (
	"fmt"
	"math"
)

// StandardIncidentWPerM2 is the standard reference irradiance used to
// convert array cost in $/W into cost per unit area: panel efficiency
// times 1000 W/m² gives the rated output per m².
const StandardIncidentWPerM2 = 1000.0

// DaysPerYear converts the daily energy yield into an annual yield.
const DaysPerYear = 365.0

// DiscountedYearSum returns Σ_{y=1..years} 1/(1+r/100)^y, the sum of
// annual discount factors over the project lifetime.
func DiscountedYearSum(ratePercent float64, years int) float64 {
	base := 1.0 + ratePercent/100.0
	sum := 0.0
	for y := 1; y <= years; y++ {
		sum += 1.0 / math.Pow(base, float64(y))
	}
	return sum
}

// LifetimeEnergyKwhPerM2 returns the discounted lifetime energy yield
// per unit area in kWh.
func (a AssumptionSet) LifetimeEnergyKwhPerM2() float64 {
	return a.PowerGenRateKwhPerM2PerDay() * DaysPerYear * DiscountedYearSum(a.DiscountRatePercent, a.ProjectDurationYears)
}

// LCOE evaluates the levelized cost of energy for a single
// (launchCost $/kg, arrayCost $/W) point under the given assumptions:
//
//	lifetimeCost   = launchCost·launchMass + arrayCost·panelEff·1000   [$/m²]
//	lifetimeEnergy = powerGenRate·365·Σ 1/(1+r/100)^y                  [kWh/m²]
//	lcoe           = lifetimeCost / lifetimeEnergy
func LCOE(launchCost, arrayCost float64, a AssumptionSet) float64 {
	lifetimeCost := launchCost*a.LaunchMassKgPerM2 + arrayCost*a.PanelEfficiency*StandardIncidentWPerM2
	return lifetimeCost / a.LifetimeEnergyKwhPerM2()
}

// EvaluateSurface applies the LCOE formula element-wise over matching
// launch-cost and array-cost grids, producing a grid of identical
// shape. The assumptions must validate first: a non-positive duration
// or a discount rate at or below -100% would make the discounted
// energy denominator zero or negative, so it is rejected here rather
// than allowed to yield a non-finite surface.
func EvaluateSurface(launchGrid, arrayGrid [][]float64, a AssumptionSet) ([][]float64, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	if len(launchGrid) != len(arrayGrid) {
		return nil, fmt.Errorf("grid shape mismatch: %d vs %d rows", len(launchGrid), len(arrayGrid))
	}

	// The denominator is shared by every cell.
	lifetimeEnergy := a.LifetimeEnergyKwhPerM2()

	values := make([][]float64, len(launchGrid))
	for i := range launchGrid {
		if len(launchGrid[i]) != len(arrayGrid[i]) {
			return nil, fmt.Errorf("grid shape mismatch at row %d: %d vs %d columns", i, len(launchGrid[i]), len(arrayGrid[i]))
		}
		values[i] = make([]float64, len(launchGrid[i]))
		for j := range launchGrid[i] {
			lifetimeCost := launchGrid[i][j]*a.LaunchMassKgPerM2 + arrayGrid[i][j]*a.PanelEfficiency*StandardIncidentWPerM2
			values[i][j] = lifetimeCost / lifetimeEnergy
		}
	}

	return values, nil
}
