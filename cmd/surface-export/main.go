// Package main provides an offline LCOE surface exporter. It evaluates
// the surface for a given assumption set and writes it to a NetCDF
// file for external analysis tooling.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/fhs/go-netcdf/netcdf"

	"go.sunfold.io/lcoe-api/internal/adapter/store/csv"
	"go.sunfold.io/lcoe-api/internal/adapter/surface"
	"go.sunfold.io/lcoe-api/internal/domain"
)

func main() {
	// Command line flags.
	outPath := flag.String("out", "./lcoe_surface.nc", "Output NetCDF file path")
	scenarioDir := flag.String("scenario-dir", "./data/scenarios", "Scenario preset directory")
	scenarioName := flag.String("scenario", "", "Named scenario preset (overrides defaults)")
	rate := flag.Float64("discount-rate", domain.DefaultDiscountRatePercent, "Discount rate in percent")
	duration := flag.Int("duration", domain.DefaultProjectDurationYears, "Project lifetime in years")
	irradiance := flag.String("irradiance", string(domain.DefaultIrradianceRegime), "Irradiance regime: space or terrestrial")
	panelType := flag.String("panel-type", string(domain.DefaultPanelType), "Panel type: monocrystalline_si or multijunction_gaas")
	launchMass := flag.Float64("launch-mass", domain.DefaultLaunchMassKgPerM2, "Launch mass in kg/m²")
	launchMin := flag.Float64("launch-cost-min", domain.LaunchCostMin, "Launch cost axis minimum ($/kg)")
	launchMax := flag.Float64("launch-cost-max", domain.LaunchCostMax, "Launch cost axis maximum ($/kg)")
	arrayMin := flag.Float64("array-cost-min", domain.ArrayCostMin, "Array cost axis minimum ($/W)")
	arrayMax := flag.Float64("array-cost-max", domain.ArrayCostMax, "Array cost axis maximum ($/W)")
	points := flag.Int("points", domain.DefaultGridPoints, "Grid points per axis")
	verify := flag.Bool("verify", false, "Read the written file back and compare")

	flag.Parse()

	// Resolve assumptions.
	var assumptions domain.AssumptionSet
	if *scenarioName != "" {
		store := csv.NewScenarioStore(*scenarioDir)
		loaded, err := store.LoadScenario(*scenarioName)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
		assumptions = loaded
		log.Printf("Loaded scenario %s from %s", *scenarioName, *scenarioDir)
	} else {
		regime, err := domain.ParseIrradianceRegime(*irradiance)
		if err != nil {
			log.Fatalf("Invalid irradiance: %v", err)
		}
		panel, err := domain.ParsePanelType(*panelType)
		if err != nil {
			log.Fatalf("Invalid panel type: %v", err)
		}
		assumptions, err = domain.NewAssumptionSet(*rate, *duration, regime, panel, *launchMass)
		if err != nil {
			log.Fatalf("Invalid assumptions: %v", err)
		}
	}

	log.Printf("Evaluating LCOE surface...")
	log.Printf("Discount rate: %.1f%%, lifetime: %d years, panel: %s, irradiance: %s, mass: %.2f kg/m²",
		assumptions.DiscountRatePercent, assumptions.ProjectDurationYears,
		assumptions.PanelType, assumptions.Irradiance, assumptions.LaunchMassKgPerM2)
	log.Printf("Axes: launch cost %.0f-%.0f $/kg, array cost %.0f-%.0f $/W, %d points each",
		*launchMin, *launchMax, *arrayMin, *arrayMax, *points)

	// Build axes and evaluate.
	launchAxis, err := domain.LogAxis(*launchMin, *launchMax, *points)
	if err != nil {
		log.Fatalf("Invalid launch-cost axis: %v", err)
	}
	arrayAxis, err := domain.LogAxis(*arrayMin, *arrayMax, *points)
	if err != nil {
		log.Fatalf("Invalid array-cost axis: %v", err)
	}

	launchGrid, arrayGrid := domain.Meshgrid(launchAxis, arrayAxis)
	values, err := domain.EvaluateSurface(launchGrid, arrayGrid, assumptions)
	if err != nil {
		log.Fatalf("Failed to evaluate surface: %v", err)
	}

	surf := &surface.Surface{
		LaunchCost: launchAxis,
		ArrayCost:  arrayAxis,
		Values:     values,
	}
	if err := surf.Validate(); err != nil {
		log.Fatalf("Invalid surface: %v", err)
	}

	// Write the NetCDF file.
	if err := writeNetCDF(*outPath, surf); err != nil {
		log.Fatalf("Failed to write NetCDF: %v", err)
	}
	log.Printf("✓ Wrote %s (%d × %d cells)", *outPath, len(arrayAxis), len(launchAxis))

	if *verify {
		if err := verifyNetCDF(*outPath, surf); err != nil {
			log.Fatalf("Verification failed: %v", err)
		}
		log.Printf("✓ Verified %s against the in-memory surface", *outPath)
	}
}

// writeNetCDF writes the surface with launch_cost and array_cost as
// coordinate variables and lcoe as a 2D [array_cost, launch_cost] grid.
func writeNetCDF(path string, surf *surface.Surface) error {
	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer ds.Close()

	// Create dimensions.
	arrayDim, err := ds.AddDim("array_cost", uint64(len(surf.ArrayCost)))
	if err != nil {
		return err
	}

	launchDim, err := ds.AddDim("launch_cost", uint64(len(surf.LaunchCost)))
	if err != nil {
		return err
	}

	// Create coordinate variables.
	arrayVar, err := ds.AddVar("array_cost", netcdf.DOUBLE, []netcdf.Dim{arrayDim})
	if err != nil {
		return err
	}
	if err := arrayVar.WriteFloat64s(surf.ArrayCost); err != nil {
		return err
	}

	launchVar, err := ds.AddVar("launch_cost", netcdf.DOUBLE, []netcdf.Dim{launchDim})
	if err != nil {
		return err
	}
	if err := launchVar.WriteFloat64s(surf.LaunchCost); err != nil {
		return err
	}

	// Create the data variable; rows follow the array-cost axis.
	lcoeVar, err := ds.AddVar("lcoe", netcdf.DOUBLE, []netcdf.Dim{arrayDim, launchDim})
	if err != nil {
		return err
	}

	flat := make([]float64, 0, len(surf.ArrayCost)*len(surf.LaunchCost))
	for i := range surf.Values {
		flat = append(flat, surf.Values[i]...)
	}
	if err := lcoeVar.WriteFloat64s(flat); err != nil {
		return err
	}

	return nil
}

// verifyNetCDF reads the written file back and compares it cell by
// cell against the in-memory surface.
func verifyNetCDF(path string, surf *surface.Surface) error {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	launchBack, err := read1D(nc, "launch_cost", len(surf.LaunchCost))
	if err != nil {
		return err
	}
	arrayBack, err := read1D(nc, "array_cost", len(surf.ArrayCost))
	if err != nil {
		return err
	}

	lcoeVar, err := nc.Var("lcoe")
	if err != nil {
		return fmt.Errorf("lcoe variable not found: %w", err)
	}
	total := len(surf.ArrayCost) * len(surf.LaunchCost)
	flat := make([]float64, total)
	if err := lcoeVar.ReadFloat64s(flat); err != nil {
		return fmt.Errorf("failed to read lcoe: %w", err)
	}

	const tolerance = 1e-12
	for j := range surf.LaunchCost {
		if math.Abs(launchBack[j]-surf.LaunchCost[j]) > tolerance {
			return fmt.Errorf("launch_cost[%d] mismatch: %v vs %v", j, launchBack[j], surf.LaunchCost[j])
		}
	}
	for i := range surf.ArrayCost {
		if math.Abs(arrayBack[i]-surf.ArrayCost[i]) > tolerance {
			return fmt.Errorf("array_cost[%d] mismatch: %v vs %v", i, arrayBack[i], surf.ArrayCost[i])
		}
	}
	for i := range surf.Values {
		for j := range surf.Values[i] {
			got := flat[i*len(surf.LaunchCost)+j]
			if math.Abs(got-surf.Values[i][j]) > tolerance {
				return fmt.Errorf("lcoe[%d][%d] mismatch: %v vs %v", i, j, got, surf.Values[i][j])
			}
		}
	}

	return nil
}

// read1D reads a 1D coordinate variable of known length.
func read1D(nc netcdf.Dataset, name string, length int) ([]float64, error) {
	v, err := nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("%s variable not found: %w", name, err)
	}
	data := make([]float64, length)
	if err := v.ReadFloat64s(data); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
