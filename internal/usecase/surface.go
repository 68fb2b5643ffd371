package usecase

import (
	"fmt"
	"sync"

	"go.sunfold.io/lcoe-api/internal/adapter/store"
	"go.sunfold.io/lcoe-api/internal/adapter/surface"
	"go.sunfold.io/lcoe-api/internal/domain"
)

// Axis override bounds accepted from requests. The grid is recomputed
// per request, so the point count is capped to keep responses small.
const (
	maxGridPoints = 200
)

// SurfaceRequest encapsulates one surface evaluation request. Absent
// fields fall back to the explorer defaults (or to the named scenario
// when one is given), so an empty request renders the default surface.
type SurfaceRequest struct {
	// Scenario names a preset loaded from the scenario store; explicit
	// fields below override individual preset values.
	Scenario string

	DiscountRatePercent *float64

	// ProjectDuration is the raw textual lifetime input. Invalid or
	// non-positive text falls back to 10 years with a reported warning.
	ProjectDuration string

	Irradiance string
	PanelType  string

	LaunchMassKgPerM2 *float64

	// Optional axis overrides.
	LaunchCostMin *float64
	LaunchCostMax *float64
	ArrayCostMin  *float64
	ArrayCostMax  *float64
	GridPoints    *int
}

// SurfaceResponse contains the evaluated surface for rendering.
type SurfaceResponse struct {
	LaunchCostAxis []float64         `json:"launch_cost_axis"`
	ArrayCostAxis  []float64         `json:"array_cost_axis"`
	LCOE           [][]float64       `json:"lcoe"`
	Points         []surface.Point   `json:"points"`
	Assumptions    AssumptionDisplay `json:"assumptions"`
	Warnings       []string          `json:"warnings,omitempty"`
	Meta           map[string]string `json:"meta"`
}

// AssumptionDisplay carries the formatted current-value strings shown
// alongside the surface.
type AssumptionDisplay struct {
	DiscountRate    string `json:"discount_rate"`
	ProjectLifetime string `json:"project_lifetime"`
	PowerGenRate    string `json:"power_gen_rate"`
	LaunchMass      string `json:"launch_mass"`
}

// SelectionRequest is a point-selection event from the render layer.
// LCOE is the optional companion value carried by clicks on grid cell
// markers; when present it is used as-is instead of nearest-cell lookup.
type SelectionRequest struct {
	LaunchCost float64  `json:"launch_cost"`
	ArrayCost  float64  `json:"array_cost"`
	LCOE       *float64 `json:"lcoe,omitempty"`
}

// SelectedPoint is the resolved selection, with display strings.
type SelectedPoint struct {
	LaunchCost float64         `json:"launch_cost"`
	ArrayCost  float64         `json:"array_cost"`
	LCOE       float64         `json:"lcoe"`
	Display    SelectedDisplay `json:"display"`
}

// SelectedDisplay carries the formatted selection strings.
type SelectedDisplay struct {
	LaunchCost string `json:"launch_cost"` // E.g., "$1000.00/kg".
	ArrayCost  string `json:"array_cost"`  // E.g., "$1.00/W".
	LCOE       string `json:"lcoe"`        // E.g., "$0.1282/W".
}

// SurfaceUseCase orchestrates surface evaluation and selection
// resolution. The last evaluated surface and the last selected point
// are session-lifetime state: the selection persists across re-renders
// triggered by unrelated input changes until overwritten.
type SurfaceUseCase struct {
	scenarios store.ScenarioLoader

	mu       sync.RWMutex
	current  *surface.Surface
	selected *SelectedPoint
}

// NewSurfaceUseCase creates a new surface use case. The scenario
// loader is optional; without it, scenario requests fail.
func NewSurfaceUseCase(scenarios store.ScenarioLoader) *SurfaceUseCase {
	return &SurfaceUseCase{
		scenarios: scenarios,
	}
}

// Validate checks the axis overrides; assumption ranges are validated
// when the AssumptionSet is built.
func (r *SurfaceRequest) Validate() error {
	checkAxis := func(name string, min, max *float64) error {
		if min != nil && *min <= 0 {
			return fmt.Errorf("%s axis minimum must be positive", name)
		}
		if min != nil && max != nil && *max <= *min {
			return fmt.Errorf("%s axis maximum must exceed minimum", name)
		}
		return nil
	}

	if err := checkAxis("launch-cost", r.LaunchCostMin, r.LaunchCostMax); err != nil {
		return err
	}
	if err := checkAxis("array-cost", r.ArrayCostMin, r.ArrayCostMax); err != nil {
		return err
	}

	if r.GridPoints != nil {
		if *r.GridPoints < 2 {
			return fmt.Errorf("grid must have at least 2 points per axis")
		}
		if *r.GridPoints > maxGridPoints {
			return fmt.Errorf("too many grid points (%d) - maximum is %d per axis", *r.GridPoints, maxGridPoints)
		}
	}

	return nil
}

// resolveAssumptions builds the AssumptionSet for a request: scenario
// preset (or defaults) plus per-field overrides. The returned warnings
// report soft fallbacks that did not block evaluation.
func (uc *SurfaceUseCase) resolveAssumptions(req SurfaceRequest) (domain.AssumptionSet, []string, error) {
	base := domain.DefaultAssumptionSet()

	if req.Scenario != "" {
		if uc.scenarios == nil {
			return domain.AssumptionSet{}, nil, fmt.Errorf("scenario store not configured")
		}
		loaded, err := uc.scenarios.LoadScenario(req.Scenario)
		if err != nil {
			return domain.AssumptionSet{}, nil, fmt.Errorf("failed to load scenario %s: %w", req.Scenario, err)
		}
		base = loaded
	}

	warnings := make([]string, 0)

	rate := base.DiscountRatePercent
	if req.DiscountRatePercent != nil {
		rate = *req.DiscountRatePercent
	}

	years := base.ProjectDurationYears
	if req.ProjectDuration != "" {
		parsed, err := domain.ParseProjectDuration(req.ProjectDuration)
		if err != nil {
			// Soft fallback: report, substitute the default, proceed.
			warnings = append(warnings, err.Error())
		}
		years = parsed
	}

	regime := base.Irradiance
	if req.Irradiance != "" {
		parsed, err := domain.ParseIrradianceRegime(req.Irradiance)
		if err != nil {
			return domain.AssumptionSet{}, nil, err
		}
		regime = parsed
	}

	panel := base.PanelType
	if req.PanelType != "" {
		parsed, err := domain.ParsePanelType(req.PanelType)
		if err != nil {
			return domain.AssumptionSet{}, nil, err
		}
		panel = parsed
	}

	mass := base.LaunchMassKgPerM2
	if req.LaunchMassKgPerM2 != nil {
		mass = *req.LaunchMassKgPerM2
	}

	assumptions, err := domain.NewAssumptionSet(rate, years, regime, panel, mass)
	if err != nil {
		return domain.AssumptionSet{}, nil, err
	}

	return assumptions, warnings, nil
}

// Execute evaluates the LCOE surface for the request and retains it as
// the current surface for subsequent selection lookups. The previous
// selected point, if any, is left untouched.
func (uc *SurfaceUseCase) Execute(req SurfaceRequest) (*SurfaceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	assumptions, warnings, err := uc.resolveAssumptions(req)
	if err != nil {
		return nil, err
	}

	launchMin, launchMax := domain.LaunchCostMin, domain.LaunchCostMax
	if req.LaunchCostMin != nil {
		launchMin = *req.LaunchCostMin
	}
	if req.LaunchCostMax != nil {
		launchMax = *req.LaunchCostMax
	}

	arrayMin, arrayMax := domain.ArrayCostMin, domain.ArrayCostMax
	if req.ArrayCostMin != nil {
		arrayMin = *req.ArrayCostMin
	}
	if req.ArrayCostMax != nil {
		arrayMax = *req.ArrayCostMax
	}

	points := domain.DefaultGridPoints
	if req.GridPoints != nil {
		points = *req.GridPoints
	}

	launchAxis, err := domain.LogAxis(launchMin, launchMax, points)
	if err != nil {
		return nil, fmt.Errorf("invalid launch-cost axis: %w", err)
	}
	arrayAxis, err := domain.LogAxis(arrayMin, arrayMax, points)
	if err != nil {
		return nil, fmt.Errorf("invalid array-cost axis: %w", err)
	}

	launchGrid, arrayGrid := domain.Meshgrid(launchAxis, arrayAxis)
	values, err := domain.EvaluateSurface(launchGrid, arrayGrid, assumptions)
	if err != nil {
		return nil, err
	}

	surf := &surface.Surface{
		LaunchCost: launchAxis,
		ArrayCost:  arrayAxis,
		Values:     values,
	}
	if err := surf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid surface: %w", err)
	}

	uc.mu.Lock()
	uc.current = surf
	uc.mu.Unlock()

	response := &SurfaceResponse{
		LaunchCostAxis: launchAxis,
		ArrayCostAxis:  arrayAxis,
		LCOE:           values,
		Points:         surf.FlattenPoints(),
		Assumptions: AssumptionDisplay{
			DiscountRate:    fmt.Sprintf("%.1f%%", assumptions.DiscountRatePercent),
			ProjectLifetime: fmt.Sprintf("%d years", assumptions.ProjectDurationYears),
			PowerGenRate:    fmt.Sprintf("%g kWh/day", assumptions.PowerGenRateKwhPerM2PerDay()),
			LaunchMass:      fmt.Sprintf("%.2f kg/m²", assumptions.LaunchMassKgPerM2),
		},
		Warnings: warnings,
		Meta: map[string]string{
			"model":      "lcoe_discounted_v1",
			"panel_type": string(assumptions.PanelType),
			"irradiance": string(assumptions.Irradiance),
		},
	}

	return response, nil
}

// currentSurface returns the last evaluated surface, rendering the
// default surface first if none exists yet.
func (uc *SurfaceUseCase) currentSurface() (*surface.Surface, error) {
	uc.mu.RLock()
	surf := uc.current
	uc.mu.RUnlock()

	if surf != nil {
		return surf, nil
	}

	if _, err := uc.Execute(SurfaceRequest{}); err != nil {
		return nil, fmt.Errorf("failed to render default surface: %w", err)
	}

	uc.mu.RLock()
	surf = uc.current
	uc.mu.RUnlock()
	return surf, nil
}

// Select resolves a selection event and stores it as the session's
// selected point. A companion LCOE value, supplied when the click hit
// a grid cell marker, is already exact and is used as-is; otherwise
// the value is taken from the nearest grid cell.
func (uc *SurfaceUseCase) Select(req SelectionRequest) (*SelectedPoint, error) {
	var lcoe float64
	if req.LCOE != nil {
		lcoe = *req.LCOE
	} else {
		surf, err := uc.currentSurface()
		if err != nil {
			return nil, err
		}
		lcoe, err = surf.NearestAt(req.LaunchCost, req.ArrayCost)
		if err != nil {
			return nil, err
		}
	}

	point := &SelectedPoint{
		LaunchCost: req.LaunchCost,
		ArrayCost:  req.ArrayCost,
		LCOE:       lcoe,
		Display: SelectedDisplay{
			LaunchCost: fmt.Sprintf("$%.2f/kg", req.LaunchCost),
			ArrayCost:  fmt.Sprintf("$%.2f/W", req.ArrayCost),
			LCOE:       fmt.Sprintf("$%.4f/W", lcoe),
		},
	}

	uc.mu.Lock()
	uc.selected = point
	uc.mu.Unlock()

	return point, nil
}

// Selected returns the current selected point, if any.
func (uc *SurfaceUseCase) Selected() (*SelectedPoint, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.selected == nil {
		return nil, false
	}
	return uc.selected, true
}

// ListScenarios returns the available preset scenario names.
func (uc *SurfaceUseCase) ListScenarios() ([]string, error) {
	if uc.scenarios == nil {
		return []string{}, nil
	}
	return uc.scenarios.ListScenarios()
}
