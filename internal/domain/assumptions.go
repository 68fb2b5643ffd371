// Package domain contains the LCOE cost-model core: assumption
// parameters, grid construction, and the discounted-energy formula.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PanelType identifies a photovoltaic panel technology.
type PanelType string

const (
	// PanelMonocrystallineSi is a commercial terrestrial monocrystalline silicon panel.
	PanelMonocrystallineSi PanelType = "monocrystalline_si"
	// PanelMultiJunctionGaAs is a space-rated multi-junction gallium arsenide panel.
	PanelMultiJunctionGaAs PanelType = "multijunction_gaas"
)

// IrradianceRegime identifies a solar irradiance environment.
type IrradianceRegime string

const (
	// IrradianceSpace assumes the AM0 spectrum with continuous sunlight.
	IrradianceSpace IrradianceRegime = "space"
	// IrradianceTerrestrial assumes an annualized southwest-US average.
	IrradianceTerrestrial IrradianceRegime = "terrestrial"
)

// PanelEfficiencies maps panel technologies to conversion efficiency
// (fraction of incident solar power converted to electrical power).
var PanelEfficiencies = map[PanelType]float64{
	PanelMonocrystallineSi: 0.21,
	PanelMultiJunctionGaAs: 0.32,
}

// IrradianceRates maps irradiance regimes to daily insolation in kWh/m²/day.
var IrradianceRates = map[IrradianceRegime]float64{
	IrradianceSpace:       32.6,
	IrradianceTerrestrial: 5.5,
}

// Default assumption values, matching the explorer's initial state.
const (
	DefaultDiscountRatePercent  = 7.7
	DefaultProjectDurationYears = 10
	DefaultLaunchMassKgPerM2    = 2.0
)

// DefaultPanelType is the initial panel technology selection.
const DefaultPanelType = PanelMonocrystallineSi

// DefaultIrradianceRegime is the initial irradiance selection.
const DefaultIrradianceRegime = IrradianceSpace

// Input ranges enforced on assumption parameters.
const (
	MinDiscountRatePercent = 1.0
	MaxDiscountRatePercent = 15.0
	MinLaunchMassKgPerM2   = 0.1
	MaxLaunchMassKgPerM2   = 10.0
)

// AssumptionSet is the immutable scalar bundle feeding one surface
// evaluation. Construct with NewAssumptionSet or DefaultAssumptionSet
// so the enum-derived fields stay consistent.
type AssumptionSet struct {
	DiscountRatePercent  float64
	ProjectDurationYears int
	PanelType            PanelType
	Irradiance           IrradianceRegime
	PanelEfficiency      float64 // Derived from PanelType.
	SolarIrradiance      float64 // kWh/m²/day, derived from Irradiance.
	LaunchMassKgPerM2    float64
}

// DefaultAssumptionSet returns the explorer's initial assumptions.
func DefaultAssumptionSet() AssumptionSet {
	a, _ := NewAssumptionSet(
		DefaultDiscountRatePercent,
		DefaultProjectDurationYears,
		DefaultIrradianceRegime,
		DefaultPanelType,
		DefaultLaunchMassKgPerM2,
	)
	return a
}

// NewAssumptionSet builds a validated AssumptionSet, resolving the
// panel and irradiance enums to their numeric values.
func NewAssumptionSet(ratePercent float64, durationYears int, regime IrradianceRegime, panel PanelType, launchMass float64) (AssumptionSet, error) {
	eff, ok := PanelEfficiencies[panel]
	if !ok {
		return AssumptionSet{}, fmt.Errorf("unknown panel type: %s", panel)
	}
	irr, ok := IrradianceRates[regime]
	if !ok {
		return AssumptionSet{}, fmt.Errorf("unknown irradiance regime: %s", regime)
	}

	a := AssumptionSet{
		DiscountRatePercent:  ratePercent,
		ProjectDurationYears: durationYears,
		PanelType:            panel,
		Irradiance:           regime,
		PanelEfficiency:      eff,
		SolarIrradiance:      irr,
		LaunchMassKgPerM2:    launchMass,
	}

	if err := a.Validate(); err != nil {
		return AssumptionSet{}, err
	}
	return a, nil
}

// Validate checks that all parameters are within the UI-exposed ranges.
func (a AssumptionSet) Validate() error {
	if a.DiscountRatePercent < MinDiscountRatePercent || a.DiscountRatePercent > MaxDiscountRatePercent {
		return fmt.Errorf("discount rate must be between %.1f and %.1f percent", MinDiscountRatePercent, MaxDiscountRatePercent)
	}
	if a.ProjectDurationYears < 1 {
		return fmt.Errorf("project duration must be at least 1 year")
	}
	if a.LaunchMassKgPerM2 < MinLaunchMassKgPerM2 || a.LaunchMassKgPerM2 > MaxLaunchMassKgPerM2 {
		return fmt.Errorf("launch mass must be between %.1f and %.1f kg/m²", MinLaunchMassKgPerM2, MaxLaunchMassKgPerM2)
	}
	eff, ok := PanelEfficiencies[a.PanelType]
	if !ok {
		return fmt.Errorf("unknown panel type: %s", a.PanelType)
	}
	if a.PanelEfficiency != eff {
		return fmt.Errorf("panel efficiency %.2f does not match panel type %s", a.PanelEfficiency, a.PanelType)
	}

	irr, ok := IrradianceRates[a.Irradiance]
	if !ok {
		return fmt.Errorf("unknown irradiance regime: %s", a.Irradiance)
	}
	if a.SolarIrradiance != irr {
		return fmt.Errorf("solar irradiance %.1f does not match regime %s", a.SolarIrradiance, a.Irradiance)
	}

	return nil
}

// PowerGenRateKwhPerM2PerDay returns the daily energy yield per unit
// area: panel efficiency times solar irradiance.
func (a AssumptionSet) PowerGenRateKwhPerM2PerDay() float64 {
	return a.PanelEfficiency * a.SolarIrradiance
}

// ParseProjectDuration parses a textual project-lifetime input. Invalid
// or non-positive text falls back to the default of 10 years along with
// the validation error; the returned value is always usable.
func ParseProjectDuration(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DefaultProjectDurationYears, nil
	}

	years, err := strconv.Atoi(trimmed)
	if err != nil {
		return DefaultProjectDurationYears, fmt.Errorf("project lifetime must be a positive integer, got %q", text)
	}
	if years <= 0 {
		return DefaultProjectDurationYears, fmt.Errorf("project lifetime must be a positive integer, got %d", years)
	}
	return years, nil
}

// ParsePanelType resolves a panel-type name, accepting the enum value.
func ParsePanelType(s string) (PanelType, error) {
	p := PanelType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := PanelEfficiencies[p]; !ok {
		return "", fmt.Errorf("unknown panel type %q (expected %s or %s)", s, PanelMonocrystallineSi, PanelMultiJunctionGaAs)
	}
	return p, nil
}

// ParseIrradianceRegime resolves an irradiance regime name.
func ParseIrradianceRegime(s string) (IrradianceRegime, error) {
	r := IrradianceRegime(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := IrradianceRates[r]; !ok {
		return "", fmt.Errorf("unknown irradiance regime %q (expected %s or %s)", s, IrradianceSpace, IrradianceTerrestrial)
	}
	return r, nil
}
