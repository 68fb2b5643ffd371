package csv

import (
	"os"
	"path/filepath"
	"testing"

	"go.sunfold.io/lcoe-api/internal/domain"
)

func writeScenario(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name+"_scenario.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}
}

// TestLoadScenario_Full checks loading a fully specified preset.
func TestLoadScenario_Full(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "terrestrial_baseline", `parameter,value
discount_rate_percent,7.7
project_duration_years,35
solar_irradiance,terrestrial
panel_type,monocrystalline_si
launch_mass_kg_per_m2,10.0
`)

	store := NewScenarioStore(dir)
	a, err := store.LoadScenario("terrestrial_baseline")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a.DiscountRatePercent != 7.7 {
		t.Errorf("Discount rate: expected 7.7, got %.2f", a.DiscountRatePercent)
	}
	if a.ProjectDurationYears != 35 {
		t.Errorf("Duration: expected 35, got %d", a.ProjectDurationYears)
	}
	if a.Irradiance != domain.IrradianceTerrestrial {
		t.Errorf("Irradiance: expected terrestrial, got %s", a.Irradiance)
	}
	if a.LaunchMassKgPerM2 != 10.0 {
		t.Errorf("Launch mass: expected 10.0, got %.2f", a.LaunchMassKgPerM2)
	}
}

// TestLoadScenario_PartialKeepsDefaults checks that unspecified
// parameters retain their default values.
func TestLoadScenario_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "gaas", `parameter,value
panel_type,multijunction_gaas
`)

	store := NewScenarioStore(dir)
	a, err := store.LoadScenario("gaas")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a.PanelType != domain.PanelMultiJunctionGaAs {
		t.Errorf("Panel type: expected multijunction_gaas, got %s", a.PanelType)
	}
	if a.DiscountRatePercent != domain.DefaultDiscountRatePercent {
		t.Errorf("Discount rate: expected default, got %.2f", a.DiscountRatePercent)
	}
	if a.ProjectDurationYears != domain.DefaultProjectDurationYears {
		t.Errorf("Duration: expected default, got %d", a.ProjectDurationYears)
	}
}

// TestLoadScenario_Errors checks rejection of malformed presets.
func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "badheader", "param,val\ndiscount_rate_percent,7.7\n")
	writeScenario(t, dir, "unknownparam", "parameter,value\nfuel_cost,3.0\n")
	writeScenario(t, dir, "empty", "parameter,value\n")
	writeScenario(t, dir, "outofrange", "parameter,value\ndiscount_rate_percent,55\n")

	store := NewScenarioStore(dir)

	for _, name := range []string{"badheader", "unknownparam", "empty", "outofrange", "missing"} {
		if _, err := store.LoadScenario(name); err == nil {
			t.Errorf("LoadScenario(%q): expected error, got nil", name)
		}
	}
}

// TestListScenarios checks directory listing.
func TestListScenarios(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "near_term_space", "parameter,value\nlaunch_mass_kg_per_m2,2.0\n")
	writeScenario(t, dir, "terrestrial_baseline", "parameter,value\nsolar_irradiance,terrestrial\n")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	store := NewScenarioStore(dir)
	scenarios, err := store.ListScenarios()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d: %v", len(scenarios), scenarios)
	}

	found := map[string]bool{}
	for _, s := range scenarios {
		found[s] = true
	}
	if !found["near_term_space"] || !found["terrestrial_baseline"] {
		t.Errorf("Unexpected scenario names: %v", scenarios)
	}
}
