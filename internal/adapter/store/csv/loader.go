// Package csv provides CSV-based scenario preset loading.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.sunfold.io/lcoe-api/internal/domain"
)

// ScenarioStore provides access to named assumption presets stored as
// CSV files, one file per scenario.
type ScenarioStore struct {
	dataDir string
}

// NewScenarioStore creates a new CSV-based scenario store.
func NewScenarioStore(dataDir string) *ScenarioStore {
	return &ScenarioStore{
		dataDir: dataDir,
	}
}

// LoadScenario loads the assumption set for a named scenario from
// <dataDir>/<name>_scenario.csv. The file holds one parameter per row
// under a "parameter,value" header; parameters not present keep their
// defaults.
func (s *ScenarioStore) LoadScenario(name string) (domain.AssumptionSet, error) {
	filename := fmt.Sprintf("%s/%s_scenario.csv", s.dataDir, strings.ToLower(name))

	//nolint:gosec // G304: File path constructed from dataDir (config) and name (validated).
	file, err := os.Open(filename)
	if err != nil {
		return domain.AssumptionSet{}, fmt.Errorf("failed to open CSV file for scenario %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header.
	header, err := reader.Read()
	if err != nil {
		return domain.AssumptionSet{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	expectedHeaders := []string{"parameter", "value"}
	if len(header) != len(expectedHeaders) {
		return domain.AssumptionSet{}, fmt.Errorf("invalid CSV header: expected %v, got %v", expectedHeaders, header)
	}
	for i, h := range header {
		if h != expectedHeaders[i] {
			return domain.AssumptionSet{}, fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, expectedHeaders[i], h)
		}
	}

	// Start from defaults; rows override individual parameters.
	rate := domain.DefaultDiscountRatePercent
	years := domain.DefaultProjectDurationYears
	regime := domain.DefaultIrradianceRegime
	panel := domain.DefaultPanelType
	mass := domain.DefaultLaunchMassKgPerM2

	rows := 0
	for {
		record, err := reader.Read()
		if err != nil {
			// EOF is expected.
			if err.Error() == "EOF" {
				break
			}
			return domain.AssumptionSet{}, fmt.Errorf("failed to read CSV record: %w", err)
		}

		if len(record) != 2 {
			return domain.AssumptionSet{}, fmt.Errorf("invalid CSV record: expected 2 columns, got %d", len(record))
		}

		param := strings.TrimSpace(record[0])
		value := strings.TrimSpace(record[1])

		switch param {
		case "discount_rate_percent":
			rate, err = strconv.ParseFloat(value, 64)
			if err != nil {
				return domain.AssumptionSet{}, fmt.Errorf("invalid discount rate: %w", err)
			}
		case "project_duration_years":
			years, err = strconv.Atoi(value)
			if err != nil {
				return domain.AssumptionSet{}, fmt.Errorf("invalid project duration: %w", err)
			}
		case "solar_irradiance":
			regime, err = domain.ParseIrradianceRegime(value)
			if err != nil {
				return domain.AssumptionSet{}, err
			}
		case "panel_type":
			panel, err = domain.ParsePanelType(value)
			if err != nil {
				return domain.AssumptionSet{}, err
			}
		case "launch_mass_kg_per_m2":
			mass, err = strconv.ParseFloat(value, 64)
			if err != nil {
				return domain.AssumptionSet{}, fmt.Errorf("invalid launch mass: %w", err)
			}
		default:
			return domain.AssumptionSet{}, fmt.Errorf("unknown parameter: %s", param)
		}
		rows++
	}

	if rows == 0 {
		return domain.AssumptionSet{}, fmt.Errorf("no parameters found in CSV for scenario %s", name)
	}

	assumptions, err := domain.NewAssumptionSet(rate, years, regime, panel, mass)
	if err != nil {
		return domain.AssumptionSet{}, fmt.Errorf("invalid scenario %s: %w", name, err)
	}

	return assumptions, nil
}

// ListScenarios returns available scenario names.
func (s *ScenarioStore) ListScenarios() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	scenarios := make([]string, 0)
	suffix := "_scenario.csv"

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, suffix) {
			scenarios = append(scenarios, name[:len(name)-len(suffix)])
		}
	}

	return scenarios, nil
}
