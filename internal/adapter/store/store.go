package store

import "go.sunfold.io/lcoe-api/internal/domain"

// ScenarioLoader is the interface for loading named assumption presets.
type ScenarioLoader interface {
	// LoadScenario loads the assumption set for a named scenario
	// (e.g., "near_term_space").
	LoadScenario(name string) (domain.AssumptionSet, error)

	// ListScenarios returns the names of available scenarios.
	ListScenarios() ([]string, error)
}
