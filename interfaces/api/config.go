// Package api provides the public API for the goap-go library.
// This file provides scenario configuration exports.
package api

import (
	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
	infraconfig "github.com/felixgeelhaar/goap-go/infrastructure/config"
)

// Re-export domain configuration types.
type (
	// Scenario is a planning problem read from a document.
	Scenario = domainconfig.Scenario
	// GoalSpec describes a goal.
	GoalSpec = domainconfig.GoalSpec
	// ActionSpec describes an action.
	ActionSpec = domainconfig.ActionSpec
	// PlannerSettings configures the search.
	PlannerSettings = domainconfig.PlannerSettings
	// ResilienceConfig contains resilience settings.
	ResilienceConfig = domainconfig.ResilienceConfig
	// ConfigDuration is a time.Duration that supports JSON/YAML string representation.
	ConfigDuration = domainconfig.Duration

	// ValidationError represents a scenario validation error.
	ValidationError = domainconfig.ValidationError
	// ValidationErrors is a collection of validation errors.
	ValidationErrors = domainconfig.ValidationErrors
)

// Re-export infrastructure configuration types.
type (
	// ScenarioLoader loads scenarios from files.
	ScenarioLoader = infraconfig.Loader
	// ScenarioLoaderOption configures the loader.
	ScenarioLoaderOption = infraconfig.LoaderOption
	// ScenarioFormat is a document format.
	ScenarioFormat = infraconfig.Format
	// CompiledScenario holds the planning values built from a scenario.
	CompiledScenario = infraconfig.BuildResult
)

// Scenario formats.
const (
	FormatYAML = infraconfig.FormatYAML
	FormatJSON = infraconfig.FormatJSON
)

// Re-export configuration errors.
var (
	ErrConfigNotFound    = domainconfig.ErrConfigNotFound
	ErrValidationFailed  = domainconfig.ErrValidationFailed
	ErrBuildFailed       = domainconfig.ErrBuildFailed
	ErrUnsupportedFormat = domainconfig.ErrUnsupportedFormat
)

// NewScenarioLoader creates a loader with env expansion and validation.
func NewScenarioLoader(opts ...ScenarioLoaderOption) *ScenarioLoader {
	return infraconfig.NewLoaderWithOptions(opts...)
}

// ScenarioWithStrictEnv fails loading on unset environment variables.
func ScenarioWithStrictEnv(enabled bool) ScenarioLoaderOption {
	return infraconfig.WithStrictEnv(enabled)
}

// ScenarioWithValidation toggles validation after decoding.
func ScenarioWithValidation(enabled bool) ScenarioLoaderOption {
	return infraconfig.WithValidation(enabled)
}

// LoadScenarioFile loads and validates a scenario document.
func LoadScenarioFile(path string) (*Scenario, error) {
	return infraconfig.NewLoader().LoadFile(path)
}

// CompileScenario builds the initial state, goals and actions of s.
func CompileScenario(s *Scenario) (*CompiledScenario, error) {
	return infraconfig.Compile(s)
}

// ScenarioSchemaJSON returns the JSON Schema of scenario documents.
func ScenarioSchemaJSON() (string, error) {
	return infraconfig.SchemaJSON()
}
