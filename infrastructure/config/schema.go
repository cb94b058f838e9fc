package config

import (
	"encoding/json"

	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Format               string                 `json:"format,omitempty"`
	Ref                  string                 `json:"$ref,omitempty"`
	Definitions          map[string]*JSONSchema `json:"$defs,omitempty"`
	AnyOf                []*JSONSchema          `json:"anyOf,omitempty"`
}

// GenerateSchema generates a JSON Schema for scenario documents.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/felixgeelhaar/goap-go/scenario.schema.json",
		Title:       "GOAP Scenario",
		Description: "A planning problem: initial world, goals and actions",
		Type:        "object",
		Required:    []string{"initial", "actions"},
		Definitions: map[string]*JSONSchema{
			"value": {
				Description: "World variable value",
				AnyOf: []*JSONSchema{
					{Type: "boolean"},
					{Type: "integer"},
					{Type: "number"},
					{Type: "string"},
				},
			},
			"state": {
				Type:                 "object",
				Description:          "Variable name to value",
				AdditionalProperties: &JSONSchema{Ref: "#/$defs/value"},
			},
			"deltas": {
				Type:                 "object",
				Description:          "Variable name to numeric delta",
				AdditionalProperties: &JSONSchema{Type: "number"},
			},
			"goal": generateGoalSchema(),
		},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "A human-readable name for this scenario",
			},
			"description": {
				Type:        "string",
				Description: "Describes the scenario",
			},
			"initial": {
				Ref:         "#/$defs/state",
				Description: "Starting world",
			},
			"goal": {
				Ref:         "#/$defs/goal",
				Description: "Primary goal",
			},
			"goals": {
				Type:        "array",
				Description: "Alternative goals, chosen by priority",
				Items:       &JSONSchema{Ref: "#/$defs/goal"},
			},
			"actions": {
				Type:        "array",
				Description: "Action library",
				Items:       generateActionSchema(),
			},
			"planner":    generatePlannerSchema(),
			"resilience": generateResilienceSchema(),
		},
	}
}

func generateGoalSchema() *JSONSchema {
	return &JSONSchema{
		Type:     "object",
		Required: []string{"name", "requires"},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "Goal identifier",
			},
			"priority": {
				Type:        "integer",
				Description: "Higher priority goals are chosen first",
				Default:     0,
			},
			"requires": {
				Ref:         "#/$defs/state",
				Description: "Desired partial world; numbers are thresholds",
			},
		},
	}
}

func generateActionSchema() *JSONSchema {
	return &JSONSchema{
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "Action identifier",
			},
			"cost": {
				Type:        "number",
				Description: "Step cost",
				Minimum:     floatPtr(0),
				Default:     1.0,
			},
			"requires": {
				Ref:         "#/$defs/state",
				Description: "Preconditions",
			},
			"sets": {
				Ref:         "#/$defs/state",
				Description: "Assignments",
			},
			"adds": {
				Ref:         "#/$defs/deltas",
				Description: "Numeric increments",
			},
			"subtracts": {
				Ref:         "#/$defs/deltas",
				Description: "Numeric decrements",
			},
		},
	}
}

func generatePlannerSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Search settings",
		Properties: map[string]*JSONSchema{
			"max_expansions": {
				Type:        "integer",
				Description: "Maximum expanded states (0 = unlimited)",
				Minimum:     floatPtr(0),
				Default:     0,
			},
			"timeout": {
				Type:        "string",
				Description: "Planning timeout (e.g., '5s')",
				Format:      "duration",
			},
			"heuristic": {
				Type:        "string",
				Description: "Remaining-cost estimate",
				Enum:        []string{domainconfig.HeuristicDistance, domainconfig.HeuristicZero},
				Default:     domainconfig.HeuristicDistance,
			},
		},
	}
}

func generateResilienceSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Action handler resilience during execution",
		Properties: map[string]*JSONSchema{
			"timeout": {
				Type:        "string",
				Description: "Handler timeout (e.g., '30s', '1m')",
				Format:      "duration",
			},
			"retry": {
				Type:        "object",
				Description: "Retry behavior",
				Properties: map[string]*JSONSchema{
					"enabled": {
						Type:    "boolean",
						Default: false,
					},
					"max_attempts": {
						Type:    "integer",
						Minimum: floatPtr(1),
						Default: 3,
					},
					"initial_delay": {
						Type:    "string",
						Format:  "duration",
						Default: "100ms",
					},
					"multiplier": {
						Type:    "number",
						Minimum: floatPtr(1),
						Default: 2.0,
					},
				},
			},
			"circuit_breaker": {
				Type:        "object",
				Description: "Circuit breaker behavior",
				Properties: map[string]*JSONSchema{
					"enabled": {
						Type:    "boolean",
						Default: false,
					},
					"threshold": {
						Type:        "integer",
						Description: "Consecutive failures before opening",
						Minimum:     floatPtr(1),
						Default:     5,
					},
					"timeout": {
						Type:        "string",
						Description: "How long the circuit stays open",
						Format:      "duration",
						Default:     "30s",
					},
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// SchemaJSON returns the JSON Schema as a JSON string.
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
