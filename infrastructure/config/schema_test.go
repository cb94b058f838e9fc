package config

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestGenerateSchema(t *testing.T) {
	t.Parallel()

	schema := GenerateSchema()

	if schema.Type != "object" {
		t.Errorf("Type = %s, want object", schema.Type)
	}
	if !slices.Contains(schema.Required, "initial") || !slices.Contains(schema.Required, "actions") {
		t.Errorf("Required = %v, want initial and actions", schema.Required)
	}

	for _, prop := range []string{"name", "description", "initial", "goal", "goals", "actions", "planner", "resilience"} {
		if _, ok := schema.Properties[prop]; !ok {
			t.Errorf("missing property: %s", prop)
		}
	}
	for _, def := range []string{"value", "state", "deltas", "goal"} {
		if _, ok := schema.Definitions[def]; !ok {
			t.Errorf("missing definition: %s", def)
		}
	}
}

func TestGenerateSchema_Action(t *testing.T) {
	t.Parallel()

	item := GenerateSchema().Properties["actions"].Items
	if item == nil {
		t.Fatal("actions.items is nil")
	}
	for _, prop := range []string{"name", "cost", "requires", "sets", "adds", "subtracts"} {
		if _, ok := item.Properties[prop]; !ok {
			t.Errorf("action missing property: %s", prop)
		}
	}
	if minimum := item.Properties["cost"].Minimum; minimum == nil || *minimum != 0 {
		t.Error("cost should have minimum 0")
	}
}

func TestGenerateSchema_Heuristics(t *testing.T) {
	t.Parallel()

	h := GenerateSchema().Properties["planner"].Properties["heuristic"]
	if len(h.Enum) != 2 {
		t.Errorf("heuristic enum = %v, want 2 values", h.Enum)
	}
}

func TestSchemaJSON(t *testing.T) {
	t.Parallel()

	out, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON() error = %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("SchemaJSON() is not valid JSON: %v", err)
	}
	if parsed["title"] != "GOAP Scenario" {
		t.Errorf("title = %v", parsed["title"])
	}
	if _, ok := parsed["$defs"]; !ok {
		t.Error("$defs missing from output")
	}
}
