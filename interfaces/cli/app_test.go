package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Version(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(stdout, "goap-go version") {
		t.Errorf("version output missing 'goap-go version', got: %s", stdout)
	}
}

func TestApp_Help(t *testing.T) {
	stdout, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, want := range []string{"action planning", "plan", "validate", "execute", "schema"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q, got: %s", want, stdout)
		}
	}
}

func TestApp_Plan(t *testing.T) {
	stdout, _, err := run(t, "plan", "-c", "testdata/get_wood.yaml")
	if err != nil {
		t.Fatalf("plan command failed: %v", err)
	}

	for _, want := range []string{
		"Goal: get_wood",
		"Plan (total cost: 3.0):",
		"Step 1: move_to_tree",
		"Step 2: chop_tree",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("plan output missing %q, got: %s", want, stdout)
		}
	}
}

func TestApp_PlanJSON(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		goal     string
		wantCost float64
		steps    []string
	}{
		{"wood", "testdata/get_wood.yaml", "get_wood", 3, []string{"move_to_tree", "chop_tree"}},
		{"planks prefers higher priority", "testdata/get_planks.yaml", "get_planks", 7, []string{"get_axe", "chop_tree", "saw_planks"}},
		{"numeric json scenario", "testdata/gold.json", "get_gold", 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, "plan", "-c", tt.file, "--json")
			if err != nil {
				t.Fatalf("plan command failed: %v", err)
			}

			var out planOutput
			if err := json.Unmarshal([]byte(stdout), &out); err != nil {
				t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
			}
			if out.Goal != tt.goal {
				t.Errorf("goal = %q, want %q", out.Goal, tt.goal)
			}
			if out.Cost != tt.wantCost {
				t.Errorf("cost = %v, want %v", out.Cost, tt.wantCost)
			}
			if out.ID == "" {
				t.Error("plan id should be set")
			}
			if tt.steps != nil && strings.Join(out.Steps, ",") != strings.Join(tt.steps, ",") {
				t.Errorf("steps = %v, want %v", out.Steps, tt.steps)
			}
		})
	}
}

func TestApp_PlanUnreachable(t *testing.T) {
	_, _, err := run(t, "plan", "-c", "testdata/unreachable.yaml")
	if err == nil {
		t.Fatal("expected error for unreachable goal")
	}
	if !errors.Is(err, api.ErrNoReachableGoal) || !errors.Is(err, api.ErrNoPlanFound) {
		t.Errorf("error = %v, want ErrNoReachableGoal wrapping ErrNoPlanFound", err)
	}
}

func TestApp_PlanMaxExpansions(t *testing.T) {
	_, _, err := run(t, "plan", "-c", "testdata/get_planks.yaml", "--max-expansions", "1")
	if !errors.Is(err, api.ErrNoReachableGoal) || !errors.Is(err, api.ErrSearchExhausted) {
		t.Errorf("error = %v, want ErrSearchExhausted for every goal", err)
	}
}

func TestApp_PlanMissingConfig(t *testing.T) {
	if _, _, err := run(t, "plan"); err == nil {
		t.Error("expected error when -c is missing")
	}
	if _, _, err := run(t, "plan", "-c", "testdata/does-not-exist.yaml"); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestApp_PlanWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wood.yaml")
	data, err := os.ReadFile("testdata/get_wood.yaml")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	if err := app.ExecuteWithArgs(ctx, []string{"plan", "-c", path, "--watch"}); err != nil {
		t.Fatalf("plan --watch failed: %v", err)
	}

	if !strings.Contains(stdout.String(), "Plan (total cost: 3.0):") {
		t.Errorf("watch output missing initial plan, got: %s", stdout.String())
	}
}

func TestApp_Validate(t *testing.T) {
	stdout, _, err := run(t, "validate", "-c", "testdata/get_planks.yaml")
	if err != nil {
		t.Fatalf("validate command failed: %v", err)
	}

	for _, want := range []string{
		"Scenario is valid",
		"Name: get-planks",
		"Goals: 2",
		"get_planks (priority 2)",
		"Actions: 4",
		"Variables: [has_axe has_planks has_wood]",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("validate output missing %q, got: %s", want, stdout)
		}
	}
}

func TestApp_ValidateInvalid(t *testing.T) {
	content := `
name: broken
initial:
  fuel: 1
goal:
  name: ""
  requires:
    fuel: "full"
actions:
  - name: refuel
    cost: -1
`
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	_, _, err := run(t, "validate", "-c", path)
	if !errors.Is(err, api.ErrValidationFailed) {
		t.Errorf("error = %v, want ErrValidationFailed", err)
	}
}

func TestApp_ValidateStrictEnv(t *testing.T) {
	content := `
name: ${GOAP_CLI_TEST_UNSET_NAME}
initial:
  ready: false
goal:
  name: ready
  requires:
    ready: true
actions:
  - name: prepare
    sets:
      ready: true
`
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	if _, _, err := run(t, "validate", "-c", path, "--strict"); err == nil {
		t.Error("strict validation should fail on an unset variable")
	}
}

func TestApp_ValidateSchema(t *testing.T) {
	stdout, _, err := run(t, "validate", "--schema")
	if err != nil {
		t.Fatalf("validate --schema failed: %v", err)
	}
	if !strings.Contains(stdout, "json-schema.org") {
		t.Errorf("schema output missing $schema, got: %s", stdout)
	}
}

func TestApp_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")

	stdout, _, err := run(t, "schema", "-o", path)
	if err != nil {
		t.Fatalf("schema command failed: %v", err)
	}
	if !strings.Contains(stdout, "Schema exported to") {
		t.Errorf("unexpected output: %s", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if !json.Valid(data) {
		t.Error("exported schema is not valid JSON")
	}
}

func TestApp_Execute(t *testing.T) {
	stdout, _, err := run(t, "execute", "-c", "testdata/get_wood.yaml")
	if err != nil {
		t.Fatalf("execute command failed: %v", err)
	}

	for _, want := range []string{
		"Initial state:",
		"Step 1: move_to_tree ->",
		"Step 2: chop_tree ->",
		"Status: succeeded",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("execute output missing %q, got: %s", want, stdout)
		}
	}
}

func TestApp_ExecuteJSON(t *testing.T) {
	stdout, _, err := run(t, "execute", "-c", "testdata/gold.json", "--json")
	if err != nil {
		t.Fatalf("execute command failed: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if out["status"] != "succeeded" {
		t.Errorf("status = %v, want succeeded", out["status"])
	}
	steps, ok := out["steps"].([]any)
	if !ok || len(steps) == 0 {
		t.Fatalf("steps = %v", out["steps"])
	}
	if attempts, ok := out["attempts"].([]any); !ok || len(attempts) != len(steps) {
		t.Errorf("attempts = %v, want one per step", out["attempts"])
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	if _, _, err := run(t, "--trace", "carrier-pigeon", "version"); err == nil {
		t.Error("unknown trace exporter should fail")
	}
	if _, _, err := run(t, "--log-level", "loud", "version"); err == nil {
		t.Error("unknown log level should fail")
	}

	stdout, stderr, err := run(t, "--trace", "stdout", "--log-level", "debug", "--log-format", "json",
		"plan", "-c", "testdata/get_wood.yaml")
	if err != nil {
		t.Fatalf("plan with tracing failed: %v", err)
	}
	if !strings.Contains(stdout, "Plan (total cost: 3.0):") {
		t.Errorf("plan output missing, got: %s", stdout)
	}
	if !strings.Contains(stderr, "goap.plan") {
		t.Errorf("stdout trace exporter should write spans to stderr, got: %s", stderr)
	}
}

func TestApp_RedisURLInvalid(t *testing.T) {
	_, _, err := run(t, "--redis", "not-a-url://", "plan", "-c", "testdata/get_wood.yaml")
	if err == nil {
		t.Error("invalid redis URL should fail")
	}
}
