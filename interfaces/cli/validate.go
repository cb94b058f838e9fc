package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario file",
		Long: `Validate a scenario file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (goal, action and variable names)
  - Value types and non-negative costs
  - Variables used with conflicting types across the document
  - Environment variable references (in strict mode)

Examples:
  # Validate a scenario file
  goap validate -c wood.yaml

  # Strict validation (fail on missing env vars)
  goap validate -c wood.yaml --strict

  # Show the JSON schema for scenarios
  goap validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showSchema()
			}
			return a.validateScenario(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to scenario file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for scenarios")

	return cmd
}

// validateScenario validates the scenario file and prints a summary.
func (a *App) validateScenario(opts *validateOptions) error {
	scenario, compiled, err := loadScenario(opts.configPath, opts.strict)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(a.stdout, "✓ Scenario is valid\n")
	_, _ = fmt.Fprintf(a.stdout, "  Name: %s\n", scenario.Name)
	if scenario.Description != "" {
		_, _ = fmt.Fprintf(a.stdout, "  Description: %s\n", scenario.Description)
	}

	_, _ = fmt.Fprintf(a.stdout, "\nScenario summary:\n")
	_, _ = fmt.Fprintf(a.stdout, "  Initial state: %s\n", compiled.Initial)

	_, _ = fmt.Fprintf(a.stdout, "  Goals: %d\n", len(compiled.Goals))
	for _, g := range compiled.Goals {
		_, _ = fmt.Fprintf(a.stdout, "    - %s (priority %d)\n", g.Name, g.Priority)
	}

	_, _ = fmt.Fprintf(a.stdout, "  Actions: %d\n", len(compiled.Actions))
	for _, act := range compiled.Actions {
		_, _ = fmt.Fprintf(a.stdout, "    - %s (cost %.1f)\n", act.Name, act.Cost)
	}

	if vars := variables(compiled); len(vars) > 0 {
		_, _ = fmt.Fprintf(a.stdout, "  Variables: %v\n", vars)
	}

	if scenario.Planner.MaxExpansions > 0 {
		_, _ = fmt.Fprintf(a.stdout, "  Max expansions: %d\n", scenario.Planner.MaxExpansions)
	}
	if compiled.Timeout > 0 {
		_, _ = fmt.Fprintf(a.stdout, "  Planning timeout: %s\n", compiled.Timeout)
	}

	return nil
}

// variables lists every variable name the scenario mentions.
func variables(compiled *api.CompiledScenario) []string {
	seen := make(map[string]struct{})
	for _, name := range compiled.Initial.Names() {
		seen[name] = struct{}{}
	}
	for _, g := range compiled.Goals {
		for _, name := range g.Desired.Names() {
			seen[name] = struct{}{}
		}
	}
	for _, act := range compiled.Actions {
		for _, name := range act.Preconditions.Names() {
			seen[name] = struct{}{}
		}
		for _, name := range act.Effects.Names() {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
