package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/domain/execution"
	api "github.com/felixgeelhaar/goap-go/interfaces/api"
	"github.com/felixgeelhaar/goap-go/infrastructure/middleware"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
)

// executeOptions holds options for the execute command.
type executeOptions struct {
	configPath    string
	jsonOutput    bool
	maxExpansions int
	timeout       time.Duration
}

// newExecuteCmd creates the execute command.
func (a *App) newExecuteCmd() *cobra.Command {
	opts := &executeOptions{}

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Plan a scenario and simulate running the plan",
		Long: `Plan a scenario and run the plan against a simulated world.

Each action applies its declared effects; the world state is printed after
every step. Preconditions are re-checked before each step and the goal is
checked at the end, so the output shows exactly how the plan transforms
the initial state.

Examples:
  # Simulate a plan
  goap execute -c wood.yaml

  # Machine-readable execution record
  goap execute -c wood.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExecute(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to scenario file (required)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the execution record as JSON")
	cmd.Flags().IntVar(&opts.maxExpansions, "max-expansions", 0, "Maximum expanded states (overrides scenario)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Planning timeout (overrides scenario)")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runExecute plans the scenario and simulates the plan step by step.
func (a *App) runExecute(ctx context.Context, opts *executeOptions) error {
	scenario, compiled, err := loadScenario(opts.configPath, false)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	var observer api.StepObserver
	if !opts.jsonOutput {
		_, _ = fmt.Fprintf(a.stdout, "Scenario: %s\n", scenario.Name)
		_, _ = fmt.Fprintf(a.stdout, "Initial state: %s\n", compiled.Initial)
		observer = func(exec *api.Execution, step api.ExecutionStep) {
			if !step.Succeeded() {
				_, _ = fmt.Fprintf(a.stdout, "Step %d: %s failed: %s\n", step.Index+1, step.Action, step.Error)
				return
			}
			_, _ = fmt.Fprintf(a.stdout, "Step %d: %s -> %s\n", step.Index+1, step.Action, step.After)
		}
	}

	// Each retry attempt passes through the recorder, so attempts can exceed steps.
	attempts := middleware.NewRecorder()
	inner := execution.Chain(
		middleware.Logging(middleware.LoggingConfig{LogStates: true}),
		middleware.Recording(attempts),
	)(api.Simulate)
	handler := resilience.NewExecutor(inner, resilience.FromConfig(compiled.Resilience))
	executor := api.NewExecutor(api.ExecutorConfig{
		Handler:  handler,
		Tracer:   a.tracing.Tracer(),
		Observer: observer,
	})

	svc, closer, err := a.newService(ctx, compiled, serviceOptions{
		maxExpansions: opts.maxExpansions,
		timeout:       opts.timeout,
		executor:      executor,
	})
	if err != nil {
		return err
	}
	defer closer()

	result, exec, err := svc.Run(ctx, compiled.Initial, compiled.Goals, compiled.Actions)
	if exec == nil && err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if opts.jsonOutput {
		out := map[string]any{
			"plan_id":      result.ID,
			"execution_id": exec.ID,
			"scenario":     scenario.Name,
			"goal":         result.Goal.Name,
			"cost":         result.Plan.Cost,
			"status":       exec.Status,
			"steps":        exec.Steps,
			"final_state":  exec.State.String(),
			"duration":     exec.Duration().String(),
			"attempts":     attempts.Operations(),
		}
		if exec.Error != "" {
			out["error"] = exec.Error
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			return encErr
		}
	} else {
		_, _ = fmt.Fprintf(a.stdout, "Goal: %s (plan cost %.1f)\n", result.Goal.Name, result.Plan.Cost)
		_, _ = fmt.Fprintf(a.stdout, "Final state: %s\n", exec.State)
		_, _ = fmt.Fprintf(a.stdout, "Status: %s\n", exec.Status)
	}

	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}
