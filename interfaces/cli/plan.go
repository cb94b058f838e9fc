package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
)

// planOptions holds options for the plan command.
type planOptions struct {
	configPath    string
	jsonOutput    bool
	maxExpansions int
	timeout       time.Duration
	watch         bool
}

// planOutput is the JSON rendering of a plan.
type planOutput struct {
	ID        string   `json:"id"`
	Scenario  string   `json:"scenario"`
	Goal      string   `json:"goal"`
	Steps     []string `json:"steps"`
	Cost      float64  `json:"cost"`
	Expanded  int      `json:"expanded"`
	Generated int      `json:"generated"`
	Cached    bool     `json:"cached"`
	Duration  string   `json:"duration"`
}

// newPlanCmd creates the plan command.
func (a *App) newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the cheapest action sequence for a scenario",
		Long: `Plan the cheapest sequence of actions reaching the scenario's goal.

When the scenario lists several goals they are tried by descending priority
and the first reachable one is planned.

Examples:
  # Plan a scenario
  goap plan -c wood.yaml

  # Machine-readable output
  goap plan -c wood.yaml --json

  # Bound the search
  goap plan -c wood.yaml --max-expansions 5000 --timeout 2s

  # Re-plan whenever the file changes
  goap plan -c wood.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return a.watchPlan(cmd.Context(), opts)
			}
			return a.runPlan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to scenario file (required)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the plan as JSON")
	cmd.Flags().IntVar(&opts.maxExpansions, "max-expansions", 0, "Maximum expanded states (overrides scenario)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Planning timeout (overrides scenario)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-plan when the scenario file changes")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runPlan loads the scenario, plans it and prints the result.
func (a *App) runPlan(ctx context.Context, opts *planOptions) error {
	scenario, compiled, err := loadScenario(opts.configPath, false)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	svc, closer, err := a.newService(ctx, compiled, serviceOptions{
		maxExpansions: opts.maxExpansions,
		timeout:       opts.timeout,
	})
	if err != nil {
		return err
	}
	defer closer()

	result, err := svc.PlanBest(ctx, compiled.Initial, compiled.Goals, compiled.Actions)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if opts.jsonOutput {
		out := planOutput{
			ID:        result.ID,
			Scenario:  scenario.Name,
			Goal:      result.Goal.Name,
			Steps:     result.Plan.Names(),
			Cost:      result.Plan.Cost,
			Expanded:  result.Plan.Stats.Expanded,
			Generated: result.Plan.Stats.Generated,
			Cached:    result.Cached,
			Duration:  result.Duration.String(),
		}
		if out.Steps == nil {
			out.Steps = []string{}
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	_, _ = fmt.Fprintf(a.stdout, "Scenario: %s\n", scenario.Name)
	_, _ = fmt.Fprintf(a.stdout, "Goal: %s\n", result.Goal.Name)
	if result.Plan.IsEmpty() {
		_, _ = fmt.Fprintf(a.stdout, "Goal already satisfied, nothing to do\n")
		return nil
	}
	_, _ = fmt.Fprintln(a.stdout, result.Plan.String())
	_, _ = fmt.Fprintf(a.stdout, "Expanded %d states (%d generated) in %s\n",
		result.Plan.Stats.Expanded, result.Plan.Stats.Generated, result.Duration)
	return nil
}

// watchPlan plans once and then again on every change to the scenario file
// until the context is canceled. Planning errors are reported and watching
// continues.
func (a *App) watchPlan(ctx context.Context, opts *planOptions) error {
	absPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files, so watch the directory.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	a.replan(ctx, opts)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logging.Debug().
				Add(logging.Component("watch")).
				Add(logging.Str("file", event.Name)).
				Add(logging.Operation(event.Op.String())).
				Msg("scenario changed")
			_, _ = fmt.Fprintf(a.stdout, "\n--- %s changed, re-planning ---\n", filepath.Base(absPath))
			a.replan(ctx, opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().
				Add(logging.Component("watch")).
				Add(logging.ErrorField(err)).
				Msg("watcher error")
		}
	}
}

// replan runs one planning pass in watch mode.
func (a *App) replan(ctx context.Context, opts *planOptions) {
	if err := a.runPlan(ctx, opts); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
}
