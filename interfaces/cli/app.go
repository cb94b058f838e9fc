// Package cli provides a command-line interface for the goap-go planner.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	goap "github.com/felixgeelhaar/goap-go"
	api "github.com/felixgeelhaar/goap-go/interfaces/api"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/observability"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/redis"
)

// Version information set at build time.
var (
	Version   = goap.Version
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// defaultCacheTTL bounds how long a cached plan is reused.
const defaultCacheTTL = 10 * time.Minute

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	logLevel     string
	logFormat    string
	trace        string
	otlpEndpoint string
	redisURL     string
}

// App represents the CLI application.
type App struct {
	root    *cobra.Command
	stdout  io.Writer
	stderr  io.Writer
	global  globalOptions
	tracing *observability.Provider
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "goap",
		Short: "Goal-oriented action planning for Go",
		Long: `goap plans a cheapest sequence of actions that turns a starting world
into one satisfying a goal, using A* search over typed world states.

Scenarios are YAML or JSON documents listing the initial world, one or more
goals and the available actions with their preconditions, effects and costs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown(cmd.Context())
		},
	}

	flags := app.root.PersistentFlags()
	flags.StringVar(&app.global.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&app.global.logFormat, "log-format", "console", "Log format (console, json)")
	flags.StringVar(&app.global.trace, "trace", "none", "Trace exporter (none, stdout, otlp)")
	flags.StringVar(&app.global.otlpEndpoint, "otlp-endpoint", "localhost:4317", "OTLP gRPC collector endpoint")
	flags.StringVar(&app.global.redisURL, "redis", "", "Redis URL for the plan cache (default: in-memory)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newPlanCmd(),
		app.newValidateCmd(),
		app.newExecuteCmd(),
		app.newSchemaCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup configures logging and tracing from the global flags.
func (a *App) setup() error {
	if err := logging.Configure(logging.Config{
		Level:  a.global.logLevel,
		Format: a.global.logFormat,
		Output: a.stderr,
	}); err != nil {
		return err
	}

	exporter, ok := observability.ParseExporter(a.global.trace)
	if !ok {
		return fmt.Errorf("unknown trace exporter %q (want none, stdout or otlp)", a.global.trace)
	}

	opts := []observability.Option{observability.WithServiceVersion(Version), observability.WithGlobal()}
	switch exporter {
	case observability.ExporterStdout:
		opts = append(opts, observability.WithStdoutTracing(a.stderr))
	case observability.ExporterOTLP:
		opts = append(opts, observability.WithOTLP(a.global.otlpEndpoint))
	}

	provider, err := observability.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	a.tracing = provider
	return nil
}

// teardown flushes pending spans.
func (a *App) teardown(ctx context.Context) error {
	if a.tracing == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return a.tracing.Shutdown(ctx)
}

// serviceOptions describe how a command wants its planning service built.
type serviceOptions struct {
	maxExpansions int
	timeout       time.Duration
	executor      *api.Executor
}

// newService builds a planning service for a compiled scenario. The returned
// closer releases the cache connection.
func (a *App) newService(ctx context.Context, compiled *api.CompiledScenario, opts serviceOptions) (*api.Service, func(), error) {
	plannerOpts := append([]api.PlannerOption{}, compiled.PlannerOptions...)
	if opts.maxExpansions > 0 {
		plannerOpts = append(plannerOpts, api.WithMaxExpansions(opts.maxExpansions))
	}

	timeout := compiled.Timeout
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	cache, closer, err := a.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	metrics := api.NewMetricsProvider(api.DefaultMetricsConfig())
	if err := metrics.Error(); err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}

	planner := api.NewPlanner(plannerOpts...)
	svcOpts := []api.ServiceOption{
		api.WithPlanner(planner),
		api.WithCache(cache, defaultCacheTTL),
		api.WithCacheVariant(planner.Variant()),
		api.WithPlanTimeout(timeout),
		api.WithMetrics(metrics),
		api.WithTracer(a.tracing.Tracer()),
	}
	if opts.executor != nil {
		svcOpts = append(svcOpts, api.WithExecutor(opts.executor))
	}

	svc, err := api.New(svcOpts...)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to create planning service: %w", err)
	}
	return svc, closer, nil
}

// newCache returns the Redis cache when --redis is set and an in-memory
// cache otherwise.
func (a *App) newCache(ctx context.Context) (api.Cache, func(), error) {
	if a.global.redisURL == "" {
		return api.NewMemoryCache(256), func() {}, nil
	}

	cfg, err := redis.ParseURL(a.global.redisURL)
	if err != nil {
		return nil, nil, err
	}
	cache, err := redis.NewCache(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return cache, func() { _ = cache.Close() }, nil
}

// loadScenario loads, validates and compiles a scenario file.
func loadScenario(path string, strict bool) (*api.Scenario, *api.CompiledScenario, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("scenario file path is required (-c flag)")
	}

	loader := api.NewScenarioLoader(api.ScenarioWithValidation(true), api.ScenarioWithStrictEnv(strict))
	scenario, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	compiled, err := api.CompileScenario(scenario)
	if err != nil {
		return nil, nil, err
	}
	return scenario, compiled, nil
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(a.stdout, "goap-go version %s\n", Version)
			_, _ = fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			_, _ = fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
