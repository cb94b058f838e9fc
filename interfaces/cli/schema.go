package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// schemaOptions holds options for the schema command.
type schemaOptions struct {
	outputPath string
}

// newSchemaCmd creates the schema command.
func (a *App) newSchemaCmd() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the scenario JSON schema",
		Long: `Export the JSON Schema for scenario files.

The schema can drive editor validation and completion of scenario
documents. It follows JSON Schema draft 2020-12.

Examples:
  # Print the schema
  goap schema

  # Write the schema to a file
  goap schema -o scenario.schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportSchema(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")

	return cmd
}

// showSchema prints the scenario schema.
func (a *App) showSchema() error {
	return a.exportSchema(&schemaOptions{})
}

// exportSchema writes the scenario schema to stdout or a file.
func (a *App) exportSchema(opts *schemaOptions) error {
	schemaJSON, err := api.ScenarioSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if opts.outputPath == "" {
		_, _ = fmt.Fprintln(a.stdout, schemaJSON)
		return nil
	}

	if err := os.WriteFile(opts.outputPath, []byte(schemaJSON), 0600); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	_, _ = fmt.Fprintf(a.stdout, "Schema exported to %s\n", opts.outputPath)
	return nil
}
