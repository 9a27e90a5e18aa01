package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aps",
		Short: "APS CLI - Manage planning scenarios and lookup tables",
		Long: `APS CLI manages the planning engine's lookup tables and scenario state.
Commands operate directly on the configured database.

Examples:
  aps tables list --kind ATTRIBUTE_CODE
  aps tables copy --kind SETUP_CODE --id 12
  aps tables delete --kind ITEM_CLEANOUT --id 7
  aps feed apply changeover-tables.yaml
  aps version`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewTablesCommand())
	rootCmd.AddCommand(NewFeedCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
