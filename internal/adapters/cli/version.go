package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planforge/aps-go/internal/adapters/persistence"
)

// Version is the CLI version, overridable at build time via -ldflags.
var Version = "0.1.0"

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aps %s (storage format v%d)\n", Version, persistence.CurrentFormatVersion)
		},
	}
}
