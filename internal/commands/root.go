package commands

import (
	"github.com/spf13/cobra"
	tinderbox "github.com/tinderbox-cli/tinderbox"
	"github.com/tinderbox-cli/tinderbox/internal/output"
)

// RootCmd creates and returns the root command for the tinderbox CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tinderbox",
		Short: "Scaffold modern web projects with optional Firebase backends",
		Long: `Tinderbox generates a working project tree from a declarative feature
configuration, and can provision real backend resources per environment
through the Firebase CLI.

• Scaffold projects from a config file, quick defaults, or interactively
• Pick framework, styling, UI kit, testing, and tooling per project
• Provision backend projects and write environment files per environment`,
		Version: tinderbox.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ProvisionCmd())

	return cmd
}
