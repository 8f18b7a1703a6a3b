package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tinderbox-cli/tinderbox/internal/config"
	"github.com/tinderbox-cli/tinderbox/internal/generate"
	"github.com/tinderbox-cli/tinderbox/internal/install"
	"github.com/tinderbox-cli/tinderbox/internal/output"
	"github.com/tinderbox-cli/tinderbox/internal/plan"
	"github.com/tinderbox-cli/tinderbox/internal/prompt"
	"github.com/tinderbox-cli/tinderbox/internal/render"
)

// CreateCmd creates and returns the 'create' command for scaffolding projects.
func CreateCmd() *cobra.Command {
	var configPath string
	var skipInstall bool

	cmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Create a new project",
		Long: `Creates a new project in the current directory.

With a config file, every feature choice comes from the file. With a bare
project name, quick defaults are used. With neither, the choices are
collected interactively.

Examples:
  tinderbox create myapp
  tinderbox create --config tinderbox.json
  tinderbox create`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := resolveConfig(configPath, args)
			if err != nil {
				reportError(err)
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			targetRoot := filepath.Join(cwd, cfg.Name)

			// Existing directories are a rejection, never an overwrite.
			if _, err := os.Stat(targetRoot); err == nil {
				err := fmt.Errorf("directory %s already exists", cfg.Name)
				output.Error(err.Error())
				output.Step("choose a different project name, or remove the directory")
				return err
			}

			p, err := plan.Compile(cfg)
			if err != nil {
				// A compile failure is a bug in the rule table, not a user error.
				output.Error(err.Error())
				return err
			}
			output.Verbose(fmt.Sprintf("Compiled plan with %d operations", p.Len()))

			executor := generate.NewExecutor(render.New(), output.ConsoleReporter{})
			session, err := executor.Execute(cmd.Context(), p, targetRoot)
			if err != nil {
				reportError(err)
				return err
			}
			output.Verbose(fmt.Sprintf("Session %s finished: %s", session.ID, session.Status))

			if !skipInstall {
				if err := install.Dependencies(cmd.Context(), cfg.PackageManager, targetRoot); err != nil {
					// The project tree is complete; a failed install is a warning.
					output.Warn(err.Error())
					output.Step(fmt.Sprintf("run '%s install' inside %s manually", cfg.PackageManager, cfg.Name))
				}
			}

			output.Success(fmt.Sprintf("Created project: %s", cfg.Name))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("cd %s", cfg.Name))
			if skipInstall {
				output.Step(fmt.Sprintf("%s install", cfg.PackageManager))
			}
			output.Step(fmt.Sprintf("%s run dev", cfg.PackageManager))
			if cfg.HasBackend() {
				output.Step("tinderbox provision  # create backend resources")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a JSON configuration file")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Skip dependency installation")

	return cmd
}

// resolveConfig picks the configuration source: file, bare name, or prompts.
func resolveConfig(configPath string, args []string) (*config.Config, error) {
	switch {
	case configPath != "":
		return config.Load(configPath)
	case len(args) == 1:
		cfg := config.Defaults(args[0])
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return prompt.Collect("")
	}
}

// reportError prints an error with its remediation suggestions, if any.
func reportError(err error) {
	output.Error(err.Error())

	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		for _, s := range cfgErr.Suggestions {
			output.Step(s)
		}
		return
	}

	var genErr *generate.Error
	if errors.As(err, &genErr) {
		for _, s := range genErr.Suggestions {
			output.Step(s)
		}
	}
}
