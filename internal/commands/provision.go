package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tinderbox-cli/tinderbox/internal/credentials"
	"github.com/tinderbox-cli/tinderbox/internal/execx"
	"github.com/tinderbox-cli/tinderbox/internal/output"
	"github.com/tinderbox-cli/tinderbox/internal/provision"
)

// ProvisionCmd creates and returns the 'provision' command for creating
// backend resources per environment.
func ProvisionCmd() *cobra.Command {
	var envs []string
	var authProviders []string
	var auth, database, storage bool

	cmd := &cobra.Command{
		Use:   "provision [base-name]",
		Short: "Provision backend resources per environment",
		Long: `Provisions one backend project per environment through the Firebase CLI,
registers a web application in each, fetches its SDK configuration, and
writes the per-environment env files.

Re-runs are safe: resources that already exist are reused.

Examples:
  tinderbox provision myapp --env dev --env prod
  tinderbox provision --env staging --database --storage`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			settings := LoadProjectSettings(cwd)

			baseName := ""
			if len(args) == 1 {
				baseName = args[0]
			} else if settings != nil {
				baseName = settings.Project.Name
			}
			if baseName == "" {
				err := errors.New("no base name given and no project found in the current directory")
				output.Error(err.Error())
				output.Step("run inside a generated project, or pass a base name")
				return err
			}

			if len(envs) == 0 {
				envs = []string{"dev"}
			}

			plan := provision.Plan{
				BaseName:     baseName,
				Environments: envs,
				Auth:         provision.AuthOptions{Enabled: auth, Providers: authProviders},
				Database:     database,
				Storage:      storage,
			}

			cli := provision.NewFirebaseCLI(execx.NewRunner(nil))
			orchestrator := provision.NewOrchestrator(cli, output.ConsoleReporter{})
			results := orchestrator.Provision(cmd.Context(), plan)

			serverPattern := settings != nil && settings.Backend.Pattern == "server-first"
			return report(results, cwd, serverPattern)
		},
	}

	cmd.Flags().StringArrayVar(&envs, "env", nil, "Environment tag to provision (repeatable)")
	cmd.Flags().BoolVar(&auth, "auth", false, "Enable authentication")
	cmd.Flags().StringArrayVar(&authProviders, "auth-provider", nil, "Authentication provider (repeatable)")
	cmd.Flags().BoolVar(&database, "database", false, "Enable the database")
	cmd.Flags().BoolVar(&storage, "storage", false, "Enable storage")

	return cmd
}

// report writes env files for the successful environments and summarizes the
// run. The whole run fails only when every environment failed; a mix is
// reported as degraded.
func report(results map[string]provision.Result, dir string, serverPattern bool) error {
	envs := make([]string, 0, len(results))
	for env := range results {
		envs = append(envs, env)
	}
	sort.Strings(envs)

	failed := 0
	for _, env := range envs {
		res := results[env]
		if res.Err != nil {
			failed++
			reportProvisionError(res.Err)
			continue
		}

		clientPath := filepath.Join(dir, fmt.Sprintf(".env.%s", env))
		if err := credentials.Write(res.Bundle, credentials.PatternClient, clientPath); err != nil {
			output.Error(err.Error())
			failed++
			continue
		}
		output.Step(fmt.Sprintf("wrote %s", clientPath))

		if serverPattern {
			serverPath := filepath.Join(dir, fmt.Sprintf(".env.%s.server", env))
			if err := credentials.Write(res.Bundle, credentials.PatternServer, serverPath); err != nil {
				output.Error(err.Error())
				failed++
				continue
			}
			output.Step(fmt.Sprintf("wrote %s", serverPath))
		}
	}

	switch {
	case failed == len(results):
		err := errors.New("provisioning failed for every environment")
		output.Error(err.Error())
		return err
	case failed > 0:
		output.Warn(fmt.Sprintf("provisioning degraded: %d of %d environments failed", failed, len(results)))
		return nil
	default:
		output.Success("provisioning complete")
		return nil
	}
}

func reportProvisionError(err error) {
	output.Error(err.Error())

	var stepErr *provision.StepError
	if errors.As(err, &stepErr) {
		for _, s := range stepErr.Suggestions {
			output.Step(s)
		}
	}
}
