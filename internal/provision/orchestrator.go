package provision

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tinderbox-cli/tinderbox/internal/output"
)

// Orchestrator runs the provisioning workflow for every requested
// environment. Environment pipelines are mutually independent and run
// concurrently; within one environment the steps are strictly sequential.
type Orchestrator struct {
	cli      BackendCLI
	reporter output.Reporter
}

// NewOrchestrator creates an orchestrator over the given backend CLI.
func NewOrchestrator(cli BackendCLI, reporter output.Reporter) *Orchestrator {
	if reporter == nil {
		reporter = output.NilReporter{}
	}
	return &Orchestrator{cli: cli, reporter: reporter}
}

// Provision runs the workflow and returns one result per requested
// environment. The map always covers every environment; a failure in one
// never prevents the others from being attempted.
func (o *Orchestrator) Provision(ctx context.Context, p Plan) map[string]Result {
	o.reporter.PhaseStart("provisioning", len(p.Environments))

	results := make(chan Result, len(p.Environments))
	var wg sync.WaitGroup
	for _, env := range p.Environments {
		wg.Add(1)
		go func(env string) {
			defer wg.Done()
			results <- o.provisionEnv(ctx, p, env)
		}(env)
	}
	wg.Wait()
	close(results)

	out := make(map[string]Result, len(p.Environments))
	succeeded := 0
	for r := range results {
		out[r.Env] = r
		if r.Err == nil {
			succeeded++
		} else {
			o.reporter.Error(r.Env, r.Err)
		}
	}

	o.reporter.Summary(fmt.Sprintf("provisioned %d/%d environments", succeeded, len(p.Environments)))
	return out
}

// provisionEnv runs one environment's pipeline. A later step is never
// attempted after an earlier one fails.
func (o *Orchestrator) provisionEnv(ctx context.Context, p Plan, env string) Result {
	res := Result{
		Env:       env,
		ProjectID: fmt.Sprintf("%s-%s", p.BaseName, env),
		State:     StatePending,
	}

	// Step 1: create the backend project. "Already exists" is success, so
	// re-runs are safe.
	if err := o.cli.CreateProject(ctx, res.ProjectID); err != nil {
		if !errors.Is(err, ErrAlreadyExists) {
			res.State = StateFailed
			res.Err = &StepError{
				Env:      env,
				Step:     StepCreateProject,
				Category: CategoryStep,
				Message:  fmt.Sprintf("could not create project %s", res.ProjectID),
				Cause:    err,
				Suggestions: []string{
					"check that you are logged in to the backend CLI",
					"project IDs are global; try a different base name",
				},
			}
			return res
		}
	}
	res.State = StateProjectCreated
	o.reporter.ItemDone(fmt.Sprintf("%s: project %s ready", env, res.ProjectID))

	// Step 2: register the web application. On a name conflict, recover the
	// existing app's ID from the list command; failing that is a distinct
	// error from failing to create.
	appName := fmt.Sprintf("%s-%s", p.BaseName, env)
	appID, err := o.cli.CreateWebApp(ctx, res.ProjectID, appName)
	if err != nil {
		if !errors.Is(err, ErrAlreadyExists) {
			res.State = StateFailed
			res.Err = &StepError{
				Env:      env,
				Step:     StepRegisterApp,
				Category: CategoryStep,
				Message:  fmt.Sprintf("could not register application %s", appName),
				Cause:    err,
			}
			return res
		}

		appID, err = o.recoverExistingApp(ctx, res.ProjectID)
		if err != nil {
			res.State = StateFailed
			res.Err = &StepError{
				Env:      env,
				Step:     StepRegisterApp,
				Category: CategoryRecovery,
				Message:  fmt.Sprintf("application %s already exists but its ID could not be recovered", appName),
				Cause:    err,
				Suggestions: []string{
					"list the project's applications with the backend CLI and check its output format",
				},
			}
			return res
		}
	}
	res.AppID = appID
	res.State = StateAppRegistered
	o.reporter.ItemDone(fmt.Sprintf("%s: app %s registered", env, appID))

	// Step 3: fetch and validate the credential bundle.
	bundle, err := o.cli.SDKConfig(ctx, res.ProjectID, appID)
	if err != nil {
		res.State = StateFailed
		res.Err = &StepError{
			Env:      env,
			Step:     StepFetchCredentials,
			Category: CategoryParse,
			Message:  "could not fetch SDK configuration",
			Cause:    err,
		}
		return res
	}
	if err := bundle.Validate(); err != nil {
		res.State = StateFailed
		res.Err = &StepError{
			Env:      env,
			Step:     StepFetchCredentials,
			Category: CategoryCredentials,
			Message:  "fetched SDK configuration is incomplete",
			Cause:    err,
		}
		return res
	}

	res.Bundle = bundle
	res.State = StateCredentialsFetched
	o.reporter.ItemDone(fmt.Sprintf("%s: credentials fetched", env))
	return res
}

// recoverExistingApp looks up the existing application's ID after a
// registration conflict.
func (o *Orchestrator) recoverExistingApp(ctx context.Context, projectID string) (string, error) {
	ids, err := o.cli.ListWebApps(ctx, projectID)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no app ID found in the project's application list")
	}
	return ids[0], nil
}
