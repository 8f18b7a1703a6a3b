package provision_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinderbox-cli/tinderbox/internal/provision"
)

// fakeCLI scripts the backend's behavior per project ID.
type fakeCLI struct {
	mu sync.Mutex

	createProjectErr map[string]error
	createAppErr     map[string]error
	listApps         map[string][]string
	listErr          map[string]error
	bundles          map[string]*provision.CredentialBundle

	createProjectCalls []string
	createAppCalls     []string
}

func goodBundle(projectID string) *provision.CredentialBundle {
	return &provision.CredentialBundle{
		APIKey:            "AIzaSyTest",
		AuthDomain:        projectID + ".firebaseapp.com",
		ProjectID:         projectID,
		StorageBucket:     projectID + ".appspot.com",
		MessagingSenderID: "935421059312",
		AppID:             "1:935421059312:web:9a3f0c2d7e51b846",
	}
}

func newFakeCLI() *fakeCLI {
	return &fakeCLI{
		createProjectErr: map[string]error{},
		createAppErr:     map[string]error{},
		listApps:         map[string][]string{},
		listErr:          map[string]error{},
		bundles:          map[string]*provision.CredentialBundle{},
	}
}

func (f *fakeCLI) CreateProject(ctx context.Context, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createProjectCalls = append(f.createProjectCalls, projectID)
	return f.createProjectErr[projectID]
}

func (f *fakeCLI) CreateWebApp(ctx context.Context, projectID, appName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createAppCalls = append(f.createAppCalls, appName)
	if err := f.createAppErr[projectID]; err != nil {
		return "", err
	}
	return "1:935421059312:web:9a3f0c2d7e51b846", nil
}

func (f *fakeCLI) ListWebApps(ctx context.Context, projectID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listApps[projectID], f.listErr[projectID]
}

func (f *fakeCLI) SDKConfig(ctx context.Context, projectID, appID string) (*provision.CredentialBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bundles[projectID]; ok {
		return b, nil
	}
	return goodBundle(projectID), nil
}

func provisionPlan(envs ...string) provision.Plan {
	return provision.Plan{
		BaseName:     "myapp",
		Environments: envs,
		Auth:         provision.AuthOptions{Enabled: true, Providers: []string{"google"}},
		Database:     true,
	}
}

func TestProvision_AllEnvironmentsSucceed(t *testing.T) {
	cli := newFakeCLI()
	o := provision.NewOrchestrator(cli, nil)

	results := o.Provision(context.Background(), provisionPlan("dev", "prod"))

	require.Len(t, results, 2)
	for _, env := range []string{"dev", "prod"} {
		res := results[env]
		require.NoError(t, res.Err)
		assert.Equal(t, provision.StateCredentialsFetched, res.State)
		assert.Equal(t, "myapp-"+env, res.ProjectID)
		require.NotNil(t, res.Bundle)
		assert.Equal(t, "myapp-"+env, res.Bundle.ProjectID)
	}
}

// One environment failing at app registration must not disturb its siblings,
// and the result map must still cover every environment.
func TestProvision_FailureIsIsolatedPerEnvironment(t *testing.T) {
	cli := newFakeCLI()
	cli.createAppErr["myapp-staging"] = errors.New("permission denied")

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan("dev", "staging", "prod"))

	require.Len(t, results, 3)

	require.NoError(t, results["dev"].Err)
	require.NotNil(t, results["dev"].Bundle)
	require.NoError(t, results["prod"].Err)
	require.NotNil(t, results["prod"].Bundle)

	failed := results["staging"]
	require.Error(t, failed.Err)
	assert.Equal(t, provision.StateFailed, failed.State)
	assert.Nil(t, failed.Bundle)

	var stepErr *provision.StepError
	require.ErrorAs(t, failed.Err, &stepErr)
	assert.Equal(t, provision.StepRegisterApp, stepErr.Step)
	assert.Equal(t, "staging", stepErr.Env)
}

func TestProvision_ProjectAlreadyExistsIsSuccess(t *testing.T) {
	cli := newFakeCLI()
	cli.createProjectErr["myapp-dev"] = provision.ErrAlreadyExists

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan("dev"))

	res := results["dev"]
	require.NoError(t, res.Err)
	assert.Equal(t, provision.StateCredentialsFetched, res.State)
}

func TestProvision_AppConflictRecoversExistingID(t *testing.T) {
	cli := newFakeCLI()
	cli.createAppErr["myapp-dev"] = provision.ErrAlreadyExists
	cli.listApps["myapp-dev"] = []string{"1:935421059312:web:000000000000beef"}

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan("dev"))

	res := results["dev"]
	require.NoError(t, res.Err)
	assert.Equal(t, "1:935421059312:web:000000000000beef", res.AppID)
}

// When the fallback lookup yields nothing, the failure must be
// distinguishable from a plain registration failure.
func TestProvision_AppRecoveryFailureIsDistinct(t *testing.T) {
	cli := newFakeCLI()
	cli.createAppErr["myapp-dev"] = provision.ErrAlreadyExists
	cli.listApps["myapp-dev"] = nil

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan("dev"))

	res := results["dev"]
	require.Error(t, res.Err)

	var stepErr *provision.StepError
	require.ErrorAs(t, res.Err, &stepErr)
	assert.Equal(t, provision.StepRegisterApp, stepErr.Step)
	assert.Equal(t, provision.CategoryRecovery, stepErr.Category)
}

func TestProvision_IncompleteBundleIsRejected(t *testing.T) {
	cli := newFakeCLI()
	incomplete := goodBundle("myapp-dev")
	incomplete.StorageBucket = ""
	cli.bundles["myapp-dev"] = incomplete

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan("dev"))

	res := results["dev"]
	require.Error(t, res.Err)

	var stepErr *provision.StepError
	require.ErrorAs(t, res.Err, &stepErr)
	assert.Equal(t, provision.StepFetchCredentials, stepErr.Step)
	assert.Equal(t, provision.CategoryCredentials, stepErr.Category)
	assert.Contains(t, stepErr.Cause.Error(), "storageBucket")
}

// A failed earlier step must prevent later steps for that environment.
func TestProvision_LaterStepsSkippedAfterFailure(t *testing.T) {
	cli := newFakeCLI()
	cli.createProjectErr["myapp-dev"] = errors.New("quota exceeded")

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan("dev"))

	res := results["dev"]
	require.Error(t, res.Err)
	assert.Empty(t, cli.createAppCalls, "app registration must not run after project creation fails")

	var stepErr *provision.StepError
	require.ErrorAs(t, res.Err, &stepErr)
	assert.Equal(t, provision.StepCreateProject, stepErr.Step)
}

func TestProvision_ManyEnvironments(t *testing.T) {
	cli := newFakeCLI()
	var envs []string
	for i := 0; i < 8; i++ {
		envs = append(envs, fmt.Sprintf("env%d", i))
	}

	o := provision.NewOrchestrator(cli, nil)
	results := o.Provision(context.Background(), provisionPlan(envs...))

	require.Len(t, results, len(envs))
	for _, env := range envs {
		require.NoError(t, results[env].Err, "environment %s failed", env)
	}
}

func TestCredentialBundle_Validate(t *testing.T) {
	require.NoError(t, goodBundle("p").Validate())

	for _, field := range []string{"apiKey", "authDomain", "projectId", "storageBucket", "messagingSenderId", "appId"} {
		b := goodBundle("p")
		switch field {
		case "apiKey":
			b.APIKey = ""
		case "authDomain":
			b.AuthDomain = ""
		case "projectId":
			b.ProjectID = ""
		case "storageBucket":
			b.StorageBucket = ""
		case "messagingSenderId":
			b.MessagingSenderID = ""
		case "appId":
			b.AppID = ""
		}
		err := b.Validate()
		require.Error(t, err, "missing %s must be rejected", field)
		assert.Contains(t, err.Error(), field)
	}

	// MeasurementID is optional.
	b := goodBundle("p")
	b.MeasurementID = ""
	assert.NoError(t, b.Validate())
}
