package provision

import (
	"context"
	"fmt"

	"github.com/tinderbox-cli/tinderbox/internal/execx"
)

// BackendCLI is the narrow capability interface over the external backend
// tool. The orchestrator depends on this interface, not on the concrete
// subprocess wrapper, so step logic is unit-testable against fakes.
type BackendCLI interface {
	// CreateProject creates a backend project. Returns ErrAlreadyExists when
	// the backend reports the project ID is taken.
	CreateProject(ctx context.Context, projectID string) error
	// CreateWebApp registers a web application under the project and returns
	// its generated app ID. Returns ErrAlreadyExists on a name conflict.
	CreateWebApp(ctx context.Context, projectID, appName string) (string, error)
	// ListWebApps returns the app IDs of every web application registered
	// under the project.
	ListWebApps(ctx context.Context, projectID string) ([]string, error)
	// SDKConfig fetches the application's SDK configuration.
	SDKConfig(ctx context.Context, projectID, appID string) (*CredentialBundle, error)
}

// FirebaseCLI drives the firebase command-line tool through execx.
type FirebaseCLI struct {
	runner *execx.Runner
}

// NewFirebaseCLI creates a CLI wrapper over the given runner.
func NewFirebaseCLI(runner *execx.Runner) *FirebaseCLI {
	return &FirebaseCLI{runner: runner}
}

func (c *FirebaseCLI) CreateProject(ctx context.Context, projectID string) error {
	res, err := c.runner.RunCapture(ctx, "firebase",
		"projects:create", projectID, "--display-name", projectID, "--non-interactive")
	if err != nil {
		if isAlreadyExists(res.Stdout + res.Stderr) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("projects:create %s: %w", projectID, err)
	}
	return nil
}

func (c *FirebaseCLI) CreateWebApp(ctx context.Context, projectID, appName string) (string, error) {
	res, err := c.runner.RunCapture(ctx, "firebase",
		"apps:create", "WEB", appName, "--project", projectID, "--non-interactive")
	if err != nil {
		if isAlreadyExists(res.Stdout + res.Stderr) {
			return "", ErrAlreadyExists
		}
		return "", fmt.Errorf("apps:create %s: %w", appName, err)
	}

	id, ok := extractAppID(res.Stdout)
	if !ok {
		return "", fmt.Errorf("no app ID found in apps:create output for %s", appName)
	}
	return id, nil
}

func (c *FirebaseCLI) ListWebApps(ctx context.Context, projectID string) ([]string, error) {
	res, err := c.runner.RunCapture(ctx, "firebase",
		"apps:list", "WEB", "--project", projectID, "--non-interactive")
	if err != nil {
		return nil, fmt.Errorf("apps:list for %s: %w", projectID, err)
	}
	return extractAppIDs(res.Stdout), nil
}

func (c *FirebaseCLI) SDKConfig(ctx context.Context, projectID, appID string) (*CredentialBundle, error) {
	res, err := c.runner.RunCapture(ctx, "firebase",
		"apps:sdkconfig", "WEB", appID, "--project", projectID, "--non-interactive")
	if err != nil {
		return nil, fmt.Errorf("apps:sdkconfig for %s: %w", appID, err)
	}
	return parseSDKConfig(res.Stdout)
}
