// Package provision drives the external Firebase CLI through the
// per-environment resource-creation workflow: create project, register web
// app, fetch the generated SDK configuration.
//
// Environments are independent: each gets its own result, and one
// environment's failure never aborts its siblings. All cross-run state lives
// in the backend service itself; re-runs are safe because "already exists"
// is treated as success.
package provision

import "fmt"

// Plan describes one provisioning run.
type Plan struct {
	// BaseName is the project base name; per-environment project IDs are
	// derived as "{BaseName}-{env}".
	BaseName string
	// Environments are the environment tags to provision (e.g. dev, prod).
	Environments []string
	// Auth enables authentication and lists the chosen providers.
	Auth AuthOptions
	// Database enables Firestore.
	Database bool
	// Storage enables Cloud Storage.
	Storage bool
}

// AuthOptions holds the authentication feature toggles.
type AuthOptions struct {
	Enabled   bool
	Providers []string
}

// Step identifies one step of the per-environment workflow.
type Step string

const (
	StepCreateProject    Step = "create-project"
	StepRegisterApp      Step = "register-app"
	StepFetchCredentials Step = "fetch-credentials"
)

// State is the per-environment progress through the workflow.
type State int

const (
	StatePending State = iota
	StateProjectCreated
	StateAppRegistered
	StateCredentialsFetched
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateProjectCreated:
		return "project created"
	case StateAppRegistered:
		return "app registered"
	case StateCredentialsFetched:
		return "credentials fetched"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// CredentialBundle is the SDK configuration returned by the backend after
// registering a web application. Every field except MeasurementID is
// required; a bundle with a missing required field is rejected.
type CredentialBundle struct {
	APIKey            string `json:"apiKey"`
	AuthDomain        string `json:"authDomain"`
	ProjectID         string `json:"projectId"`
	StorageBucket     string `json:"storageBucket"`
	MessagingSenderID string `json:"messagingSenderId"`
	AppID             string `json:"appId"`
	MeasurementID     string `json:"measurementId,omitempty"`
}

// Validate checks that every required field is non-empty.
func (b *CredentialBundle) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"apiKey", b.APIKey},
		{"authDomain", b.AuthDomain},
		{"projectId", b.ProjectID},
		{"storageBucket", b.StorageBucket},
		{"messagingSenderId", b.MessagingSenderID},
		{"appId", b.AppID},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("credential bundle is missing required field %q", f.name)
		}
	}
	return nil
}

// Result is the outcome for one environment. The orchestrator returns one
// Result per requested environment, never an all-or-nothing outcome.
type Result struct {
	// Env is the environment tag.
	Env string
	// ProjectID is the resolved backend project ID.
	ProjectID string
	// AppID is the registered application ID, when registration succeeded.
	AppID string
	// Bundle is the fetched credential bundle, when the whole pipeline
	// succeeded.
	Bundle *CredentialBundle
	// State is the terminal state for this environment.
	State State
	// Err is the failure for this environment, if any.
	Err error
}
