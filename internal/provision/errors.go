package provision

import (
	"errors"
	"fmt"
)

// Category tags for programmatic error handling.
const (
	// CategoryStep is an external CLI step that failed outright.
	CategoryStep = "provision_step"
	// CategoryRecovery means an existing application could not be recovered
	// after a registration conflict. Distinct from CategoryStep so callers
	// can tell "could not create" from "could not recover existing".
	CategoryRecovery = "provision_recovery"
	// CategoryParse means the external tool's output was unrecognized.
	CategoryParse = "provision_parse"
	// CategoryCredentials means a fetched bundle failed validation.
	CategoryCredentials = "credential_validation"
)

// ErrAlreadyExists is reported by the CLI layer when the backend says the
// requested resource already exists. The orchestrator treats it as success
// for project creation and as a recovery trigger for app registration.
var ErrAlreadyExists = errors.New("resource already exists")

// StepError is a failure of one step inside one environment's pipeline.
type StepError struct {
	// Env is the environment tag the failure belongs to.
	Env string
	// Step identifies the failed step.
	Step Step
	// Category is the stable machine-readable tag.
	Category string
	// Message is the human-readable cause.
	Message string
	// Suggestions are remediation hints.
	Suggestions []string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *StepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Env, e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Env, e.Step, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}
