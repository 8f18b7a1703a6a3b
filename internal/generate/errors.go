package generate

import "fmt"

// Category tags for programmatic error handling.
const (
	CategoryExecution = "generation_execution"
	CategoryRollback  = "generation_rollback"
	CategoryTarget    = "generation_target"
)

// Error is the failure of one generation run. The original execution failure
// is always the primary cause; a rollback failure only ever appears as
// secondary context.
type Error struct {
	// Category is the stable machine-readable tag.
	Category string
	// OpIndex is the zero-based index of the failed operation in plan order.
	OpIndex int
	// Description is the failed operation's description.
	Description string
	// Phase is the phase the failed operation belonged to.
	Phase string
	// Cause is the originating failure.
	Cause error
	// RollbackErr is set when cleanup after the failure also failed.
	RollbackErr error
	// Suggestions are remediation hints for the user.
	Suggestions []string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed (operation %d, %s): %v", e.Phase, e.OpIndex+1, e.Description, e.Cause)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf("; additionally, cleanup failed: %v", e.RollbackErr)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RollbackError reports a failed cleanup of the target directory.
type RollbackError struct {
	TargetRoot string
	Cause      error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("failed to remove %s: %v", e.TargetRoot, e.Cause)
}

func (e *RollbackError) Unwrap() error {
	return e.Cause
}
