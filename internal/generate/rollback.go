package generate

import "os"

// Rollback removes a partially generated target directory tree.
//
// It is invoked only after an execution failure. The returned error is
// secondary by contract: callers report it alongside the originating
// execution error, never instead of it.
func Rollback(targetRoot string) error {
	if err := os.RemoveAll(targetRoot); err != nil {
		return &RollbackError{TargetRoot: targetRoot, Cause: err}
	}
	return nil
}
