// Package generate executes compiled operation plans against a target
// directory, with strict sequential ordering, stop-at-first-failure, and
// best-effort rollback of the partially created tree.
package generate

import (
	"time"

	"github.com/google/uuid"
)

// Status is the terminal state of one generation run.
type Status int

const (
	// StatusPending means the run has not finished yet.
	StatusPending Status = iota
	// StatusSuccess means every operation completed.
	StatusSuccess
	// StatusRolledBack means execution failed and the target was removed.
	StatusRolledBack
	// StatusRollbackFailed means execution failed and cleanup also failed.
	StatusRollbackFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRolledBack:
		return "failed, rolled back"
	case StatusRollbackFailed:
		return "failed, rollback failed"
	default:
		return "pending"
	}
}

// Session tracks one executor run. It exists only for the lifetime of a
// single Execute call; nothing is persisted between runs.
type Session struct {
	// ID uniquely identifies the run in verbose output.
	ID string
	// TargetRoot is the absolute path generation ran against.
	TargetRoot string
	// Completed is the number of operations that finished.
	Completed int
	// PhaseCompleted counts finished operations per phase name.
	PhaseCompleted map[string]int
	// StartedAt is when the run began.
	StartedAt time.Time
	// Status is the terminal state.
	Status Status
}

func newSession(targetRoot string) *Session {
	return &Session{
		ID:             uuid.NewString(),
		TargetRoot:     targetRoot,
		PhaseCompleted: make(map[string]int),
		StartedAt:      time.Now(),
		Status:         StatusPending,
	}
}
