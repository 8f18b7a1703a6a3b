package generate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tinderbox-cli/tinderbox/internal/output"
	"github.com/tinderbox-cli/tinderbox/internal/plan"
	"github.com/tinderbox-cli/tinderbox/internal/render"
)

// Executor runs an operation plan against a target directory.
//
// Execution is strictly single-threaded and sequential: later operations may
// depend on directories created by earlier ones, and a half-applied plan
// would leave a project whose manifest and source tree disagree about which
// features exist. The executor therefore stops at the first failing
// operation and rolls the whole target back.
type Executor struct {
	renderer *render.Renderer
	reporter output.Reporter

	// Filesystem primitives, injectable for tests.
	writeFile func(path string, data []byte, perm fs.FileMode) error
	mkdirAll  func(path string, perm fs.FileMode) error
	rollback  func(targetRoot string) error
	static    func(source string) ([]byte, error)
}

// NewExecutor creates an executor with real filesystem primitives.
func NewExecutor(renderer *render.Renderer, reporter output.Reporter) *Executor {
	if reporter == nil {
		reporter = output.NilReporter{}
	}
	return &Executor{
		renderer:  renderer,
		reporter:  reporter,
		writeFile: os.WriteFile,
		mkdirAll:  os.MkdirAll,
		rollback:  Rollback,
		static:    render.Static,
	}
}

// Execute runs the plan in order against targetRoot.
//
// On the first failing operation it stops, rolls back the target directory,
// and returns the session in its terminal state together with an *Error
// whose primary cause is the failed operation. A rollback failure is
// attached as secondary context and never masks the original error.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, targetRoot string) (*Session, error) {
	session := newSession(targetRoot)

	opIndex := 0
	for _, phase := range p.Phases {
		e.reporter.PhaseStart(phase.Name, len(phase.Ops))

		for _, op := range phase.Ops {
			if err := e.perform(ctx, op, targetRoot); err != nil {
				e.reporter.Error(op.Description(), err)
				return e.fail(session, opIndex, phase.Name, op, err)
			}

			session.Completed++
			session.PhaseCompleted[phase.Name]++
			opIndex++
			e.reporter.ItemDone(op.Description())
		}
	}

	session.Status = StatusSuccess
	e.reporter.Summary(fmt.Sprintf("Generated %d files in %s", session.Completed, targetRoot))
	return session, nil
}

// perform applies a single operation, lazily creating parent directories.
func (e *Executor) perform(ctx context.Context, op plan.Operation, targetRoot string) error {
	dest := filepath.Join(targetRoot, filepath.FromSlash(op.Dest()))

	switch op := op.(type) {
	case plan.RenderOp:
		content, err := e.renderer.Render(op.TemplateID, op.Context)
		if err != nil {
			return err
		}
		if err := e.mkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return e.writeFile(dest, content, 0644)

	case plan.CopyOp:
		content, err := e.static(op.Source)
		if err != nil {
			return err
		}
		if err := e.mkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return e.writeFile(dest, content, 0644)

	case plan.MkdirOp:
		return e.mkdirAll(dest, 0755)

	default:
		return fmt.Errorf("unknown operation type %T", op)
	}
}

// fail rolls back the target and builds the terminal error.
func (e *Executor) fail(session *Session, opIndex int, phase string, op plan.Operation, cause error) (*Session, error) {
	genErr := &Error{
		Category:    CategoryExecution,
		OpIndex:     opIndex,
		Description: op.Description(),
		Phase:       phase,
		Cause:       cause,
	}

	if err := e.rollback(session.TargetRoot); err != nil {
		session.Status = StatusRollbackFailed
		genErr.RollbackErr = err
		genErr.Suggestions = append(genErr.Suggestions,
			fmt.Sprintf("remove the directory %s manually", session.TargetRoot))
		return session, genErr
	}

	session.Status = StatusRolledBack
	return session, genErr
}
