package rename

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// BatchError reports a failed batch: which operation failed and which
// operations had been applied (and were rolled back) before it.
type BatchError struct {
	Failed     Operation
	RolledBack []string // source paths restored during rollback
	Cause      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("rename %s: %v (rolled back %d applied operations)",
		e.Failed.Source, e.Cause, len(e.RolledBack))
}

func (e *BatchError) Unwrap() error { return e.Cause }

// Executor applies rename plans to the filesystem. A batch is
// all-or-nothing: any failure rolls back the operations already applied,
// in reverse order, before the error is surfaced.
type Executor struct {
	// DryRun leaves the filesystem untouched; Apply only validates.
	DryRun bool

	log *slog.Logger
}

// NewExecutor creates an executor.
func NewExecutor(log *slog.Logger) *Executor {
	return &Executor{log: log}
}

// Apply executes the plan's planned operations sequentially, marking each
// APPLIED as it lands. Self-renames are no-ops. Cancellation mid-batch
// takes the same reversal path as a failure.
func (e *Executor) Apply(ctx context.Context, plan *Plan) error {
	if e.DryRun {
		return nil
	}

	var applied []int // indexes of operations that changed the filesystem

	for i := range plan.Operations {
		op := &plan.Operations[i]
		if op.Status != StatusPlanned {
			continue
		}

		if err := ctx.Err(); err != nil {
			return e.fail(plan, i, applied, err)
		}

		if op.Noop() {
			op.Status = StatusApplied
			continue
		}

		if err := e.preflight(op); err != nil {
			return e.fail(plan, i, applied, err)
		}

		if err := os.Rename(op.Source, op.Destination); err != nil {
			return e.fail(plan, i, applied, err)
		}

		e.log.Info("renamed", "from", op.Source, "to", op.Destination)
		op.Status = StatusApplied
		applied = append(applied, i)
	}

	return nil
}

// preflight verifies the source still exists and the destination has not
// been created externally since planning.
func (e *Executor) preflight(op *Operation) error {
	if _, err := os.Stat(op.Source); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceMissing, err)
	}
	if _, err := os.Lstat(op.Destination); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, op.Destination)
	}
	return nil
}

// fail marks the failed operation, rolls back applied operations in
// reverse order, marks the remainder skipped, and wraps everything in a
// BatchError.
func (e *Executor) fail(plan *Plan, failedIdx int, applied []int, cause error) error {
	failed := &plan.Operations[failedIdx]
	failed.Status = StatusFailed
	failed.Err = cause

	for j := failedIdx + 1; j < len(plan.Operations); j++ {
		if plan.Operations[j].Status == StatusPlanned {
			plan.Operations[j].Status = StatusSkipped
		}
	}

	var rolledBack []string
	for k := len(applied) - 1; k >= 0; k-- {
		op := &plan.Operations[applied[k]]
		if err := os.Rename(op.Destination, op.Source); err != nil {
			// Nothing sane left to do beyond reporting it.
			e.log.Error("rollback failed", "from", op.Destination, "to", op.Source, "error", err)
			continue
		}
		op.Status = StatusPlanned
		rolledBack = append(rolledBack, op.Source)
	}

	e.log.Warn("batch aborted", "failed", failed.Source, "rolled_back", len(rolledBack), "error", cause)

	return &BatchError{Failed: *failed, RolledBack: rolledBack, Cause: cause}
}
