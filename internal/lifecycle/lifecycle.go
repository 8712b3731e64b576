// Package lifecycle implements the install/uninstall state machines. Every
// step reports its own outcome; failures are either tolerated with a warning
// (package manager exits, service manager calls, removal of missing paths)
// or abort the run (missing runtime, filesystem provisioning errors). No
// step fails silently.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sebastianaldrin/tux-agent/internal/appdirs"
	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

// ErrRuntimeMissing aborts install when the product's language runtime is
// absent. It maps to exit code 1 at the CLI boundary.
var ErrRuntimeMissing = errors.New("python3 runtime not found on PATH")

// Status classifies a step outcome.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarn     Status = "warn"
	StatusSkipped  Status = "skipped"
	StatusDeclined Status = "declined"
	StatusFatal    Status = "fatal"
)

// StepRecord is one step's reported outcome.
type StepRecord struct {
	Step    string
	Status  Status
	Message string
}

// Outcome is a terminal state of a lifecycle run.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"

	OutcomeCancelledAtGate1 Outcome = "cancelled-at-gate-1"
	OutcomeDataPreserved    Outcome = "completed-data-preserved"
	OutcomeDataDeleted      Outcome = "completed-data-deleted"
)

// Result collects the step records and the terminal state of a run.
type Result struct {
	Outcome Outcome
	Records []StepRecord
}

// Options wires the lifecycle to its collaborators. Runner and Confirm are
// required; Report is optional.
type Options struct {
	Runner sysexec.Runner
	// Confirm blocks on an operator decision. It is the only suspension
	// point in a run.
	Confirm func(prompt string) (bool, error)
	// Report observes each step record as it is produced.
	Report func(StepRecord)
	Paths  appdirs.Paths
	// PayloadRoot is the project tree containing src/, config/,
	// extensions/ and requirements.txt.
	PayloadRoot string
}

func (o Options) validate() error {
	if o.Runner == nil {
		return errors.New("lifecycle: runner is required")
	}
	if o.Confirm == nil {
		return errors.New("lifecycle: confirm is required")
	}
	return nil
}

func (r *Result) add(opts Options, step string, status Status, message string) {
	rec := StepRecord{Step: step, Status: status, Message: message}
	r.Records = append(r.Records, rec)
	switch status {
	case StatusWarn:
		slog.Warn(step, "message", message)
	case StatusFatal:
		slog.Error(step, "message", message)
	default:
		slog.Debug(step, "status", string(status), "message", message)
	}
	if opts.Report != nil {
		opts.Report(rec)
	}
}

func checkPayload(root string) error {
	if root == "" {
		return errors.New("payload root is empty")
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("payload root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("payload root %s is not a directory", root)
	}
	src, err := os.Stat(filepath.Join(root, "src"))
	if err != nil || !src.IsDir() {
		return fmt.Errorf("payload root %s has no src directory", root)
	}
	return nil
}

// context check shared by the long-running loops.
func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
