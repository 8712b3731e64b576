package sysd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sebastianaldrin/tux-agent/internal/sysexec/sysexectest"
)

const unit = "tuxagent-daemon.service"

func writtenUnit(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), unit)
	if err := os.WriteFile(path, []byte("[Unit]\n"), 0o644); err != nil {
		t.Fatalf("write unit: %v", err)
	}
	return path
}

func TestManagerCommandLines(t *testing.T) {
	runner := sysexectest.New()
	m := NewManager(runner, unit, "/nonexistent")
	ctx := context.Background()
	if err := m.DaemonReload(ctx); err != nil {
		t.Fatalf("daemon-reload: %v", err)
	}
	if err := m.Enable(ctx); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := m.Disable(ctx); err != nil {
		t.Fatalf("disable: %v", err)
	}
	want := []string{
		"systemctl --user daemon-reload",
		"systemctl --user enable " + unit,
		"systemctl --user stop " + unit,
		"systemctl --user disable " + unit,
	}
	if diff := cmp.Diff(want, runner.Lines()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestStateAbsentWithoutUnitFile(t *testing.T) {
	m := NewManager(sysexectest.New(), unit, filepath.Join(t.TempDir(), "missing"))
	if got := m.State(context.Background()); got != StateAbsent {
		t.Fatalf("state = %s, want absent", got)
	}
}

func TestStateDisabled(t *testing.T) {
	runner := sysexectest.New()
	runner.Errs["systemctl --user is-enabled"] = errors.New("exit status 1")
	m := NewManager(runner, unit, writtenUnit(t))
	if got := m.State(context.Background()); got != StateInstalledDisabled {
		t.Fatalf("state = %s, want installed-disabled", got)
	}
}

func TestStateEnabledStopped(t *testing.T) {
	runner := sysexectest.New()
	runner.Outputs["systemctl --user is-enabled"] = "enabled"
	runner.Errs["systemctl --user is-active"] = errors.New("exit status 3")
	m := NewManager(runner, unit, writtenUnit(t))
	if got := m.State(context.Background()); got != StateEnabledStopped {
		t.Fatalf("state = %s, want installed-enabled-stopped", got)
	}
}

func TestStateEnabledRunning(t *testing.T) {
	runner := sysexectest.New()
	runner.Outputs["systemctl --user is-enabled"] = "enabled"
	runner.Outputs["systemctl --user is-active"] = "active"
	m := NewManager(runner, unit, writtenUnit(t))
	if got := m.State(context.Background()); got != StateEnabledRunning {
		t.Fatalf("state = %s, want installed-enabled-running", got)
	}
}
