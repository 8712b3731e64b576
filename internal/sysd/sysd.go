// Package sysd drives the user's service manager for the assistant daemon
// unit. All calls go through the sysexec boundary; the daemon is enabled but
// never force-started, so it comes up at next graphical login or on first
// bus request.
package sysd

import (
	"context"
	"strings"

	"github.com/sebastianaldrin/tux-agent/internal/provision"
	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

// State captures the service lifecycle position.
type State string

const (
	StateAbsent            State = "absent"
	StateInstalledDisabled State = "installed-disabled"
	StateEnabledStopped    State = "installed-enabled-stopped"
	StateEnabledRunning    State = "installed-enabled-running"
)

// Manager wraps systemctl --user for a single unit.
type Manager struct {
	runner   sysexec.Runner
	unit     string
	unitPath string
}

func NewManager(runner sysexec.Runner, unit, unitPath string) *Manager {
	return &Manager{runner: runner, unit: unit, unitPath: unitPath}
}

// DaemonReload refreshes the unit cache after unit files change.
func (m *Manager) DaemonReload(ctx context.Context) error {
	return m.runner.Run(ctx, "systemctl", "--user", "daemon-reload")
}

// Enable marks the unit to activate at the next graphical login.
func (m *Manager) Enable(ctx context.Context) error {
	return m.runner.Run(ctx, "systemctl", "--user", "enable", m.unit)
}

// Disable removes the unit from the activation graph. Callers tolerate
// failure: the unit may never have been enabled.
func (m *Manager) Disable(ctx context.Context) error {
	return m.runner.Run(ctx, "systemctl", "--user", "disable", m.unit)
}

// Stop halts a running instance. Callers tolerate "not running".
func (m *Manager) Stop(ctx context.Context) error {
	return m.runner.Run(ctx, "systemctl", "--user", "stop", m.unit)
}

// State inspects the unit file and the service manager to classify the
// service. Inspection failures degrade to the most conservative state rather
// than erroring: state is advisory, not load-bearing.
func (m *Manager) State(ctx context.Context) State {
	present, err := provision.PathExists(m.unitPath)
	if err != nil || !present {
		return StateAbsent
	}
	enabled, err := m.runner.Output(ctx, "systemctl", "--user", "is-enabled", m.unit)
	if err != nil || strings.TrimSpace(enabled) != "enabled" {
		return StateInstalledDisabled
	}
	active, err := m.runner.Output(ctx, "systemctl", "--user", "is-active", m.unit)
	if err == nil && strings.TrimSpace(active) == "active" {
		return StateEnabledRunning
	}
	return StateEnabledStopped
}
