// Package descriptor renders the static artifacts the installer lays down:
// the user service unit, the D-Bus activation file, the desktop and autostart
// entries, and the interpreter wrapper scripts. These are pure template
// fills with no conditional logic; install regenerates every one of them so
// stale paths never persist across upgrades.
package descriptor

import (
	"fmt"

	"github.com/sebastianaldrin/tux-agent/internal/identity"
)

// SystemdUnit renders the user-level service unit for the assistant daemon.
// The unit binds to the graphical session, restarts on failure with a fixed
// backoff, and is bus-activatable under the well-known name.
func SystemdUnit(daemonExec string) []byte {
	return []byte(fmt.Sprintf(`[Unit]
Description=%s assistant daemon
Documentation=https://github.com/sebastianaldrin/tux-agent
PartOf=graphical-session.target
After=graphical-session.target

[Service]
Type=dbus
BusName=%s
ExecStart=%s
Restart=on-failure
RestartSec=5
Environment=PYTHONUNBUFFERED=1

[Install]
WantedBy=graphical-session.target
`, identity.BrandName, identity.BusName, daemonExec))
}

// BusActivation renders the D-Bus service file mapping the well-known bus
// name to the installed daemon executable.
func BusActivation(daemonExec string) []byte {
	return []byte(fmt.Sprintf(`[D-BUS Service]
Name=%s
Exec=%s
SystemdService=%s
`, identity.BusName, daemonExec, identity.UnitName))
}

// DesktopEntry renders the application launcher for the overlay UI.
func DesktopEntry(overlayExec string) []byte {
	return []byte(fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Linux-native AI assistant
Exec=%s
Icon=%s
Terminal=false
Categories=Utility;System;
Keywords=assistant;ai;desktop;
StartupNotify=false
`, identity.BrandName, overlayExec, identity.AppSlug))
}

// AutostartEntry renders the optional autostart launcher: same entry point as
// the desktop file, delayed at session start and hidden from menus.
func AutostartEntry(overlayExec string) []byte {
	return []byte(fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Start the %s overlay at login
Exec=%s
Terminal=false
NoDisplay=true
X-GNOME-Autostart-enabled=true
X-GNOME-Autostart-Delay=10
`, identity.BrandName, identity.BrandName, overlayExec))
}

// Wrapper renders a thin shell wrapper for one of the installed binaries.
// The wrapper points the interpreter's module search path at the install
// directory so resolution works regardless of the caller's working directory.
func Wrapper(installDir, entryModule string) []byte {
	return []byte(fmt.Sprintf(`#!/bin/sh
# Generated by %s. Do not edit; reinstalling overwrites this file.
export PYTHONPATH="%s${PYTHONPATH:+:$PYTHONPATH}"
exec python3 -m %s "$@"
`, identity.SetupCLIName, installDir, entryModule))
}

// Entry modules for the wrapper scripts, matching the payload layout.
const (
	CLIModule     = "src.cli.tux"
	DaemonModule  = "src.daemon.main"
	OverlayModule = "src.ui.main"
)
