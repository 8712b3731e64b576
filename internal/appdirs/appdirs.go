// Package appdirs resolves every filesystem location the installer manages.
// User-level locations follow the XDG base directory spec; system-level
// locations are fixed. Each one can be overridden through runenv for tests.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebastianaldrin/tux-agent/internal/identity"
	"github.com/sebastianaldrin/tux-agent/internal/runenv"
)

const (
	defaultInstallDir = "/opt/tuxagent"
	defaultBinDir     = "/usr/local/bin"
)

// Paths holds every destination root the install/uninstall lifecycle touches.
// Resolved once at startup; immutable afterwards.
type Paths struct {
	// System domain (requires elevated privilege to write).
	InstallDir string
	BinDir     string

	// User domain (owned by the invoking user).
	UnitDir         string
	BusServiceDir   string
	ApplicationsDir string
	AutostartDir    string
	NautilusExtDir  string

	// User data (only removed behind the second uninstall gate).
	ConfigDir        string
	DataDir          string
	ConversationsDir string
	CacheDir         string
}

// Resolve computes the full path set for the current user and environment.
func Resolve() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("resolve home dir: %w", err)
	}
	configRoot := xdgRoot("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataRoot := xdgRoot("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheRoot := xdgRoot("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	p := Paths{
		InstallDir:      fallback(runenv.InstallDir(), defaultInstallDir),
		BinDir:          fallback(runenv.BinDir(), defaultBinDir),
		UnitDir:         fallback(runenv.UnitDir(), filepath.Join(configRoot, "systemd", "user")),
		BusServiceDir:   fallback(runenv.BusServiceDir(), filepath.Join(dataRoot, "dbus-1", "services")),
		ApplicationsDir: fallback(runenv.ApplicationsDir(), filepath.Join(dataRoot, "applications")),
		AutostartDir:    fallback(runenv.AutostartDir(), filepath.Join(configRoot, "autostart")),
		NautilusExtDir:  fallback(runenv.NautilusDir(), filepath.Join(dataRoot, "nautilus-python", "extensions")),
		ConfigDir:       fallback(runenv.ConfigDir(), filepath.Join(configRoot, identity.AppSlug)),
		DataDir:         fallback(runenv.DataDir(), filepath.Join(dataRoot, identity.AppSlug)),
		CacheDir:        fallback(runenv.CacheDir(), filepath.Join(cacheRoot, identity.AppSlug)),
	}
	p.ConversationsDir = filepath.Join(p.DataDir, "conversations")
	return p, nil
}

// BinPath returns the installed wrapper path for one of the product binaries.
func (p Paths) BinPath(name string) string {
	return filepath.Join(p.BinDir, name)
}

// UnitPath returns the user service unit destination.
func (p Paths) UnitPath() string {
	return filepath.Join(p.UnitDir, identity.UnitName)
}

func xdgRoot(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
