package appdirs

import (
	"path/filepath"
	"testing"

	"github.com/sebastianaldrin/tux-agent/internal/runenv"
)

func TestResolveDefaultsFollowXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.InstallDir != "/opt/tuxagent" {
		t.Fatalf("InstallDir = %q", p.InstallDir)
	}
	if want := filepath.Join(home, ".config", "systemd", "user"); p.UnitDir != want {
		t.Fatalf("UnitDir = %q, want %q", p.UnitDir, want)
	}
	if want := filepath.Join(home, ".local", "share", "dbus-1", "services"); p.BusServiceDir != want {
		t.Fatalf("BusServiceDir = %q, want %q", p.BusServiceDir, want)
	}
	if want := filepath.Join(home, ".local", "share", "tuxagent", "conversations"); p.ConversationsDir != want {
		t.Fatalf("ConversationsDir = %q, want %q", p.ConversationsDir, want)
	}
	if want := filepath.Join(home, ".cache", "tuxagent"); p.CacheDir != want {
		t.Fatalf("CacheDir = %q, want %q", p.CacheDir, want)
	}
}

func TestResolveHonorsOverrides(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)
	install := filepath.Join(base, "opt")
	t.Setenv(runenv.InstallDirEnv, install)
	data := filepath.Join(base, "data")
	t.Setenv(runenv.DataDirEnv, data)

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if p.InstallDir != install {
		t.Fatalf("InstallDir = %q, want %q", p.InstallDir, install)
	}
	if p.DataDir != data {
		t.Fatalf("DataDir = %q, want %q", p.DataDir, data)
	}
	if want := filepath.Join(data, "conversations"); p.ConversationsDir != want {
		t.Fatalf("ConversationsDir = %q, want %q", p.ConversationsDir, want)
	}
}

func TestResolveXDGEnvWins(t *testing.T) {
	home := t.TempDir()
	cfg := filepath.Join(home, "xdg-config")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", cfg)

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if want := filepath.Join(cfg, "tuxagent"); p.ConfigDir != want {
		t.Fatalf("ConfigDir = %q, want %q", p.ConfigDir, want)
	}
	if want := filepath.Join(cfg, "autostart"); p.AutostartDir != want {
		t.Fatalf("AutostartDir = %q, want %q", p.AutostartDir, want)
	}
}
