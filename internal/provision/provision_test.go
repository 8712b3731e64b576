package provision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sebastianaldrin/tux-agent/internal/sysexec/sysexectest"
)

func TestEnsureUserDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureUserDir(dir, 0o755); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := EnsureUserDir(dir, 0o755); err != nil {
		t.Fatalf("second: %v", err)
	}
}

func TestCopyUserTreeOverwrites(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "f.py"), []byte("v1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "dest")

	if err := CopyUserTree(src, dest); err != nil {
		t.Fatalf("first copy: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "f.py"), []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := CopyUserTree(src, dest); err != nil {
		t.Fatalf("second copy: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dest, "sub", "f.py"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("content = %q, want v2", got)
	}
}

func TestCopyUserFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "plugin.py")
	if err := os.WriteFile(src, []byte("plugin"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "ext", "plugin.py")
	if err := CopyUserFile(src, dest); err != nil {
		t.Fatalf("copy: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "plugin" {
		t.Fatalf("content = %q", got)
	}
}

func TestInstallSystemTreeCommands(t *testing.T) {
	runner := sysexectest.New()
	if err := InstallSystemTree(context.Background(), runner, "/payload", "/opt/tuxagent"); err != nil {
		t.Fatalf("install tree: %v", err)
	}
	want := []string{
		"sudo mkdir -p /opt/tuxagent",
		"sudo cp -a /payload/. /opt/tuxagent",
	}
	if diff := cmp.Diff(want, runner.Lines()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallSystemFileStagesAndInstalls(t *testing.T) {
	runner := sysexectest.New()
	if err := InstallSystemFile(context.Background(), runner, []byte("#!/bin/sh\n"), "/usr/local/bin/tux", 0o755); err != nil {
		t.Fatalf("install file: %v", err)
	}
	calls := runner.Calls()
	if len(calls) != 1 || calls[0].Name != "sudo" {
		t.Fatalf("calls = %v", runner.Lines())
	}
	args := calls[0].Args
	if args[0] != "install" || args[1] != "-D" || args[2] != "-m" || args[3] != "0755" {
		t.Fatalf("install args = %v", args)
	}
	if args[len(args)-1] != "/usr/local/bin/tux" {
		t.Fatalf("dest arg = %v", args)
	}
}

func TestRemoveUserPathMissingIsFine(t *testing.T) {
	if err := RemoveUserPath(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestRemoveSystemPath(t *testing.T) {
	runner := sysexectest.New()
	if err := RemoveSystemPath(context.Background(), runner, "/opt/tuxagent"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := []string{"sudo rm -rf -- /opt/tuxagent"}
	if diff := cmp.Diff(want, runner.Lines()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}
