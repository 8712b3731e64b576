// Package provision materializes manifest entries on the filesystem. User
// domain entries use direct file operations; system domain entries shell out
// through the runner under sudo. Every operation is overwrite-safe so
// re-running install converges instead of failing.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

// EnsureUserDir creates a user-owned directory, parents included. An
// existing directory is left untouched.
func EnsureUserDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o755
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	return nil
}

// CopyUserFile copies a single payload file into the user domain,
// overwriting any existing destination.
func CopyUserFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat src: %w", err)
	}
	return copyFile(src, dest, info.Mode().Perm())
}

// CopyUserTree copies a directory tree into the user domain. Existing files
// are overwritten; extra files already at the destination are left alone.
func CopyUserTree(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat src: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", src)
	}
	if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == src {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dest, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(destPath, info.Mode().Perm())
		}
		if d.Type()&os.ModeSymlink != 0 {
			// Payload trees are plain files; skip stray symlinks rather
			// than copying targets outside the payload.
			return nil
		}
		return copyFile(path, destPath, info.Mode().Perm())
	})
}

func copyFile(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open src: %w", err)
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("mkdir dest: %w", err)
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open dest: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	return nil
}

// InstallSystemTree copies a payload tree into a system-owned destination
// through sudo, creating the destination first.
func InstallSystemTree(ctx context.Context, runner sysexec.Runner, src, dest string) error {
	if err := runner.Run(ctx, "sudo", "mkdir", "-p", dest); err != nil {
		return fmt.Errorf("create system dir %s: %w", dest, err)
	}
	if err := runner.Run(ctx, "sudo", "cp", "-a", src+string(filepath.Separator)+".", dest); err != nil {
		return fmt.Errorf("copy tree to %s: %w", dest, err)
	}
	return nil
}

// InstallSystemFile writes rendered content into a system-owned path through
// sudo install, staging it in a user-owned temp file first.
func InstallSystemFile(ctx context.Context, runner sysexec.Runner, data []byte, dest string, mode os.FileMode) error {
	tmp, err := os.CreateTemp("", "tuxsetup-*")
	if err != nil {
		return fmt.Errorf("stage temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	modeArg := fmt.Sprintf("%04o", mode.Perm())
	if err := runner.Run(ctx, "sudo", "install", "-D", "-m", modeArg, name, dest); err != nil {
		return fmt.Errorf("install %s: %w", dest, err)
	}
	return nil
}

// RemoveUserPath deletes a user-owned path recursively. A missing path is
// not an error.
func RemoveUserPath(path string) error {
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// RemoveSystemPath deletes a system-owned path recursively through sudo.
func RemoveSystemPath(ctx context.Context, runner sysexec.Runner, path string) error {
	if err := runner.Run(ctx, "sudo", "rm", "-rf", "--", path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// PathExists reports whether a path exists.
func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
