// Package sysexec is the single boundary through which the lifecycle manager
// touches external commands (package managers, systemctl, sudo). Everything
// that mutates host state outside the process goes through a Runner so tests
// can substitute a fake.
package sysexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// maxOutputBytes caps captured command output so a chatty package manager
// cannot balloon memory.
const maxOutputBytes = 1 << 20

// Runner executes external commands.
type Runner interface {
	// Run executes a command, streaming its output to the configured writers.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports the absolute path of an executable, or an error if
	// it is not on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands on the real host.
type ExecRunner struct {
	// Stdout and Stderr receive command output when set; otherwise output
	// is discarded (it is still summarized in the error on failure).
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	slog.Debug("exec", "cmd", name, "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	var tail bytes.Buffer
	cmd.Stdout = r.stdout()
	cmd.Stderr = io.MultiWriter(r.stderr(), newCapWriter(&tail, maxOutputBytes))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(tail.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, lastLine(msg))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	slog.Debug("exec", "cmd", name, "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return io.Discard
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return io.Discard
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return s
}

// capWriter stops writing after limit bytes, silently discarding the rest so
// the underlying command never sees a write failure.
type capWriter struct {
	dst   io.Writer
	limit int
	n     int
}

func newCapWriter(dst io.Writer, limit int) *capWriter {
	return &capWriter{dst: dst, limit: limit}
}

func (w *capWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.n
	if remaining <= 0 {
		return len(p), nil
	}
	chunk := p
	if len(chunk) > remaining {
		chunk = chunk[:remaining]
	}
	n, err := w.dst.Write(chunk)
	w.n += n
	if err != nil {
		return n, err
	}
	return len(p), nil
}
