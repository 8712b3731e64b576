// Package sysexectest provides an in-memory Runner for tests.
package sysexectest

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Call records one command invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call the way it would appear on a shell line.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner is a fake sysexec.Runner that records calls and returns scripted
// results. Keys for Errs/Outputs match on the full command line first, then
// on any prefix of it.
type Runner struct {
	mu      sync.Mutex
	calls   []Call
	Errs    map[string]error
	Outputs map[string]string
	// Missing lists executable names LookPath reports as absent.
	Missing map[string]bool
}

func New() *Runner {
	return &Runner{
		Errs:    map[string]error{},
		Outputs: map[string]string{},
		Missing: map[string]bool{},
	}
}

func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	line := r.record(name, args)
	if err, ok := r.lookupErr(line); ok {
		return err
	}
	return nil
}

func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	line := r.record(name, args)
	if err, ok := r.lookupErr(line); ok {
		return "", err
	}
	if out, ok := r.lookupOutput(line); ok {
		return out, nil
	}
	return "", nil
}

func (r *Runner) LookPath(name string) (string, error) {
	if r.Missing[name] {
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}
	return "/usr/bin/" + name, nil
}

// Calls returns a copy of every recorded invocation.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Lines returns the recorded invocations as shell-style lines.
func (r *Runner) Lines() []string {
	calls := r.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}

func (r *Runner) record(name string, args []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := Call{Name: name, Args: append([]string(nil), args...)}
	r.calls = append(r.calls, call)
	return call.String()
}

func (r *Runner) lookupErr(line string) (error, bool) {
	for key, err := range r.Errs {
		if matches(line, key) {
			return err, err != nil
		}
	}
	return nil, false
}

func (r *Runner) lookupOutput(line string) (string, bool) {
	for key, out := range r.Outputs {
		if matches(line, key) {
			return out, true
		}
	}
	return "", false
}

func matches(line, key string) bool {
	return line == key || strings.HasPrefix(line, key+" ")
}
