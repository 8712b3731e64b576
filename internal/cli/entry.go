// Package cli wires the lifecycle manager to its command-line surface:
// tuxsetup install | uninstall | status.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sebastianaldrin/tux-agent/internal/appdirs"
	"github.com/sebastianaldrin/tux-agent/internal/identity"
	"github.com/sebastianaldrin/tux-agent/internal/lifecycle"
	"github.com/sebastianaldrin/tux-agent/internal/logging"
	"github.com/sebastianaldrin/tux-agent/internal/runenv"
)

// Run executes the CLI with dependencies wired to the real host.
func Run(args []string, version string) int {
	return RunWith(context.Background(), DefaultDependencies(version), args)
}

// RunWith executes the CLI with explicit dependencies and maps errors to
// exit codes: 0 for success and operator cancellation, 1 otherwise.
func RunWith(ctx context.Context, deps Dependencies, args []string) int {
	closeLogs, err := logging.Init(identity.SetupCLIName, deps.Version)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "error:", err)
		return 1
	}
	defer func() { _ = closeLogs() }()

	app := buildApp(deps)
	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, lifecycle.ErrRuntimeMissing) {
			fmt.Fprintln(deps.Stderr, "error: python3 is required; install it with your package manager and re-run")
			return 1
		}
		fmt.Fprintln(deps.Stderr, "error:", err)
		return 1
	}
	return 0
}

func buildApp(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:      identity.SetupCLIName,
		Usage:     "install or remove the " + identity.BrandName + " desktop assistant",
		Version:   deps.Version,
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
		Commands: []*cli.Command{
			installCommand(deps),
			uninstallCommand(deps),
			statusCommand(deps),
		},
	}
}

func lifecycleOptions(deps Dependencies) (lifecycle.Options, error) {
	paths, err := appdirs.Resolve()
	if err != nil {
		return lifecycle.Options{}, err
	}
	payload := runenv.PayloadDir()
	if payload == "" {
		payload, err = os.Getwd()
		if err != nil {
			return lifecycle.Options{}, fmt.Errorf("resolve working directory: %w", err)
		}
	}
	// One buffered reader for the whole run: a fresh reader per prompt would
	// drop input buffered past the first line.
	stdin := bufio.NewReader(deps.Stdin)
	return lifecycle.Options{
		Runner: deps.Runner,
		Confirm: func(prompt string) (bool, error) {
			return PromptConfirm(stdin, deps.Stdout, prompt)
		},
		Report: func(rec lifecycle.StepRecord) {
			fmt.Fprintln(deps.Stdout, renderRecord(rec))
		},
		Paths:       paths,
		PayloadRoot: payload,
	}, nil
}

func installCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "install " + identity.BrandName + " on this host",
		Action: func(ctx context.Context, _ *cli.Command) error {
			opts, err := lifecycleOptions(deps)
			if err != nil {
				return err
			}
			res, err := lifecycle.Install(ctx, opts)
			printOutcome(deps, "install", res)
			return err
		},
	}
}

func uninstallCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "uninstall",
		Usage: "remove " + identity.BrandName + " from this host",
		Action: func(ctx context.Context, _ *cli.Command) error {
			opts, err := lifecycleOptions(deps)
			if err != nil {
				return err
			}
			res, err := lifecycle.Uninstall(ctx, opts)
			printOutcome(deps, "uninstall", res)
			return err
		},
	}
}

func printOutcome(deps Dependencies, verb string, res lifecycle.Result) {
	switch res.Outcome {
	case lifecycle.OutcomeCompleted:
		fmt.Fprintf(deps.Stdout, "\n%s %s completed\n", identity.BrandName, verb)
	case lifecycle.OutcomeDataPreserved:
		fmt.Fprintf(deps.Stdout, "\n%s removed; your data was preserved\n", identity.BrandName)
	case lifecycle.OutcomeDataDeleted:
		fmt.Fprintf(deps.Stdout, "\n%s removed, including all user data\n", identity.BrandName)
	case lifecycle.OutcomeCancelled, lifecycle.OutcomeCancelledAtGate1:
		fmt.Fprintf(deps.Stdout, "\n%s cancelled; nothing changed\n", verb)
	}
}
