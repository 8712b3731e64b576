package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sebastianaldrin/tux-agent/internal/appdirs"
	"github.com/sebastianaldrin/tux-agent/internal/hostinfo"
	"github.com/sebastianaldrin/tux-agent/internal/identity"
	"github.com/sebastianaldrin/tux-agent/internal/manifest"
	"github.com/sebastianaldrin/tux-agent/internal/provision"
	"github.com/sebastianaldrin/tux-agent/internal/sysd"
)

func statusCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "report the detected host and what is currently installed",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runStatus(ctx, deps)
		},
	}
}

// runStatus is read-only: it inspects, never mutates.
func runStatus(ctx context.Context, deps Dependencies) error {
	paths, err := appdirs.Resolve()
	if err != nil {
		return err
	}
	profile := hostinfo.Detect(ctx, deps.Runner)

	host := hostinfo.Label(profile.Family)
	if profile.PrettyName != "" {
		host = profile.PrettyName + " (" + host + ")"
	}
	fmt.Fprintf(deps.Stdout, "Host:    %s\n", host)
	python := profile.PythonPath
	if python == "" {
		python = styleFail.Render("missing")
	}
	fmt.Fprintf(deps.Stdout, "Python:  %s\n", python)

	mgr := sysd.NewManager(deps.Runner, identity.UnitName, paths.UnitPath())
	fmt.Fprintf(deps.Stdout, "Service: %s\n", mgr.State(ctx))

	fmt.Fprintln(deps.Stdout, "Artifacts:")
	for _, entry := range manifest.Fixed(paths) {
		present, err := provision.PathExists(entry.Dest)
		mark := styleFail.Render("✗")
		switch {
		case err != nil:
			mark = styleWarn.Render("?")
		case present:
			mark = styleOK.Render("✓")
		}
		fmt.Fprintf(deps.Stdout, "  %s %-18s %s\n", mark, entry.Name, entry.Dest)
	}
	return nil
}
