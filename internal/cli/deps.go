package cli

import (
	"io"
	"os"

	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

// Dependencies provides external services for CLI handlers so commands stay
// testable without a real terminal or host.
type Dependencies struct {
	Version string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Runner sysexec.Runner
}

// DefaultDependencies returns dependencies wired to the real host.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version: version,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Runner:  &sysexec.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
	}
}
