package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

// InstallPythonDeps installs the product's python dependencies with pip for
// the invoking user. When the payload ships a requirements.txt it wins;
// otherwise the explicit fallback list from packages.yaml is used.
func InstallPythonDeps(ctx context.Context, runner sysexec.Runner, payloadRoot string) error {
	requirements := filepath.Join(payloadRoot, "requirements.txt")
	if _, err := os.Stat(requirements); err == nil {
		return runner.Run(ctx, "python3", "-m", "pip", "install", "--user", "-r", requirements)
	}
	fallback, err := PythonFallback()
	if err != nil {
		return err
	}
	if len(fallback) == 0 {
		return fmt.Errorf("no python fallback packages configured")
	}
	args := append([]string{"-m", "pip", "install", "--user"}, fallback...)
	return runner.Run(ctx, "python3", args...)
}
