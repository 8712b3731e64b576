// Package pkgmgr provisions native and python dependencies. Each supported
// distribution family gets its own Provisioner variant so the branching lives
// in one constructor instead of leaking across the install flow.
package pkgmgr

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/sebastianaldrin/tux-agent/internal/hostinfo"
	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

//go:embed packages.yaml
var packagesYAML []byte

type dependencySet struct {
	Version  int                   `yaml:"version"`
	Families map[string]familyDeps `yaml:"families"`
	Python   pythonDeps            `yaml:"python"`
}

type familyDeps struct {
	Packages []string `yaml:"packages"`
}

type pythonDeps struct {
	Packages []string `yaml:"packages"`
}

var loadOnce = sync.OnceValues(func() (dependencySet, error) {
	var set dependencySet
	if err := yaml.Unmarshal(packagesYAML, &set); err != nil {
		return dependencySet{}, fmt.Errorf("parse packages.yaml: %w", err)
	}
	if set.Version != 1 {
		return dependencySet{}, fmt.Errorf("unsupported packages.yaml version %d", set.Version)
	}
	return set, nil
})

// PackagesFor returns the native package list for a family.
func PackagesFor(family hostinfo.Family) ([]string, error) {
	set, err := loadOnce()
	if err != nil {
		return nil, err
	}
	deps, ok := set.Families[string(family)]
	if !ok {
		return nil, fmt.Errorf("no package list for family %q", family)
	}
	return append([]string(nil), deps.Packages...), nil
}

// PythonFallback returns the explicit pip package list used when the payload
// ships no requirements manifest.
func PythonFallback() ([]string, error) {
	set, err := loadOnce()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), set.Python.Packages...), nil
}

// Provisioner installs native packages with a family's package manager.
type Provisioner interface {
	Family() hostinfo.Family
	// InstallPackages invokes the native package manager once with the full
	// list. Callers treat a failure as a warning: packages may already be
	// present through other channels.
	InstallPackages(ctx context.Context, names []string) error
}

// NewProvisioner returns the Provisioner for a family, or false when the
// family has no native package manager mapping (FamilyUnknown).
func NewProvisioner(family hostinfo.Family, runner sysexec.Runner) (Provisioner, bool) {
	switch family {
	case hostinfo.FamilyDebian:
		return aptProvisioner{runner: runner}, true
	case hostinfo.FamilyFedora:
		return dnfProvisioner{runner: runner}, true
	case hostinfo.FamilyArch:
		return pacmanProvisioner{runner: runner}, true
	case hostinfo.FamilySuse:
		return zypperProvisioner{runner: runner}, true
	default:
		return nil, false
	}
}

type aptProvisioner struct{ runner sysexec.Runner }

func (p aptProvisioner) Family() hostinfo.Family { return hostinfo.FamilyDebian }

func (p aptProvisioner) InstallPackages(ctx context.Context, names []string) error {
	return sudoRun(ctx, p.runner, append([]string{"apt-get", "install", "-y"}, names...))
}

type dnfProvisioner struct{ runner sysexec.Runner }

func (p dnfProvisioner) Family() hostinfo.Family { return hostinfo.FamilyFedora }

func (p dnfProvisioner) InstallPackages(ctx context.Context, names []string) error {
	return sudoRun(ctx, p.runner, append([]string{"dnf", "install", "-y"}, names...))
}

type pacmanProvisioner struct{ runner sysexec.Runner }

func (p pacmanProvisioner) Family() hostinfo.Family { return hostinfo.FamilyArch }

func (p pacmanProvisioner) InstallPackages(ctx context.Context, names []string) error {
	return sudoRun(ctx, p.runner, append([]string{"pacman", "-S", "--noconfirm", "--needed"}, names...))
}

type zypperProvisioner struct{ runner sysexec.Runner }

func (p zypperProvisioner) Family() hostinfo.Family { return hostinfo.FamilySuse }

func (p zypperProvisioner) InstallPackages(ctx context.Context, names []string) error {
	return sudoRun(ctx, p.runner, append([]string{"zypper", "--non-interactive", "install"}, names...))
}

func sudoRun(ctx context.Context, runner sysexec.Runner, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	return runner.Run(ctx, "sudo", argv...)
}
