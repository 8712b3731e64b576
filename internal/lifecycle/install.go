package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebastianaldrin/tux-agent/internal/atomicfile"
	"github.com/sebastianaldrin/tux-agent/internal/hostinfo"
	"github.com/sebastianaldrin/tux-agent/internal/identity"
	"github.com/sebastianaldrin/tux-agent/internal/manifest"
	"github.com/sebastianaldrin/tux-agent/internal/pkgmgr"
	"github.com/sebastianaldrin/tux-agent/internal/provision"
	"github.com/sebastianaldrin/tux-agent/internal/sysd"
)

// Install runs the full install sequence: runtime gate, host detection,
// dependency provisioning, file provisioning, descriptor generation, service
// activation. Re-running converges: every operation is overwrite-safe.
func Install(ctx context.Context, opts Options) (Result, error) {
	res := Result{Outcome: OutcomeFailed}
	if err := opts.validate(); err != nil {
		return res, err
	}

	profile := hostinfo.Detect(ctx, opts.Runner)
	if profile.PythonPath == "" {
		res.add(opts, "runtime check", StatusFatal, "python3 not found; install it and re-run")
		return res, ErrRuntimeMissing
	}
	res.add(opts, "runtime check", StatusOK, profile.PythonPath)

	if err := checkPayload(opts.PayloadRoot); err != nil {
		res.add(opts, "payload check", StatusFatal, err.Error())
		return res, err
	}
	res.add(opts, "payload check", StatusOK, opts.PayloadRoot)

	// Unknown hosts may proceed, but only after the operator opts into the
	// manual-dependency path. Declining aborts before any mutation.
	if profile.Family == hostinfo.FamilyUnknown {
		ok, err := opts.Confirm("Could not detect a supported distribution. Continue without native packages (you must install GTK/D-Bus dependencies yourself)?")
		if err != nil {
			return res, err
		}
		if !ok {
			res.add(opts, "host detection", StatusDeclined, "unsupported distribution")
			res.Outcome = OutcomeCancelled
			return res, nil
		}
		res.add(opts, "host detection", StatusWarn, "unknown distribution; continuing on the manual-dependency path")
	} else {
		res.add(opts, "host detection", StatusOK, hostinfo.Label(profile.Family))
	}

	installNativePackages(ctx, opts, &res, profile.Family)

	// Python deps are best-effort for the same reason native packages are:
	// the environment may already satisfy them.
	if err := pkgmgr.InstallPythonDeps(ctx, opts.Runner, opts.PayloadRoot); err != nil {
		res.add(opts, "python packages", StatusWarn, err.Error())
	} else {
		res.add(opts, "python packages", StatusOK, "")
	}

	entries := manifest.Fixed(opts.Paths)
	for _, entry := range entries {
		if err := ctxErr(ctx); err != nil {
			return res, err
		}
		if err := applyEntry(ctx, opts, &res, entry); err != nil {
			res.add(opts, entry.Name, StatusFatal, err.Error())
			return res, err
		}
	}

	activateService(ctx, opts, &res)

	res.Outcome = OutcomeCompleted
	return res, nil
}

func installNativePackages(ctx context.Context, opts Options, res *Result, family hostinfo.Family) {
	prov, ok := pkgmgr.NewProvisioner(family, opts.Runner)
	if !ok {
		res.add(opts, "native packages", StatusSkipped, "no package manager for this host")
		return
	}
	pkgs, err := pkgmgr.PackagesFor(family)
	if err != nil {
		res.add(opts, "native packages", StatusWarn, err.Error())
		return
	}
	if err := prov.InstallPackages(ctx, pkgs); err != nil {
		// Nonzero exits are expected when packages are already present;
		// the run continues either way.
		res.add(opts, "native packages", StatusWarn, fmt.Sprintf("package manager reported an error (packages may already be installed): %v", err))
		return
	}
	res.add(opts, "native packages", StatusOK, fmt.Sprintf("%d packages", len(pkgs)))
}

func applyEntry(ctx context.Context, opts Options, res *Result, entry manifest.Entry) error {
	switch entry.Kind {
	case manifest.KindDir:
		if err := provision.EnsureUserDir(entry.Dest, os.FileMode(entry.Mode)); err != nil {
			return err
		}
	case manifest.KindTree:
		src := filepath.Join(opts.PayloadRoot, entry.Source)
		if entry.Domain == manifest.DomainSystem {
			if err := provision.InstallSystemTree(ctx, opts.Runner, src, entry.Dest); err != nil {
				return err
			}
		} else if err := provision.CopyUserTree(src, entry.Dest); err != nil {
			return err
		}
	case manifest.KindFile:
		src := filepath.Join(opts.PayloadRoot, entry.Source)
		if exists, err := provision.PathExists(src); err != nil {
			return err
		} else if !exists {
			if entry.Optional {
				res.add(opts, entry.Name, StatusSkipped, "payload source absent")
				return nil
			}
			return fmt.Errorf("payload source %s missing", src)
		}
		if err := provision.CopyUserFile(src, entry.Dest); err != nil {
			return err
		}
	case manifest.KindGenerated:
		data := entry.Generate()
		if entry.Domain == manifest.DomainSystem {
			if err := provision.InstallSystemFile(ctx, opts.Runner, data, entry.Dest, os.FileMode(entry.Mode)); err != nil {
				return err
			}
		} else if err := atomicfile.Save(entry.Dest, data, os.FileMode(entry.Mode)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown manifest kind %q", entry.Kind)
	}
	res.add(opts, entry.Name, StatusOK, entry.Dest)
	return nil
}

func activateService(ctx context.Context, opts Options, res *Result) {
	mgr := sysd.NewManager(opts.Runner, identity.UnitName, opts.Paths.UnitPath())
	if err := mgr.DaemonReload(ctx); err != nil {
		res.add(opts, "service reload", StatusWarn, err.Error())
	} else {
		res.add(opts, "service reload", StatusOK, "")
	}
	// Enable only: the daemon starts at next graphical login or on first
	// bus request. Enable failures are tolerated (already enabled).
	if err := mgr.Enable(ctx); err != nil {
		res.add(opts, "service enable", StatusWarn, err.Error())
	} else {
		res.add(opts, "service enable", StatusOK, identity.UnitName)
	}
}
