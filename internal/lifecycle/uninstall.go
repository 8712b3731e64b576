package lifecycle

import (
	"context"

	"github.com/sebastianaldrin/tux-agent/internal/identity"
	"github.com/sebastianaldrin/tux-agent/internal/manifest"
	"github.com/sebastianaldrin/tux-agent/internal/provision"
	"github.com/sebastianaldrin/tux-agent/internal/sysd"
)

// Uninstall runs the two-gate removal state machine. Gate 1 guards the whole
// operation: declining exits cleanly with zero side effects. Once the removal
// phase starts it runs to completion, best-effort. Gate 2 separately guards
// user config/data/cache: uninstalling the program never implicitly destroys
// conversation history.
func Uninstall(ctx context.Context, opts Options) (Result, error) {
	res := Result{Outcome: OutcomeFailed}
	if err := opts.validate(); err != nil {
		return res, err
	}

	ok, err := opts.Confirm("Remove " + identity.BrandName + " from this system?")
	if err != nil {
		return res, err
	}
	if !ok {
		res.add(opts, "confirm removal", StatusDeclined, "nothing changed")
		res.Outcome = OutcomeCancelledAtGate1
		return res, nil
	}

	// Stop and disable first so nothing re-activates the daemon while its
	// files are being removed. "Not running" and "not found" are non-errors.
	mgr := sysd.NewManager(opts.Runner, identity.UnitName, opts.Paths.UnitPath())
	if err := mgr.Stop(ctx); err != nil {
		res.add(opts, "service stop", StatusWarn, err.Error())
	} else {
		res.add(opts, "service stop", StatusOK, "")
	}
	if err := mgr.Disable(ctx); err != nil {
		res.add(opts, "service disable", StatusWarn, err.Error())
	} else {
		res.add(opts, "service disable", StatusOK, "")
	}

	entries := manifest.Fixed(opts.Paths)
	for _, entry := range manifest.ProgramEntries(entries) {
		if err := ctxErr(ctx); err != nil {
			return res, err
		}
		removeEntry(ctx, opts, &res, entry)
	}

	if err := mgr.DaemonReload(ctx); err != nil {
		res.add(opts, "service reload", StatusWarn, err.Error())
	} else {
		res.add(opts, "service reload", StatusOK, "")
	}

	ok, err = opts.Confirm("Also delete your " + identity.BrandName + " data (conversations, preferences, cache)?")
	if err != nil {
		return res, err
	}
	if !ok {
		res.add(opts, "user data", StatusDeclined, "preserved")
		res.Outcome = OutcomeDataPreserved
		return res, nil
	}
	for _, entry := range manifest.UserDataEntries(entries) {
		removeEntry(ctx, opts, &res, entry)
	}
	res.Outcome = OutcomeDataDeleted
	return res, nil
}

// removeEntry deletes one manifest path, best-effort: absence of the target
// is not an error, and failures are reported as warnings so the remaining
// entries still get removed.
func removeEntry(ctx context.Context, opts Options, res *Result, entry manifest.Entry) {
	var err error
	if entry.Domain == manifest.DomainSystem {
		err = provision.RemoveSystemPath(ctx, opts.Runner, entry.Dest)
	} else {
		err = provision.RemoveUserPath(entry.Dest)
	}
	if err != nil {
		res.add(opts, "remove "+entry.Name, StatusWarn, err.Error())
		return
	}
	res.add(opts, "remove "+entry.Name, StatusOK, entry.Dest)
}
