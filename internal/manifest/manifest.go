// Package manifest declares the fixed set of filesystem targets the
// lifecycle manages. The set is deliberately hardcoded rather than recorded
// at install time: uninstall removes exactly these paths, best-effort,
// whether or not the current binary performed the install.
package manifest

import (
	"path/filepath"

	"github.com/sebastianaldrin/tux-agent/internal/appdirs"
	"github.com/sebastianaldrin/tux-agent/internal/descriptor"
	"github.com/sebastianaldrin/tux-agent/internal/identity"
)

// Domain separates entries by the privilege needed to write them. The two
// domains are never mixed in a single operation: system entries go through
// sudo, user entries stay fully owned by the invoking user.
type Domain string

const (
	DomainSystem Domain = "system"
	DomainUser   Domain = "user"
)

// Kind describes how an entry is materialized.
type Kind string

const (
	// KindTree copies a directory tree from the payload.
	KindTree Kind = "tree"
	// KindFile copies a single payload file.
	KindFile Kind = "file"
	// KindGenerated entries are rendered by the descriptor package.
	KindGenerated Kind = "generated"
	// KindDir entries are bare directories created empty.
	KindDir Kind = "dir"
)

// Entry is one source→destination operation in the fixed manifest.
type Entry struct {
	Name string
	// Source is relative to the payload root; empty for generated and dir
	// entries.
	Source   string
	Dest     string
	Kind     Kind
	Domain   Domain
	Optional bool
	// UserData marks config/data/cache locations that uninstall only
	// removes behind the second confirmation gate.
	UserData bool
	// Mode applies to generated entries (wrappers need the execute bit).
	Mode uint32
	// Generate renders the content for generated entries.
	Generate func() []byte
}

// Fixed returns the manifest for the resolved path set.
func Fixed(paths appdirs.Paths) []Entry {
	daemonExec := paths.BinPath(identity.DaemonBin)
	overlayExec := paths.BinPath(identity.OverlayBin)
	installDir := paths.InstallDir

	return []Entry{
		{
			Name:   "install tree",
			Source: ".",
			Dest:   installDir,
			Kind:   KindTree,
			Domain: DomainSystem,
		},
		{
			Name:     "cli wrapper",
			Dest:     paths.BinPath(identity.CLIBin),
			Kind:     KindGenerated,
			Domain:   DomainSystem,
			Mode:     0o755,
			Generate: func() []byte { return descriptor.Wrapper(installDir, descriptor.CLIModule) },
		},
		{
			Name:     "daemon wrapper",
			Dest:     daemonExec,
			Kind:     KindGenerated,
			Domain:   DomainSystem,
			Mode:     0o755,
			Generate: func() []byte { return descriptor.Wrapper(installDir, descriptor.DaemonModule) },
		},
		{
			Name:     "overlay wrapper",
			Dest:     overlayExec,
			Kind:     KindGenerated,
			Domain:   DomainSystem,
			Mode:     0o755,
			Generate: func() []byte { return descriptor.Wrapper(installDir, descriptor.OverlayModule) },
		},
		{
			Name:     "service unit",
			Dest:     paths.UnitPath(),
			Kind:     KindGenerated,
			Domain:   DomainUser,
			Mode:     0o644,
			Generate: func() []byte { return descriptor.SystemdUnit(daemonExec) },
		},
		{
			Name:     "bus activation",
			Dest:     filepath.Join(paths.BusServiceDir, identity.BusServiceFile),
			Kind:     KindGenerated,
			Domain:   DomainUser,
			Mode:     0o644,
			Generate: func() []byte { return descriptor.BusActivation(daemonExec) },
		},
		{
			Name:     "desktop entry",
			Dest:     filepath.Join(paths.ApplicationsDir, identity.DesktopFile),
			Kind:     KindGenerated,
			Domain:   DomainUser,
			Mode:     0o644,
			Generate: func() []byte { return descriptor.DesktopEntry(overlayExec) },
		},
		{
			Name:     "autostart entry",
			Dest:     filepath.Join(paths.AutostartDir, identity.AutostartFile),
			Kind:     KindGenerated,
			Domain:   DomainUser,
			Optional: true,
			Mode:     0o644,
			Generate: func() []byte { return descriptor.AutostartEntry(overlayExec) },
		},
		{
			Name:     "nautilus plugin",
			Source:   filepath.Join("extensions", "nautilus", identity.NautilusPluginFile),
			Dest:     filepath.Join(paths.NautilusExtDir, identity.NautilusPluginFile),
			Kind:     KindFile,
			Domain:   DomainUser,
			Optional: true,
		},
		{
			// Holds preferences.json and credentials.json; keep it private.
			Name:     "config dir",
			Dest:     paths.ConfigDir,
			Kind:     KindDir,
			Domain:   DomainUser,
			UserData: true,
			Mode:     0o700,
		},
		{
			Name:     "data dir",
			Dest:     paths.DataDir,
			Kind:     KindDir,
			Domain:   DomainUser,
			UserData: true,
			Mode:     0o755,
		},
		{
			Name:     "conversations dir",
			Dest:     paths.ConversationsDir,
			Kind:     KindDir,
			Domain:   DomainUser,
			UserData: true,
			Mode:     0o755,
		},
		{
			Name:     "cache dir",
			Dest:     paths.CacheDir,
			Kind:     KindDir,
			Domain:   DomainUser,
			UserData: true,
			Mode:     0o755,
		},
	}
}

// ProgramEntries filters the manifest down to program artifacts: everything
// uninstall removes unconditionally once the first gate is accepted.
func ProgramEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.UserData {
			out = append(out, e)
		}
	}
	return out
}

// UserDataEntries filters the manifest down to the config/data/cache
// locations guarded by the second uninstall gate.
func UserDataEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.UserData {
			out = append(out, e)
		}
	}
	return out
}
