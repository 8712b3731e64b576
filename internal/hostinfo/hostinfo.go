// Package hostinfo detects the host distribution family and the presence of
// the language runtime the product depends on. Detection runs once at install
// start; the resulting Profile is treated as immutable.
package hostinfo

import (
	"context"
	"os"
	"strings"

	"github.com/sebastianaldrin/tux-agent/internal/runenv"
	"github.com/sebastianaldrin/tux-agent/internal/sysexec"
)

// Family is a distribution family used to select a dependency set.
type Family string

const (
	FamilyDebian  Family = "debian"
	FamilyFedora  Family = "fedora"
	FamilyArch    Family = "arch"
	FamilySuse    Family = "suse"
	FamilyUnknown Family = "unknown"
)

// Families returns the supported families in stable order.
func Families() []Family {
	return []Family{FamilyDebian, FamilyFedora, FamilyArch, FamilySuse}
}

// Label returns a human-friendly name for a family.
func Label(family Family) string {
	switch family {
	case FamilyDebian:
		return "Debian/Ubuntu"
	case FamilyFedora:
		return "Fedora/RHEL"
	case FamilyArch:
		return "Arch Linux"
	case FamilySuse:
		return "openSUSE"
	default:
		return "Unknown"
	}
}

// Profile describes the detected host environment.
type Profile struct {
	Family     Family
	PrettyName string
	// PythonPath is the resolved python3 executable, empty when absent.
	PythonPath string
}

const defaultOSRelease = "/etc/os-release"

// Detect reads the OS identification file, falling back to lsb_release, and
// probes for the python3 runtime. Detection never fails: an unidentifiable
// host yields FamilyUnknown.
func Detect(ctx context.Context, runner sysexec.Runner) Profile {
	family, pretty := detectFamily(ctx, runner)
	profile := Profile{Family: family, PrettyName: pretty}
	if path, err := runner.LookPath("python3"); err == nil {
		profile.PythonPath = path
	}
	return profile
}

func detectFamily(ctx context.Context, runner sysexec.Runner) (Family, string) {
	path := runenv.OSRelease()
	if path == "" {
		path = defaultOSRelease
	}
	if data, err := os.ReadFile(path); err == nil {
		id, like, pretty := parseOSRelease(data)
		if family, ok := familyFromID(id); ok {
			return family, pretty
		}
		for _, candidate := range like {
			if family, ok := familyFromID(candidate); ok {
				return family, pretty
			}
		}
		if pretty != "" {
			return FamilyUnknown, pretty
		}
	}
	if out, err := runner.Output(ctx, "lsb_release", "-is"); err == nil {
		if family, ok := familyFromID(strings.ToLower(strings.TrimSpace(out))); ok {
			return family, out
		}
	}
	return FamilyUnknown, ""
}

// parseOSRelease extracts ID, ID_LIKE and PRETTY_NAME from os-release data.
func parseOSRelease(data []byte) (id string, like []string, pretty string) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		switch key {
		case "ID":
			id = strings.ToLower(value)
		case "ID_LIKE":
			for _, item := range strings.Fields(strings.ToLower(value)) {
				like = append(like, item)
			}
		case "PRETTY_NAME":
			pretty = value
		}
	}
	return id, like, pretty
}

func familyFromID(id string) (Family, bool) {
	switch id {
	case "debian", "ubuntu", "linuxmint", "pop", "elementary", "raspbian":
		return FamilyDebian, true
	case "fedora", "rhel", "centos", "rocky", "almalinux", "nobara":
		return FamilyFedora, true
	case "arch", "archlinux", "manjaro", "endeavouros", "garuda":
		return FamilyArch, true
	case "opensuse", "opensuse-leap", "opensuse-tumbleweed", "sles", "suse":
		return FamilySuse, true
	default:
		return FamilyUnknown, false
	}
}
