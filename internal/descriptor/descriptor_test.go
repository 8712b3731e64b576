package descriptor

import (
	"strings"
	"testing"
)

// parseKeyValue checks descriptor syntax: section headers in brackets,
// everything else KEY=VALUE, and returns the key-value pairs.
func parseKeyValue(t *testing.T, data []byte) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("malformed line %q", line)
		}
		out[key] = value
	}
	return out
}

func TestSystemdUnit(t *testing.T) {
	data := SystemdUnit("/usr/local/bin/tuxagent-daemon")
	text := string(data)
	for _, want := range []string{
		"[Unit]", "[Service]", "[Install]",
		"Type=dbus",
		"BusName=org.tuxagent.Assistant",
		"ExecStart=/usr/local/bin/tuxagent-daemon",
		"Restart=on-failure",
		"RestartSec=5",
		"WantedBy=graphical-session.target",
		"PartOf=graphical-session.target",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("unit missing %q:\n%s", want, text)
		}
	}
	parseKeyValue(t, data)
}

func TestBusActivation(t *testing.T) {
	kv := parseKeyValue(t, BusActivation("/usr/local/bin/tuxagent-daemon"))
	if kv["Name"] != "org.tuxagent.Assistant" {
		t.Fatalf("Name = %q", kv["Name"])
	}
	if kv["Exec"] != "/usr/local/bin/tuxagent-daemon" {
		t.Fatalf("Exec = %q", kv["Exec"])
	}
	if kv["SystemdService"] != "tuxagent-daemon.service" {
		t.Fatalf("SystemdService = %q", kv["SystemdService"])
	}
}

func TestDesktopEntry(t *testing.T) {
	kv := parseKeyValue(t, DesktopEntry("/usr/local/bin/tuxagent-overlay"))
	if kv["Type"] != "Application" {
		t.Fatalf("Type = %q", kv["Type"])
	}
	if kv["Terminal"] != "false" {
		t.Fatalf("Terminal = %q", kv["Terminal"])
	}
	if !strings.Contains(kv["Categories"], "Utility;") || !strings.Contains(kv["Categories"], "System;") {
		t.Fatalf("Categories = %q", kv["Categories"])
	}
}

func TestAutostartEntry(t *testing.T) {
	kv := parseKeyValue(t, AutostartEntry("/usr/local/bin/tuxagent-overlay"))
	if kv["NoDisplay"] != "true" {
		t.Fatalf("NoDisplay = %q", kv["NoDisplay"])
	}
	if kv["X-GNOME-Autostart-Delay"] != "10" {
		t.Fatalf("delay = %q", kv["X-GNOME-Autostart-Delay"])
	}
}

func TestWrapper(t *testing.T) {
	data := string(Wrapper("/opt/tuxagent", CLIModule))
	if !strings.HasPrefix(data, "#!/bin/sh\n") {
		t.Fatalf("wrapper missing shebang:\n%s", data)
	}
	if !strings.Contains(data, `export PYTHONPATH="/opt/tuxagent`) {
		t.Fatalf("wrapper missing PYTHONPATH export:\n%s", data)
	}
	if !strings.Contains(data, "exec python3 -m src.cli.tux") {
		t.Fatalf("wrapper missing exec line:\n%s", data)
	}
}

func TestDescriptorsAreDeterministic(t *testing.T) {
	a := SystemdUnit("/x")
	b := SystemdUnit("/x")
	if string(a) != string(b) {
		t.Fatalf("unit rendering not deterministic")
	}
}
