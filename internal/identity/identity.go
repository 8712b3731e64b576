package identity

const (
	BrandName = "TuxAgent"
	// AppSlug is the canonical identifier for on-disk state under the XDG roots.
	AppSlug      = "tuxagent"
	SetupCLIName = "tuxsetup"

	// Well-known D-Bus identity of the assistant daemon.
	BusName    = "org.tuxagent.Assistant"
	ObjectPath = "/org/tuxagent/Assistant"

	UnitName           = "tuxagent-daemon.service"
	BusServiceFile     = BusName + ".service"
	DesktopFile        = "tuxagent.desktop"
	AutostartFile      = "tuxagent-autostart.desktop"
	NautilusPluginFile = "tuxagent-extension.py"

	CLIBin     = "tux"
	DaemonBin  = "tuxagent-daemon"
	OverlayBin = "tuxagent-overlay"
)
