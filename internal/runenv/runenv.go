// Package runenv reads process environment overrides for tuxsetup.
// Every filesystem root the installer touches can be redirected, which keeps
// the lifecycle testable without mutating the real host.
package runenv

import (
	"os"
	"strings"
)

const (
	InstallDirEnv      = "TUXSETUP_INSTALL_DIR"
	BinDirEnv          = "TUXSETUP_BIN_DIR"
	UnitDirEnv         = "TUXSETUP_UNIT_DIR"
	BusServiceDirEnv   = "TUXSETUP_BUS_SERVICE_DIR"
	ApplicationsDirEnv = "TUXSETUP_APPLICATIONS_DIR"
	AutostartDirEnv    = "TUXSETUP_AUTOSTART_DIR"
	NautilusDirEnv     = "TUXSETUP_NAUTILUS_DIR"
	ConfigDirEnv       = "TUXSETUP_CONFIG_DIR"
	DataDirEnv         = "TUXSETUP_DATA_DIR"
	CacheDirEnv        = "TUXSETUP_CACHE_DIR"
	PayloadDirEnv      = "TUXSETUP_PAYLOAD_DIR"
	OSReleaseEnv       = "TUXSETUP_OS_RELEASE"
)

func get(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func InstallDir() string      { return get(InstallDirEnv) }
func BinDir() string          { return get(BinDirEnv) }
func UnitDir() string         { return get(UnitDirEnv) }
func BusServiceDir() string   { return get(BusServiceDirEnv) }
func ApplicationsDir() string { return get(ApplicationsDirEnv) }
func AutostartDir() string    { return get(AutostartDirEnv) }
func NautilusDir() string     { return get(NautilusDirEnv) }
func ConfigDir() string       { return get(ConfigDirEnv) }
func DataDir() string         { return get(DataDirEnv) }
func CacheDir() string        { return get(CacheDirEnv) }
func PayloadDir() string      { return get(PayloadDirEnv) }
func OSRelease() string       { return get(OSReleaseEnv) }
