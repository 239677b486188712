// Package paths resolves the directories amplify-doctor reads and writes.
// All locations follow the XDG base directory spec via adrg/xdg.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under XDG homes.
const AppName = "amplify-doctor"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified
// permissions. If perm is 0, DefaultDirPerm (0700) is used. Idempotent.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
// On Windows: %LOCALAPPDATA%\cache
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns the amplify-doctor config directory:
// <ConfigHome>/amplify-doctor/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// CompatTablePath returns the default location of the Node compatibility
// table override: <ConfigDir>/node-compat.yaml
func CompatTablePath() string {
	return filepath.Join(ConfigDir(), "node-compat.yaml")
}

// ReportCacheDir returns the directory for persisted analysis reports:
// <CacheHome>/amplify-doctor/reports/
func ReportCacheDir() string {
	return filepath.Join(CacheHome(), AppName, "reports")
}

// LastReportPath returns the location the most recent report is written to.
func LastReportPath() string {
	return filepath.Join(ReportCacheDir(), "last-report.json")
}
