// Package paths locates the platform-specific directories the tool reads
// and writes.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// UserDataDir returns the editor's user data directory. The VSCODE_USER_DIR
// environment variable overrides platform detection, which makes tests and
// portable installs possible.
func UserDataDir() string {
	if dir := os.Getenv("VSCODE_USER_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home(), "Library", "Application Support", "Code", "User")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home(), "AppData", "Roaming")
		}
		return filepath.Join(appData, "Code", "User")
	default:
		return filepath.Join(home(), ".config", "Code", "User")
	}
}

// GlobalStorageDir returns the global storage directory under a user data dir.
func GlobalStorageDir(userDir string) string {
	return filepath.Join(userDir, "globalStorage")
}

// StorageFile returns the global storage.json path under a user data dir.
func StorageFile(userDir string) string {
	return filepath.Join(GlobalStorageDir(userDir), "storage.json")
}

// ConfigDir returns the tool's own configuration directory.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(home(), ".config")
	}
	return filepath.Join(base, "profile-inherit")
}

// ConfigFile returns the tool's config.yaml path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
