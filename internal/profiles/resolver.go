// Package profiles resolves profile names to their on-disk directories.
package profiles

import (
	"path/filepath"
	"sort"

	"github.com/ruminaider/profile-inherit/internal/storage"
)

// Resolve maps every known profile name to its directory. The implicit
// default profile always resolves to the user data directory itself; custom
// profiles live under <userDir>/profiles/<location>.
func Resolve(userDir string, store *storage.Store) map[string]string {
	resolved := map[string]string{
		storage.DefaultProfileName: userDir,
	}
	for _, rec := range store.Profiles() {
		resolved[rec.Name] = filepath.Join(userDir, "profiles", rec.Location)
	}
	return resolved
}

// SettingsFile returns the settings.json path inside a profile directory.
func SettingsFile(dir string) string {
	return filepath.Join(dir, "settings.json")
}

// Names returns the resolved profile names in sorted order.
func Names(resolved map[string]string) []string {
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
