// Package storage reads the editor's global storage.json: the list of
// declared profiles and the menu structure that identifies the active one.
package storage

import (
	"encoding/json"
	"os"
	"reflect"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ruminaider/profile-inherit/internal/jsonc"
	"github.com/ruminaider/profile-inherit/internal/paths"
)

// DefaultProfileName is the implicit profile that always exists. Its settings
// live directly in the user data directory.
const DefaultProfileName = "Default"

// profilesSubmenuID anchors the active-profile search: the submenu carrying
// this id holds one checked entry per the editor's profile picker.
const profilesSubmenuID = "Profiles"

// ProfileRecord is one declared custom profile from the store.
type ProfileRecord struct {
	Name     string
	Location string
}

// Store is the parsed global store. A zero Store behaves like an empty one:
// no custom profiles, active profile "Default".
type Store struct {
	tree map[string]any
}

// Read parses <userDir>/globalStorage/storage.json. The file may carry
// comments and trailing commas. Read or parse failures yield an empty store,
// never an error: a broken store must not take the whole pipeline down.
func Read(userDir string, logger zerolog.Logger) *Store {
	path := paths.StorageFile(userDir)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("global store unreadable, treating as empty")
		return &Store{}
	}

	var tree map[string]any
	if err := json.Unmarshal(jsonc.StripComments(string(data)), &tree); err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("global store unparsable, treating as empty")
		return &Store{}
	}

	return &Store{tree: tree}
}

// Profiles returns the declared custom profiles. Records missing a name or a
// location are skipped.
func (s *Store) Profiles() []ProfileRecord {
	raw, ok := s.tree["userDataProfiles"].([]any)
	if !ok {
		return nil
	}

	var records []ProfileRecord
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		location, _ := m["location"].(string)
		if name == "" || location == "" {
			continue
		}
		records = append(records, ProfileRecord{Name: name, Location: location})
	}
	return records
}

// ActiveProfileName resolves the currently selected profile. It searches the
// store for the profiles submenu, takes its checked entry, and resolves that
// entry's id against the declared profile records (by name, then by
// location). Any failure along the way resolves to "Default".
func (s *Store) ActiveProfileName() string {
	id := findCheckedEntryID(s.tree)
	if id == "" {
		return DefaultProfileName
	}

	for _, rec := range s.Profiles() {
		if rec.Name == id || rec.Location == id {
			return rec.Name
		}
	}
	return DefaultProfileName
}

// findCheckedEntryID walks the object graph looking for the profiles submenu
// anchor, then for the checked entry inside it. Both walks carry a visited
// set keyed on map/slice identity: the store is externally supplied, so the
// graph is not trusted to be acyclic.
func findCheckedEntryID(root any) string {
	var walk func(v any, visited map[uintptr]bool) string
	walk = func(v any, visited map[uintptr]bool) string {
		switch t := v.(type) {
		case map[string]any:
			p := reflect.ValueOf(t).Pointer()
			if visited[p] {
				return ""
			}
			visited[p] = true

			if id, _ := t["id"].(string); id == profilesSubmenuID {
				if sub, ok := t["submenu"]; ok {
					if got := findChecked(sub, map[uintptr]bool{}); got != "" {
						return got
					}
				}
			}
			for _, k := range sortedKeys(t) {
				if got := walk(t[k], visited); got != "" {
					return got
				}
			}
		case []any:
			if len(t) == 0 {
				return ""
			}
			p := reflect.ValueOf(t).Pointer()
			if visited[p] {
				return ""
			}
			visited[p] = true

			for _, e := range t {
				if got := walk(e, visited); got != "" {
					return got
				}
			}
		}
		return ""
	}
	return walk(root, map[uintptr]bool{})
}

// findChecked searches a submenu subtree for an entry with checked == true
// and returns its id.
func findChecked(v any, visited map[uintptr]bool) string {
	switch t := v.(type) {
	case map[string]any:
		p := reflect.ValueOf(t).Pointer()
		if visited[p] {
			return ""
		}
		visited[p] = true

		if checked, _ := t["checked"].(bool); checked {
			if id, _ := t["id"].(string); id != "" {
				return id
			}
		}
		for _, k := range sortedKeys(t) {
			if got := findChecked(t[k], visited); got != "" {
				return got
			}
		}
	case []any:
		if len(t) == 0 {
			return ""
		}
		p := reflect.ValueOf(t).Pointer()
		if visited[p] {
			return ""
		}
		visited[p] = true

		for _, e := range t {
			if got := findChecked(e, visited); got != "" {
				return got
			}
		}
	}
	return ""
}

// sortedKeys keeps the walk order deterministic across runs.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
