package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ruminaider/profile-inherit/internal/jsonc"
	"github.com/ruminaider/profile-inherit/internal/profiles"
)

// Load reads a settings.json into a nested tree. The file may carry comments
// and trailing commas. A missing or empty file is an empty tree, not an
// error.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	clean := jsonc.StripComments(string(data))
	if len(bytes.TrimSpace(clean)) == 0 {
		return map[string]any{}, nil
	}

	var tree map[string]any
	if err := json.Unmarshal(clean, &tree); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// Merge reads and flattens each named parent profile in declared order and
// folds the overlays left to right: a later profile's key overrides an
// earlier profile's identical key. Names missing from the resolved map are
// skipped with a warning; missing settings files count as empty. The result
// is re-flattened so no nested residue can survive.
func Merge(parents []string, resolved map[string]string, logger zerolog.Logger) Overlay {
	merged := make(map[string]any)

	for _, name := range parents {
		dir, ok := resolved[name]
		if !ok {
			logger.Warn().Str("profile", name).Msg("declared parent profile does not exist, skipping")
			continue
		}

		path := profiles.SettingsFile(dir)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Info().Str("profile", name).Str("path", path).Msg("parent profile has no settings file")
			continue
		}

		tree, err := Load(path)
		if err != nil {
			logger.Warn().Str("profile", name).Err(err).Msg("parent settings unreadable, skipping")
			continue
		}

		for k, v := range Flatten(tree, "") {
			merged[k] = v
		}
	}

	return Flatten(merged, "")
}
