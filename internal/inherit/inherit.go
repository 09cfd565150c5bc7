// Package inherit orchestrates one inheritance run: resolve the active
// profile, compute the inherited overlay from its parents, and splice the
// managed block into its settings file.
package inherit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ruminaider/profile-inherit/internal/block"
	"github.com/ruminaider/profile-inherit/internal/profiles"
	"github.com/ruminaider/profile-inherit/internal/settings"
	"github.com/ruminaider/profile-inherit/internal/storage"
)

// Options are the explicit inputs of a run. Nothing is read from global
// state, so tests and callers can pin every input.
type Options struct {
	UserDir string
	Parents []string
	Logger  zerolog.Logger
}

// Result describes what a run did.
type Result struct {
	Profile      string   // active profile name
	Dir          string   // its directory
	Parents      []string // declared parent list as given
	Inherited    []string // keys written into the managed block, sorted
	BlockWritten bool     // false when the diff was empty and any old block was removed
}

// Apply computes the inherited overlay for the active profile and rewrites
// the managed block in its settings.json. The run is best effort, not
// transactional: only the final write can fail hard, and earlier steps are
// never rolled back.
func Apply(opts Options) (*Result, error) {
	store := storage.Read(opts.UserDir, opts.Logger)
	resolved := profiles.Resolve(opts.UserDir, store)
	active := store.ActiveProfileName()
	dir := resolved[active]
	path := profiles.SettingsFile(dir)

	ownTree, err := settings.Load(path)
	if err != nil {
		opts.Logger.Warn().Err(err).Msg("profile settings unparsable, treating as empty for the diff")
		ownTree = map[string]any{}
	}
	own := settings.Flatten(ownTree, "")

	merged := settings.Merge(opts.Parents, resolved, opts.Logger)
	inherited := settings.Diff(merged, own)

	opts.Logger.Debug().
		Str("profile", active).
		Strs("parents", opts.Parents).
		Int("inherited", len(inherited)).
		Msg("computed inheritance")

	doc, existed, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	next := block.Remove(doc, opts.Logger)
	if len(inherited) > 0 {
		next = block.Insert(next, inherited)
	}

	if err := writeDocument(path, doc, next, existed); err != nil {
		return nil, err
	}

	return &Result{
		Profile:      active,
		Dir:          dir,
		Parents:      opts.Parents,
		Inherited:    inherited.SortedKeys(),
		BlockWritten: len(inherited) > 0,
	}, nil
}

// Remove deletes the managed block from the active profile's settings.json,
// leaving everything else untouched.
func Remove(opts Options) (*Result, error) {
	store := storage.Read(opts.UserDir, opts.Logger)
	resolved := profiles.Resolve(opts.UserDir, store)
	active := store.ActiveProfileName()
	dir := resolved[active]
	path := profiles.SettingsFile(dir)

	doc, existed, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	next := block.Remove(doc, opts.Logger)

	if err := writeDocument(path, doc, next, existed); err != nil {
		return nil, err
	}

	return &Result{Profile: active, Dir: dir}, nil
}

// readDocument reads the raw settings text. Missing files are an empty
// document, reported through existed so no file springs into being unless a
// block actually gets written.
func readDocument(path string) (doc string, existed bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), true, nil
}

// writeDocument persists the new text when it differs from the old. Skipping
// the no-change write also keeps the file's mtime quiet for anything
// watching the directory.
func writeDocument(path, old, next string, existed bool) error {
	if next == old {
		return nil
	}
	if !existed && next == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(next), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
