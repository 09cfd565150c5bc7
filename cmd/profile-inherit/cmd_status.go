package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ruminaider/profile-inherit/internal/block"
	"github.com/ruminaider/profile-inherit/internal/config"
	"github.com/ruminaider/profile-inherit/internal/paths"
	"github.com/ruminaider/profile-inherit/internal/profiles"
	"github.com/ruminaider/profile-inherit/internal/settings"
	"github.com/ruminaider/profile-inherit/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active profile and what it would inherit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}

		userDir := paths.UserDataDir()
		store := storage.Read(userDir, log.Logger)
		resolved := profiles.Resolve(userDir, store)
		active := store.ActiveProfileName()
		parents := cfg.ParentsFor(active)

		fmt.Printf("Active profile: %s\n", active)
		if len(parents) == 0 {
			fmt.Println("Parents:        (none configured — run 'profile-inherit setup')")
		} else {
			fmt.Printf("Parents:        %s\n", strings.Join(parents, ", "))
		}
		fmt.Println()

		path := profiles.SettingsFile(resolved[active])
		ownTree, err := settings.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", path, err)
			ownTree = map[string]any{}
		}
		own := settings.Flatten(ownTree, "")
		inherited := settings.Diff(settings.Merge(parents, resolved, log.Logger), own)

		if len(inherited) > 0 {
			fmt.Println("WOULD INHERIT")
			for _, k := range inherited.SortedKeys() {
				fmt.Printf("  + %s\n", k)
			}
		} else {
			fmt.Println("Nothing to inherit: the profile defines every parent key itself.")
		}
		fmt.Println()

		doc, err := os.ReadFile(path)
		if err == nil && block.Contains(string(doc)) {
			fmt.Println("Managed block:  present (run 'profile-inherit apply' to refresh it)")
		} else {
			fmt.Println("Managed block:  absent")
		}

		return nil
	},
}
