package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ruminaider/profile-inherit/internal/config"
	"github.com/ruminaider/profile-inherit/internal/paths"
	"github.com/ruminaider/profile-inherit/internal/profiles"
	"github.com/ruminaider/profile-inherit/internal/storage"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose parent profiles for the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		userDir := paths.UserDataDir()
		store := storage.Read(userDir, log.Logger)
		resolved := profiles.Resolve(userDir, store)
		active := store.ActiveProfileName()

		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}
		current := make(map[string]bool)
		for _, p := range cfg.ParentsFor(active) {
			current[p] = true
		}

		var options []huh.Option[string]
		for _, name := range profiles.Names(resolved) {
			if name == active {
				continue
			}
			options = append(options, huh.NewOption(name, name).Selected(current[name]))
		}
		if len(options) == 0 {
			fmt.Printf("No other profiles exist for %q to inherit from.\n", active)
			return nil
		}

		var selected []string
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title(fmt.Sprintf("Parent profiles for %q:", active)).
					Description("Space to toggle, Enter to confirm. Later parents override earlier ones.").
					Options(options...).
					Value(&selected),
			),
		).Run()
		if err != nil {
			return err
		}

		cfg.SetParentsFor(active, selected)
		if err := config.Save(paths.ConfigFile(), cfg); err != nil {
			return err
		}

		if len(selected) == 0 {
			fmt.Printf("✓ %q inherits from no one.\n", active)
		} else {
			fmt.Printf("✓ %q now inherits from: %v\n", active, selected)
			fmt.Println("Run 'profile-inherit apply' to write the inherited settings.")
		}
		return nil
	},
}
