package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ruminaider/profile-inherit/internal/paths"
	"github.com/ruminaider/profile-inherit/internal/profiles"
	"github.com/ruminaider/profile-inherit/internal/storage"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List resolved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		userDir := paths.UserDataDir()
		store := storage.Read(userDir, log.Logger)
		resolved := profiles.Resolve(userDir, store)
		active := store.ActiveProfileName()

		for _, name := range profiles.Names(resolved) {
			marker := " "
			if name == active {
				marker = "*"
			}
			fmt.Printf("%s %-16s %s\n", marker, name, resolved[name])
		}
		return nil
	},
}
