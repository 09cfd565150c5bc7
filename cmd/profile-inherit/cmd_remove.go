package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ruminaider/profile-inherit/internal/config"
	"github.com/ruminaider/profile-inherit/internal/inherit"
	"github.com/ruminaider/profile-inherit/internal/paths"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove inherited settings from the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}

		result, err := inherit.Remove(inherit.Options{
			UserDir: paths.UserDataDir(),
			Logger:  log.Logger,
		})
		if err != nil {
			return err
		}

		if cfg.MessagesEnabled() {
			fmt.Printf("✓ Removed inherited settings from %q.\n", result.Profile)
		}
		return nil
	},
}
