package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ruminaider/profile-inherit/internal/config"
	"github.com/ruminaider/profile-inherit/internal/inherit"
	"github.com/ruminaider/profile-inherit/internal/paths"
	"github.com/ruminaider/profile-inherit/internal/storage"
)

var applyParents []string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply inherited settings to the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}

		userDir := paths.UserDataDir()
		active := storage.Read(userDir, log.Logger).ActiveProfileName()

		parents := cfg.ParentsFor(active)
		if len(applyParents) > 0 {
			parents = applyParents
		}

		result, err := inherit.Apply(inherit.Options{
			UserDir: userDir,
			Parents: parents,
			Logger:  log.Logger,
		})
		if err != nil {
			if cfg.MessagesEnabled() {
				fmt.Printf("✗ Applying inheritance to %q failed: %v\n", active, err)
			}
			return err
		}

		if !cfg.MessagesEnabled() {
			return nil
		}

		if result.BlockWritten {
			fmt.Printf("✓ %q inherits %d setting(s) from %s: %s\n",
				result.Profile, len(result.Inherited),
				strings.Join(result.Parents, ", "),
				strings.Join(result.Inherited, ", "))
		} else {
			fmt.Printf("✓ %q defines all parent settings itself; no block needed.\n", result.Profile)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringSliceVar(&applyParents, "parents", nil, "Override the configured parent profile list")
}
