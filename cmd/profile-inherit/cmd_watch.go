package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ruminaider/profile-inherit/internal/config"
	"github.com/ruminaider/profile-inherit/internal/inherit"
	"github.com/ruminaider/profile-inherit/internal/paths"
	"github.com/ruminaider/profile-inherit/internal/storage"
	"github.com/ruminaider/profile-inherit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-apply inheritance whenever the active profile changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}
		userDir := paths.UserDataDir()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			log.Info().Msg("shutting down")
			cancel()
		}()

		applyFor := func(active string) {
			result, err := inherit.Apply(inherit.Options{
				UserDir: userDir,
				Parents: cfg.ParentsFor(active),
				Logger:  log.Logger,
			})
			if err != nil {
				log.Error().Str("profile", active).Err(err).Msg("applying inheritance failed")
				return
			}
			if cfg.MessagesEnabled() {
				fmt.Printf("✓ %q: %d setting(s) inherited\n", result.Profile, len(result.Inherited))
			}
		}

		if cfg.StartupEnabled() {
			applyFor(storage.Read(userDir, log.Logger).ActiveProfileName())
		}

		if !cfg.ProfileChangeEnabled() {
			log.Info().Msg("run_on_profile_change is off, nothing to watch")
			return nil
		}

		w, err := watch.New(userDir, log.Logger, applyFor)
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		w.Stop()
		return nil
	},
}
