package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrcounter/internal/bot"
	"github.com/wrcounter/pkg/healthcheck"
)

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Runs the Discord bot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateBot(); err != nil {
			return err
		}
		ctx := cmd.Context()

		log.Info("Starting WR Counterpick bot...")

		// A failed load keeps the bot online in the unavailable state.
		roster, err := loadRoster(ctx)
		if err != nil {
			log.WithError(err).Error("roster load failed, answering unavailable")
		}

		svc := newServices(ctx)
		defer svc.Close()

		discordBot, err := bot.New(cfg.DiscordToken, cfg.DiscordGuildID, roster, svc.stats, svc.scraper, log)
		if err != nil {
			return err
		}

		// Start health check server (lightweight)
		healthServer := healthcheck.New(cfg.HealthAddr, discordBot.Ready)
		go func() {
			if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("health server error")
			}
		}()

		if err := discordBot.Start(); err != nil {
			return err
		}

		log.Info("Bot running")

		// Wait for interrupt signal
		<-ctx.Done()

		log.Info("Shutting down...")

		// Graceful shutdown with short timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := healthServer.Stop(shutdownCtx); err != nil {
			log.WithError(err).Warn("health server shutdown failed")
		}
		if err := discordBot.Stop(); err != nil {
			log.WithError(err).Warn("discord shutdown failed")
		}

		log.Info("Stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
