package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/wrcounter/internal/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the roster and counters as a JSON API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// A failed load keeps the server up in the unavailable state.
		roster, err := loadRoster(ctx)
		if err != nil {
			log.WithError(err).Error("roster load failed, serving unavailable")
		}

		svc := newServices(ctx)
		defer svc.Close()

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.New(roster, svc.stats, svc.scraper, log),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.WithField("addr", cfg.HTTPAddr).Info("API listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		log.Info("Stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
