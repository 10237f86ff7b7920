package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yanxingzhi/event-form-multi/internal/notify"
	"github.com/yanxingzhi/event-form-multi/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	upstream := &http.Client{Timeout: cfg.UpstreamTimeout}
	notifier, err := notify.NewNotifier(cfg, upstream)
	if err != nil {
		return err
	}

	var confirmer server.Confirmer
	if cfg.EventsURL != "" {
		confirmer = notify.NewConfirmer(notify.NewCatalog(cfg.EventsURL, upstream), notifier)
	} else {
		logger.Warn().Msg("EVENTS_URL is empty, registration confirmations disabled")
	}

	dispatch := notify.NewDispatcher(logger, cfg.NotifyTimeout)
	srv := server.New(cfg, logger, confirmer, dispatch)
	httpSrv := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("notifier", notifier.Name()).Msg("HTTP listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
		if err := dispatch.Wait(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("pending notifications abandoned")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
