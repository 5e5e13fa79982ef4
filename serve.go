package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rangepresets/api"
	"rangepresets/logging"
	"rangepresets/session"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preset HTTP and WebSocket service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			manager := session.NewManager(session.Options{
				DefaultFrameStart: cfg.Presets.DefaultFrameStart,
				DefaultFrameEnd:   cfg.Presets.DefaultFrameEnd,
				JournalSize:       cfg.Presets.JournalSize,
			}, logger.Named("session"))
			defer manager.CloseAll()

			router := api.RegisterRoutes(manager, api.Options{
				LastRangeLength: cfg.Presets.LastRangeLength,
			}, logger.Named("api"))

			srv := &http.Server{
				Addr:              cfg.Server.Bind,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("rangepresets listening", zap.String("addr", srv.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				logger.Error("server error", zap.Error(err))
				return err
			case <-runCtx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			manager.CloseAll()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override server.bind (host:port)")
	return cmd
}
