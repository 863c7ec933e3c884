package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naturelab/lifelist/internal/api"
	"github.com/naturelab/lifelist/pkg/menus"
)

// serveCommand creates the "serve" command: run the HTTP session API.
func (a *app) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP session API",
		Long: `Serve the session API over HTTP.

Sessions are created by POSTing a query to /v1/sessions and navigated with
follow-up requests; idle sessions expire after the configured TTL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := loggerFromContext(ctx)
			runner, err := a.newRunner(ctx)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			sessions := menus.NewRegistry(a.cfg.Server.SessionTTL)
			handler := api.NewServer(runner, sessions, logger, a.pipelineOptions("", false))

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Sweep expired sessions while serving.
			go func() {
				ticker := time.NewTicker(time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if removed := sessions.Cleanup(); removed > 0 {
							logger.Debug("expired sessions removed", "count", removed)
						}
					}
				}
			}()

			errs := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", addr)
				errs <- server.ListenAndServe()
			}()

			select {
			case err := <-errs:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
