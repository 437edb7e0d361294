package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/app"
	"github.com/spf13/cobra"
)

func serveCmd(envFiles *[]string) *cobra.Command {
	var warm bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*envFiles)
			if err != nil {
				return err
			}
			p, err := e.pipeline()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if warm {
				if _, err := p.Dataset(ctx); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              e.cfg.HTTPAddr,
				Handler:           app.NewRouter(p, e.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				e.logger.WithField("addr", srv.Addr).Info("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			e.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&warm, "warm", true, "Load the dataset before accepting requests")
	return cmd
}
