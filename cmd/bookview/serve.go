package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bookview/internal/config"
	"bookview/internal/httpx"
	"bookview/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address")
	flags.String("default-isbn", "", "ISBN shown on the home page")
	_ = a.v.BindPFlag(config.KeyAddr, flags.Lookup("addr"))
	_ = a.v.BindPFlag(config.KeyDefaultISBN, flags.Lookup("default-isbn"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	var limiter *httpx.RateLimitMiddleware
	if cfg.RateLimitRPS > 0 {
		limiter = httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router, err := web.NewRouter(web.RouterConfig{
		Service:      a.service(),
		DefaultISBN:  cfg.DefaultISBN,
		CoverBaseURL: cfg.CoverBaseURL,
		CORSOrigins:  cfg.CORSOrigins,
		EnableHSTS:   cfg.EnableHSTS,
		RateLimit:    limiter,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      cfg.HTTPTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.Addr).Info("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
