package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"servicedesk/db"
	"servicedesk/db/migrations"
	"servicedesk/internal/handlers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := cfg.Logger()

		dbConn, err := db.Open(cfg.DBDriver, cfg.DSN())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.MigrateOnStart {
			applied, err := migrations.Up(ctx, dbConn.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			logger.WithField("applied", applied).Info("migrations are up to date")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(dbConn.DB, "servicedesk"),
		)

		store := db.NewStorage(dbConn)
		h := handlers.NewHandler(store, logger)
		router := handlers.NewRouter(h, handlers.RouterOptions{
			Registry:    reg,
			MetricsPath: cfg.MetricsPath,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddress,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Infof("Starting server on %s", cfg.ServerAddress)
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

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
