// Command leasekit-server runs the lease transaction HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/leasekit/leasekit/internal/api"
	"github.com/leasekit/leasekit/internal/config"
	"github.com/leasekit/leasekit/internal/db"
	"github.com/leasekit/leasekit/internal/db/migrations"
	"github.com/leasekit/leasekit/internal/dbpool"
	"github.com/leasekit/leasekit/internal/service"
	"github.com/leasekit/leasekit/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	requests := store.NewRequestStore(base)
	leases := store.NewLeaseStore(base)
	histories := store.NewHistoryStore(base)

	deps := &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Requests:    service.NewRequestService(requests, histories, log),
		Leases:      service.NewLeaseService(leases, log),
		History:     service.NewHistoryService(histories, log),
		Cleanup:     service.NewCleanupService(requests, leases, log),
		CORSOrigins: cfg.CORSOrigins,
		APIKey:      cfg.AuthKey(),
		Version:     config.Version,
	}

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": cfg.Addr(), "version": config.Version}).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
