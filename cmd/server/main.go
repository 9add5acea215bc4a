// main wires configuration, the key directory, the audit trail, and the
// eight service handlers, then runs the HTTP server until shutdown.
// Business logic lives in the service packages; the engine itself never
// appears here.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"veridical/internal/audit"
	"veridical/internal/directory"
	"veridical/internal/exposure"
	"veridical/internal/geodemand"
	"veridical/internal/jurisdiction"
	"veridical/internal/lineage"
	"veridical/internal/platform/config"
	"veridical/internal/platform/httpserver"
	"veridical/internal/platform/logger"
	"veridical/internal/platform/metrics"
	platformredis "veridical/internal/platform/redis"
	"veridical/internal/regdelta"
	"veridical/internal/reputation"
	"veridical/internal/screening"
	"veridical/internal/supplier"
	httptransport "veridical/internal/transport/http"
)

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	var dir directory.Directory
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		dir = directory.NewRedis(redisClient.Client)
		log.Info("using redis directory")
		defer redisClient.Close()
	} else {
		dir = directory.NewMemory(cfg.Tables.Directory)
		log.Info("using memory directory")
	}

	m := metrics.New()
	aud := audit.NewPublisher(audit.NewMemoryStore())
	tables := cfg.Tables

	router := httptransport.NewRouter(
		httptransport.Options{JWTSigningKey: cfg.JWTSigningKey, Logger: log},
		screening.NewHandler(screening.NewService(screening.Config{
			WatchLists:      tables.WatchLists,
			Staleness:       tables.Staleness("screening"),
			ReferenceVolume: tables.ReferenceVolume("screening"),
		}), dir, log, m, aud),
		exposure.NewHandler(exposure.NewService(exposure.Config{
			Relations:       tables.Relations,
			EntityKinds:     tables.EntityKinds,
			Staleness:       tables.Staleness("exposure"),
			ReferenceVolume: tables.ReferenceVolume("exposure"),
		}), dir, log, m, aud),
		jurisdiction.NewHandler(jurisdiction.NewService(jurisdiction.Config{
			Agencies:  tables.Agencies,
			Staleness: tables.Staleness("jurisdiction"),
		}), dir, log, m, aud),
		supplier.NewHandler(supplier.NewService(supplier.Config{
			Staleness:       tables.Staleness("supplier"),
			ReferenceVolume: tables.ReferenceVolume("supplier"),
		}), dir, log, m, aud),
		regdelta.NewHandler(regdelta.NewService(regdelta.Config{
			Agencies:   tables.Agencies,
			Severities: tables.Severities,
			Staleness:  tables.Staleness("regdelta"),
		}), dir, log, m, aud),
		reputation.NewHandler(reputation.NewService(reputation.Config{
			Staleness:       tables.Staleness("reputation"),
			ReferenceVolume: tables.ReferenceVolume("reputation"),
		}), dir, log, m, aud),
		geodemand.NewHandler(geodemand.NewService(geodemand.Config{
			Categories:      tables.DemandCategories,
			Staleness:       tables.Staleness("geodemand"),
			ReferenceVolume: tables.ReferenceVolume("geodemand"),
		}), dir, log, m, aud),
		lineage.NewHandler(lineage.NewService(lineage.Config{
			Staleness:       tables.Staleness("lineage"),
			ReferenceVolume: tables.ReferenceVolume("lineage"),
		}), dir, log, m, aud),
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting veridical", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
