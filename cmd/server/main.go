// Command server runs the member enquiries HTTP service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enquiries/internal/audit"
	dirstore "enquiries/internal/directory/store"
	"enquiries/internal/enquiry/filter"
	enquiryhandler "enquiries/internal/enquiry/handler"
	"enquiries/internal/enquiry/listing"
	"enquiries/internal/enquiry/metrics"
	"enquiries/internal/enquiry/popular"
	"enquiries/internal/enquiry/reference"
	"enquiries/internal/enquiry/service"
	enquirystore "enquiries/internal/enquiry/store/enquiry"
	historystore "enquiries/internal/enquiry/store/history"
	"enquiries/internal/platform/config"
	"enquiries/internal/platform/httpserver"
	"enquiries/internal/platform/logger"
	"enquiries/internal/platform/postgres"
	platformredis "enquiries/internal/platform/redis"
	httptransport "enquiries/internal/transport/http"
	"enquiries/pkg/platform/middleware/auth"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Service.Timezone)
	if err != nil {
		log.Warn("unknown timezone, using UTC", slog.String("timezone", cfg.Service.Timezone))
		loc = time.UTC
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	// Redis is optional: without it popular choices are simply empty.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, popular choices disabled", slog.String("error", err.Error()))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	enquiryStore, err := enquirystore.NewPostgres(ctx, db)
	if err != nil {
		return err
	}
	log.Info("enquiry store ready",
		slog.Bool("indexed_search", enquiryStore.Capabilities().IndexedSearch))

	dir := dirstore.NewPostgres(db)
	historyStore := historystore.NewPostgres(db)
	allocator := reference.NewPostgres(db, cfg.Service.ReferencePrefix, reference.WithMetrics(m))
	recorder := popular.NewRecorder(redisClient)

	publisher := audit.NewPublisher(audit.DefaultBuffer, log)
	worker := audit.NewWorker(audit.NewPostgres(db), publisher.Events(), log)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", slog.String("error", err.Error()))
		}
	}()

	pipeline := filter.New(dir, filter.WithOverdueDays(cfg.Service.OverdueDays))
	lister := listing.NewService(enquiryStore, pipeline, dir, log, listing.WithMetrics(m))
	enquiries := service.NewService(enquiryStore, historyStore, allocator, dir, log,
		service.WithPopular(recorder),
		service.WithAuditor(publisher),
		service.WithMetrics(m))

	validator := auth.NewHS256Validator([]byte(cfg.Auth.JWTSigningKey), cfg.Auth.Issuer, cfg.Auth.Audience)
	handler := enquiryhandler.New(enquiries, lister, recorder, dir, validator, loc, log)

	checks := map[string]httptransport.HealthChecker{
		"postgres": httptransport.HealthFunc(db.PingContext),
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(handler, log, checks))

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting enquiries service", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		stopWorker()
		<-workerDone
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}

	// Let in-flight requests finish emitting, then drain the audit inbox.
	stopWorker()
	<-workerDone
	return nil
}
