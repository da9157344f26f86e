package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rehab-Center/Admin-Service/cmd/middleware"
	"github.com/Rehab-Center/Admin-Service/internal/api"
	"github.com/Rehab-Center/Admin-Service/internal/api/handlers/check"
	"github.com/Rehab-Center/Admin-Service/internal/api/handlers/events"
	"github.com/Rehab-Center/Admin-Service/internal/api/handlers/export"
	"github.com/Rehab-Center/Admin-Service/internal/api/handlers/file"
	"github.com/Rehab-Center/Admin-Service/internal/api/handlers/payment"
	"github.com/Rehab-Center/Admin-Service/internal/api/handlers/record"
	"github.com/Rehab-Center/Admin-Service/internal/configuration"
	"github.com/Rehab-Center/Admin-Service/internal/services"
	"github.com/Rehab-Center/Admin-Service/internal/services/command"
	"github.com/Rehab-Center/Admin-Service/internal/services/infrastructure"
	"github.com/Rehab-Center/Admin-Service/internal/services/query"
	"github.com/Rehab-Center/Admin-Service/internal/services/remote"
	"github.com/Rehab-Center/Admin-Service/internal/validation"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {
	cfg := configuration.Load()
	diag := configuration.NewDiagnostics(cfg)
	diag.Debugf("configuration loaded: %v", diag.Dump())

	if cfg.Tracing.Enabled {
		tracer.Start(tracer.WithService(cfg.Tracing.Service))
		defer tracer.Stop()
	}

	db, err := infrastructure.NewPostgresStorage(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer db.Close()

	minioSvc, err := services.NewMinioService(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.BucketName,
		cfg.MinIO.UseSSL,
		cfg.PresignTTL,
	)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	if _, _, err := services.ConnectNATS(cfg.NATSURL); err != nil {
		log.Printf("Warning: NATS unavailable, events will not be published: %v", err)
	}
	defer services.CloseNATS()

	commands := command.New(db, services.EventBus{})
	queries := query.New(db)
	validator := validation.NewValidator(recordSource(cfg, queries), diag)

	var scanner file.Scanner
	if cfg.Scan.Enabled {
		scanner = services.NewScanner(cfg.Scan.ClamAVURL, minioSvc, commands)
	}

	consumers := events.NewHandler(commands)
	if _, err := consumers.Subscribe(services.SubscribeEvent); err != nil {
		log.Printf("Warning: event consumers not started: %v", err)
	}

	scheduler, err := services.NewScheduler(cfg.OverdueSchedule, commands)
	if err != nil {
		log.Fatalf("Invalid OVERDUE_SCHEDULE %q: %v", cfg.OverdueSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	auth, err := authenticator(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(gintrace.Middleware(cfg.Tracing.Service))
	}

	api.RegisterRoutes(r, api.Deps{
		Auth: auth.RequireAuth(),
		Handlers: []api.Registrar{
			file.NewHandler(minioSvc, queries, commands, scanner),
			record.NewHandler(queries, commands, validator),
			payment.NewHandler(queries, commands, validator),
			check.NewHandler(validator),
			export.NewHandler(queries, minioSvc, commands),
		},
		Checks: map[string]api.HealthChecker{
			"postgres": db,
			"minio":    minioSvc,
		},
		Diagnostics: diag,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	waitForShutdown(srv)
}

// recordSource picks where validators read records from: the remote data API
// when configured, the local database otherwise.
func recordSource(cfg *configuration.Config, local validation.RecordSource) validation.RecordSource {
	if cfg.DataAPI.URL == "" {
		return local
	}
	log.Printf("Validators read records from %s", cfg.DataAPI.URL)
	return remote.New(cfg.DataAPI.URL, cfg.DataAPI.Token, cfg.DataAPI.Timeout)
}

func authenticator(cfg *configuration.Config) (*middleware.Authenticator, error) {
	if cfg.Auth.Disabled {
		return middleware.DisabledAuthenticator(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return middleware.NewAuthenticator(ctx, cfg.Auth.KeycloakURL, cfg.Auth.ClientIDs)
}

func waitForShutdown(srv *http.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
