package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/peds-protocol-api/internal/config"
	assessmentHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/assessment"
	escalationHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/escalation"
	healthHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/health"
	protocolHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/protocol"
	resusHandler "github.com/jwalitptl/peds-protocol-api/internal/handler/resuscitation"
	"github.com/jwalitptl/peds-protocol-api/internal/middleware"
	"github.com/jwalitptl/peds-protocol-api/internal/repository/postgres"
	"github.com/jwalitptl/peds-protocol-api/internal/router"
	assessmentService "github.com/jwalitptl/peds-protocol-api/internal/service/assessment"
	escalationService "github.com/jwalitptl/peds-protocol-api/internal/service/escalation"
	resusService "github.com/jwalitptl/peds-protocol-api/internal/service/resuscitation"
	"github.com/jwalitptl/peds-protocol-api/pkg/alert"
	"github.com/jwalitptl/peds-protocol-api/pkg/logger"
	"github.com/jwalitptl/peds-protocol-api/pkg/messaging/redis"
	"github.com/jwalitptl/peds-protocol-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Console:    cfg.Log.Console,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("peds_protocol", "api")

	baseRepo := postgres.NewBaseRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	bolusRepo := postgres.NewBolusRepository(db)
	accessRepo := postgres.NewAccessRepository(db)
	escalationRepo := postgres.NewEscalationRepository(db)
	referralRepo := postgres.NewReferralRepository(db)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	// Critical alerts go out on the broker; the API degrades to a no-op
	// sink when Redis is unavailable rather than failing to start.
	var alertSink alert.Sink = alert.NopSink{}
	if cfg.Alerts.Enabled {
		broker, err := redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log.Zerolog())
		if err != nil {
			log.Error(err, "redis unavailable, critical alerts disabled")
		} else {
			alertSink = alert.NewBrokerSink(broker, log.Zerolog())
		}
	}

	assessmentSvc := assessmentService.NewService(sessionRepo, accessRepo, outboxRepo, alertSink, log, m)
	resusSvc := resusService.NewService(sessionRepo, bolusRepo, accessRepo, referralRepo, outboxRepo, alertSink, log, m)
	escalationSvc := escalationService.NewService(escalationRepo, outboxRepo, log, m)

	r := router.NewRouter(
		assessmentHandler.NewHandler(assessmentSvc),
		resusHandler.NewHandler(resusSvc),
		escalationHandler.NewHandler(escalationSvc),
		protocolHandler.NewHandler(cfg.Cache.ReferenceTTL),
		healthHandler.NewHandler(db),
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
			Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
