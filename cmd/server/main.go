package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"inkind/internal/audit"
	auditkafka "inkind/internal/audit/kafka"
	auditmemory "inkind/internal/audit/store/memory"
	auditpostgres "inkind/internal/audit/store/postgres"
	campaignhandler "inkind/internal/campaign/handler"
	campaignservice "inkind/internal/campaign/service"
	donationhandler "inkind/internal/donation/handler"
	"inkind/internal/donation/engine"
	"inkind/internal/donation/metrics"
	"inkind/internal/donation/view"
	"inkind/internal/ledger"
	"inkind/internal/platform/config"
	"inkind/internal/platform/httpserver"
	"inkind/internal/platform/logger"
	platformredis "inkind/internal/platform/redis"
	"inkind/internal/session"
	httptransport "inkind/internal/transport/http"
	"inkind/internal/wallet"
)

// main wires dependencies and keeps the process lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	identity := wallet.FromContext{}

	// The relay-backed client is the production ledger; without a gateway
	// URL the process runs against the in-process ledger for development.
	var ledgerClient ledger.Client
	if cfg.Ledger.GatewayURL != "" {
		ledgerClient = ledger.NewGateway(cfg.Ledger.GatewayURL, cfg.Ledger.Timeout, identity)
	} else {
		log.Warn("no ledger gateway configured, using in-process ledger")
		ledgerClient = ledger.NewMemory(identity)
	}

	var viewStore view.Store = view.NewMemoryStore()
	var redisClient *platformredis.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		viewStore = view.NewRedisStore(redisClient.Client)
	}

	var auditStore audit.Store = auditmemory.New()
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("pgx", cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = auditpostgres.New(db)
	}

	var sink audit.Sink
	if len(cfg.Kafka.Seeds) > 0 {
		publisher, err := auditkafka.New(cfg.Kafka.Seeds, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka client failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		sink = publisher
	}

	publisher := audit.NewPublisher(cfg.AuditBuffer)
	worker := audit.NewWorker(auditStore, sink, publisher.Inbox(), log)

	donationView := view.New(viewStore, ledgerClient, log)
	m := metrics.New()
	eng := engine.New(ledgerClient, donationView, identity, publisher, m, log)

	campaigns := campaignservice.New(ledgerClient)
	jwtService := session.NewJWTService(cfg.JWTSigningKey, "inkind", 24*time.Hour)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger: log,
		Handlers: []httptransport.Registrar{
			donationhandler.New(eng, donationView, campaigns, auditStore, jwtService, log),
			campaignhandler.New(campaigns, log),
		},
		Health: func() error {
			if redisClient != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return redisClient.Health(ctx)
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting inkind server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
